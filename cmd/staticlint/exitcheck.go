package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// forbiddenExits функции, завершающие процесс в обход логгера и отложенных вызовов
var forbiddenExits = map[string]map[string]bool{
	"os":  {"Exit": true},
	"log": {"Fatal": true, "Fatalf": true, "Fatalln": true},
}

// ExitCheckAnalyzer запрещает прямое завершение процесса в функции main пакета main.
// Ошибки запуска должны проходить через zap логгер, который сбрасывает буферы.
var ExitCheckAnalyzer = &analysis.Analyzer{
	Name:     "exitcheck",
	Doc:      "prohibits os.Exit and log.Fatal calls in main function of main package",
	Run:      runExitCheck,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func runExitCheck(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(node ast.Node) {
		funcDecl := node.(*ast.FuncDecl)
		if funcDecl.Recv != nil || funcDecl.Name.Name != "main" || funcDecl.Body == nil {
			return
		}

		ast.Inspect(funcDecl.Body, func(n ast.Node) bool {
			callExpr, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			selExpr, ok := callExpr.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			ident, ok := selExpr.X.(*ast.Ident)
			if !ok {
				return true
			}

			pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
			if !ok {
				return true
			}

			path := pkgName.Imported().Path()
			if forbiddenExits[path][selExpr.Sel.Name] {
				pass.Reportf(callExpr.Pos(), "avoid direct %s.%s call in main function of main package", path, selExpr.Sel.Name)
			}
			return true
		})
	})

	return nil, nil
}
