package main

import (
	"log"
	"os"
)

func main() {
	defer helper()
	os.Exit(1)           // want "avoid direct os.Exit call in main function of main package"
	log.Fatal("failed")  // want "avoid direct log.Fatal call in main function of main package"
	log.Fatalf("%s", "") // want "avoid direct log.Fatalf call in main function of main package"
	log.Println("ok")
}

func helper() {
	os.Exit(2)
}
