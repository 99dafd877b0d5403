// Package models содержит типы данных, общие для хранилища, сервиса и обработчиков.
package models

// ReservedName зарезервированное имя поддомена, по которому отдается весь список сокращений.
// Не может использоваться как значение Short.
const ReservedName = "list"

// Shorthand представляет одну запись соответствия поддомена адресу перенаправления
type Shorthand struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}
