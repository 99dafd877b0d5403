package storage

import "errors"

// ErrRead возвращается, когда источник сокращений не удалось прочитать
var ErrRead = errors.New("read shorthands")

// ErrParse возвращается, когда содержимое источника не является корректным списком записей
var ErrParse = errors.New("parse shorthands")

// ErrReservedName возвращается, когда одна из записей использует зарезервированное имя
var ErrReservedName = errors.New("reserved shorthand name")
