// Package fuzz houses Go fuzz harnesses for the formatting pipeline
// (source -> lexer -> parser -> format). They guard against panics, broken
// coverage and non-idempotent output on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и форматтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzz
