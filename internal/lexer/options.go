package lexer

import (
	"lispfmt/internal/diag"
	"lispfmt/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	// StopOnError ends lexing at the first error: the offending Invalid token
	// absorbs the rest of the input and End follows.
	StopOnError bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
