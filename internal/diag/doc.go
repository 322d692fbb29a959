// Package diag defines the diagnostic model shared by the lexer and parser.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1001, SYN2002, ...), a short Message, the Primary span and
// optional Notes pointing at related source.
//
// Phases emit through a Reporter so they do not depend on storage. BagReporter
// collects into a Bag, which supports sorting and deduplication. Rendering
// lives in internal/diagfmt, except for the single-line short form in this
// package.
//
// Any diagnostic with SevError makes a file unformattable: the formatter
// returns the diagnostics and no output. Warnings (FMT3xxx) come from layout
// and travel alongside the formatted text.
package diag
