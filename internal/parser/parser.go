package parser

import (
	"fmt"
	"slices"

	"github.com/emirpasic/gods/v2/stacks/arraystack"

	"lispfmt/internal/diag"
	"lispfmt/internal/lexer"
	"lispfmt/internal/source"
	"lispfmt/internal/syntax"
	"lispfmt/internal/token"
)

// Parser — состояние парсера на один файл.
//
// Разбор по схеме "mark and wrap": перед разбором контейнера запоминаем длину
// out, рекурсивно кладём туда детей, затем сворачиваем всё, что легло после
// метки, в один узел арены.
type Parser struct {
	file   *source.File
	tokens []token.Token
	pos    int
	nodes  []syntax.Node
	out    []syntax.Element
	// ожидаемые закрывающие скобки открытых контейнеров
	closers *arraystack.Stack[token.Kind]
	opts    Options
}

// Parse builds the tree for an already lexed file. tokens must end with End.
// It never stops early: every token ends up in the tree exactly once.
func Parse(file *source.File, tokens []token.Token, opts Options) *syntax.Tree {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.End {
		panic("parser: token stream must end with End")
	}
	p := &Parser{
		file:    file,
		tokens:  tokens,
		nodes:   make([]syntax.Node, 0, len(tokens)/2+1),
		out:     make([]syntax.Element, 0, 16),
		closers: arraystack.New[token.Kind](),
		opts:    opts,
	}
	root := p.parseRoot()
	return &syntax.Tree{
		File:   file,
		Tokens: tokens,
		Nodes:  p.nodes,
		Root:   root,
	}
}

// ParseFile lexes and parses file, reporting lexical and syntax errors to
// opts.Reporter.
func ParseFile(file *source.File, opts Options) *syntax.Tree {
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	return Parse(file, tokens, opts)
}

func (p *Parser) parseRoot() uint32 {
	mark := len(p.out)
	for !p.at(token.End) {
		p.parseExpr()
	}
	p.bump()
	id := p.wrap(token.Root, mark, false)
	p.nodes[id].Span = source.Span{File: p.file.ID, Start: 0, End: p.file.Len()}
	return id
}

// parseExpr разбирает одно выражение по первому токену.
func (p *Parser) parseExpr() {
	tok := p.peek()
	switch {
	case tok.Kind.IsOpen():
		p.parseDelimited()
	case tok.Kind == token.Prefix:
		p.parsePrefixed()
	case tok.StartsExpr(), tok.Kind == token.Invalid:
		// литералы и HashDirective — листья; Invalid тоже, о нём лексер уже сообщил
		p.bump()
	default:
		// сюда доходят только чужие закрывающие скобки
		p.report(diag.SynUnexpectedToken, tok.Span,
			fmt.Sprintf("unexpected closing delimiter %q", tok.Text))
		p.bump()
	}
}

// parseDelimited: ( ... ) → List, [ ... ] → Sequence, { Pair* } → Table.
func (p *Parser) parseDelimited() {
	mark := len(p.out)
	open := p.bump()
	kind, closer := open.Kind.Container(), open.Kind.Closer()
	p.closers.Push(closer)

	erroneous := false
	for {
		next := p.peek()
		if next.Kind == closer {
			p.bump()
			break
		}
		if next.Kind == token.End || (next.Kind.IsClose() && p.enclosing(next.Kind)) {
			p.missingDelimiter(open, kind, next)
			erroneous = true
			break
		}
		if kind == token.Table {
			p.parsePair()
		} else {
			p.parseExpr()
		}
	}

	p.closers.Pop()
	p.wrap(kind, mark, erroneous)
}

// parsePair жадно забирает ровно два выражения: ключ и значение.
func (p *Parser) parsePair() {
	mark := len(p.out)
	p.parseExpr()
	if p.atExprEnd() {
		key := p.tokens[p.pos-1]
		p.report(diag.SynMissingExpression, key.Span,
			fmt.Sprintf("missing value for table key %q", key.Text))
		p.wrap(token.Pair, mark, true)
		return
	}
	p.parseExpr()
	p.wrap(token.Pair, mark, false)
}

// parsePrefixed: префикс и ровно одно выражение после него.
func (p *Parser) parsePrefixed() {
	mark := len(p.out)
	prefix := p.bump()
	if p.atExprEnd() {
		p.report(diag.SynMissingExpression, prefix.Span,
			fmt.Sprintf("missing expression after prefix %q", prefix.Text))
		p.wrap(token.Prefixed, mark, true)
		return
	}
	p.parseExpr()
	p.wrap(token.Prefixed, mark, false)
}

func (p *Parser) missingDelimiter(open token.Token, kind token.Kind, found token.Token) {
	if p.countError() {
		return
	}
	_, closing := kind.Delims()
	b := diag.ReportError(p.opts.Reporter, diag.SynMissingDelimiter, open.Span,
		fmt.Sprintf("missing closing delimiter %q for %s", closing, kind))
	if found.Kind == token.End {
		b.WithNote(found.Span, "reached end of input")
	} else {
		b.WithNote(found.Span, fmt.Sprintf("found %q first", found.Text))
	}
	b.Emit()
}

// wrap сворачивает всё, что положено в out после mark, в новый узел.
func (p *Parser) wrap(kind token.Kind, mark int, erroneous bool) uint32 {
	children := slices.Clone(p.out[mark:])
	p.out = p.out[:mark]

	var span source.Span
	if len(children) > 0 {
		span = p.spanOf(children[0]).Cover(p.spanOf(children[len(children)-1]))
	} else {
		span = source.Span{File: p.file.ID}
	}

	id := index(len(p.nodes))
	p.nodes = append(p.nodes, syntax.Node{
		Kind:      kind,
		Span:      span,
		Children:  children,
		Erroneous: erroneous,
	})
	p.out = append(p.out, syntax.NodeElem(id))
	return id
}

func (p *Parser) spanOf(e syntax.Element) source.Span {
	if e.IsToken() {
		return p.tokens[e.Index].Span
	}
	return p.nodes[e.Index].Span
}
