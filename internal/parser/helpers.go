package parser

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"lispfmt/internal/diag"
	"lispfmt/internal/source"
	"lispfmt/internal/syntax"
	"lispfmt/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.tokens[p.pos].Kind == k
}

// bump — съедает текущий токен и кладёт его листом в out.
// End не пропускается дальше конца потока.
func (p *Parser) bump() token.Token {
	tok := p.tokens[p.pos]
	p.out = append(p.out, syntax.TokenElem(index(p.pos)))
	if tok.Kind != token.End {
		p.pos++
	}
	return tok
}

// enclosing — закрывающая скобка k принадлежит одному из открытых контейнеров.
func (p *Parser) enclosing(k token.Kind) bool {
	return slices.Contains(p.closers.Values(), k)
}

// atExprEnd — дальше нет выражения: конец входа или скобка открытого контейнера.
func (p *Parser) atExprEnd() bool {
	k := p.peek().Kind
	return k == token.End || (k.IsClose() && p.enclosing(k))
}

// countError учитывает ошибку; true, если лимит уже исчерпан и репортить не надо.
func (p *Parser) countError() bool {
	enough := p.opts.Enough()
	p.opts.CurrentErrors++
	return p.opts.Reporter == nil || enough
}

func index(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("parser: index overflow: %w", err))
	}
	return v
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.countError() {
		return
	}
	p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
}
