// Package condition evaluates the small boolean expression grammar used by
// menu variant conditions. Grammar:
//
//	expr    := or
//	or      := and ( "||" and )*
//	and     := unary ( "&&" unary )*
//	unary   := "!" unary | "(" expr ")" | term
//	term    := "permission:" capability
//	        |  "group:" groupname
//	        |  fact cmp literal          cmp: == != < <= > >=
//	        |  fact                      bare truthy test
//
// Evaluation never returns an error to the caller: malformed expressions and
// missing facts fail closed (false). Diagnostics go to the debug log only.
// No AST outlives a call; expressions are cheap enough to re-scan per
// evaluation, and menus re-evaluate on every render anyway because facts
// change between opens.
package condition

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/postwarps/postwarps/internal/provider"
	"github.com/postwarps/postwarps/internal/value"
)

const (
	permissionPrefix = "permission:"
	groupPrefix      = "group:"
)

// Facts looks up a named runtime fact. An unknown name returns value.None.
type Facts interface {
	Fact(name string) value.Value
}

// FactMap is the trivial Facts implementation over a plain map.
type FactMap map[string]value.Value

func (m FactMap) Fact(name string) value.Value { return m[name] }

// Evaluator evaluates condition expressions against an actor and its facts.
type Evaluator struct {
	auth provider.Authorizer
	log  *slog.Logger
}

func New(auth provider.Authorizer, log *slog.Logger) *Evaluator {
	if log == nil {
		log = slog.Default()
	}
	return &Evaluator{auth: auth, log: log}
}

// Eval reports whether expr holds for actor. An empty expression holds
// vacuously; any parse failure fails closed.
func (e *Evaluator) Eval(expr string, actor provider.Actor, facts Facts) bool {
	if strings.TrimSpace(expr) == "" {
		return true
	}
	p := &parser{lex: lexer{input: expr}, eval: e, actor: actor, facts: facts}
	p.next()
	ok := p.parseOr()
	if p.err == nil && p.tok.kind != tokEOF {
		p.fail("trailing input %q", p.tok.text)
	}
	if p.err != nil {
		e.log.Debug("condition failed closed", "expr", expr, "err", p.err)
		return false
	}
	return ok
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokWord   // fact name, permission:cap, bare literal, true/false
	tokString // quoted literal
	tokNumber
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
)

type token struct {
	kind tokKind
	text string
}

type lexer struct {
	input string
	pos   int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) && l.input[l.pos] == ' ' {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token{kind: tokEOF}, nil
	}
	c := l.input[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen}, nil
	case c == '&':
		if strings.HasPrefix(l.input[l.pos:], "&&") {
			l.pos += 2
			return token{kind: tokAnd}, nil
		}
		return token{}, fmt.Errorf("stray '&' at %d", l.pos)
	case c == '|':
		if strings.HasPrefix(l.input[l.pos:], "||") {
			l.pos += 2
			return token{kind: tokOr}, nil
		}
		return token{}, fmt.Errorf("stray '|' at %d", l.pos)
	case c == '!':
		if strings.HasPrefix(l.input[l.pos:], "!=") {
			l.pos += 2
			return token{kind: tokNe}, nil
		}
		l.pos++
		return token{kind: tokNot}, nil
	case c == '=':
		if strings.HasPrefix(l.input[l.pos:], "==") {
			l.pos += 2
			return token{kind: tokEq}, nil
		}
		return token{}, fmt.Errorf("stray '=' at %d", l.pos)
	case c == '<':
		if strings.HasPrefix(l.input[l.pos:], "<=") {
			l.pos += 2
			return token{kind: tokLe}, nil
		}
		l.pos++
		return token{kind: tokLt}, nil
	case c == '>':
		if strings.HasPrefix(l.input[l.pos:], ">=") {
			l.pos += 2
			return token{kind: tokGe}, nil
		}
		l.pos++
		return token{kind: tokGt}, nil
	case c == '\'' || c == '"':
		end := strings.IndexByte(l.input[l.pos+1:], c)
		if end < 0 {
			return token{}, fmt.Errorf("unterminated string at %d", l.pos)
		}
		text := l.input[l.pos+1 : l.pos+1+end]
		l.pos += end + 2
		return token{kind: tokString, text: text}, nil
	}
	start := l.pos
	for l.pos < len(l.input) && isWordByte(l.input[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		return token{}, fmt.Errorf("unexpected byte %q at %d", c, l.pos)
	}
	text := l.input[start:l.pos]
	if isNumeric(text) {
		return token{kind: tokNumber, text: text}, nil
	}
	return token{kind: tokWord, text: text}, nil
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '.' || c == ':' || c == '-' || c == '%'
}

func isNumeric(s string) bool {
	dot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' && i == 0 && len(s) > 1 {
			continue
		}
		if c == '.' {
			if dot {
				return false
			}
			dot = true
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0 && s != "-"
}

type parser struct {
	lex   lexer
	tok   token
	err   error
	eval  *Evaluator
	actor provider.Actor
	facts Facts
}

func (p *parser) next() {
	if p.err != nil {
		return
	}
	p.tok, p.err = p.lex.next()
}

func (p *parser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf(format, args...)
	}
}

func (p *parser) parseOr() bool {
	out := p.parseAnd()
	for p.err == nil && p.tok.kind == tokOr {
		p.next()
		// No short-circuit skip: operands are side-effect free and the
		// parser has to consume them either way.
		rhs := p.parseAnd()
		out = out || rhs
	}
	return out
}

func (p *parser) parseAnd() bool {
	out := p.parseUnary()
	for p.err == nil && p.tok.kind == tokAnd {
		p.next()
		rhs := p.parseUnary()
		out = out && rhs
	}
	return out
}

func (p *parser) parseUnary() bool {
	switch p.tok.kind {
	case tokNot:
		p.next()
		return !p.parseUnary()
	case tokLParen:
		p.next()
		out := p.parseOr()
		if p.tok.kind != tokRParen {
			p.fail("missing ')'")
			return false
		}
		p.next()
		return out
	case tokWord:
		return p.parseTerm()
	default:
		p.fail("unexpected token %q", p.tok.text)
		return false
	}
}

func (p *parser) parseTerm() bool {
	name := p.tok.text
	p.next()

	if capability, ok := strings.CutPrefix(name, permissionPrefix); ok {
		if capability == "" {
			p.fail("empty capability")
			return false
		}
		if p.eval.auth == nil {
			return false
		}
		return p.eval.auth.HasCapability(p.actor, capability)
	}
	if group, ok := strings.CutPrefix(name, groupPrefix); ok {
		if group == "" {
			p.fail("empty group")
			return false
		}
		if p.eval.auth == nil {
			return false
		}
		for _, g := range p.eval.auth.GroupsOf(p.actor) {
			if g == group {
				return true
			}
		}
		return false
	}

	op := p.tok.kind
	switch op {
	case tokEq, tokNe, tokLt, tokLe, tokGt, tokGe:
	default:
		// Bare fact: truthy test.
		return p.facts.Fact(name).Truthy()
	}
	p.next()

	var lit value.Value
	switch p.tok.kind {
	case tokString, tokWord:
		lit = value.Of(p.tok.text)
	case tokNumber:
		f, _ := strconv.ParseFloat(p.tok.text, 64)
		lit = value.OfFloat(f)
	default:
		p.fail("expected literal after comparison")
		return false
	}
	p.next()

	return p.compare(p.facts.Fact(name), op, lit)
}

// compare fails closed when the fact is absent: a missing fact satisfies no
// comparison, not even inequality.
func (p *parser) compare(fact value.Value, op tokKind, lit value.Value) bool {
	if fact.IsAbsent() {
		return false
	}

	fl, okF := fact.Float()
	ll, okL := lit.Float()
	if okF && okL {
		switch op {
		case tokEq:
			return fl == ll
		case tokNe:
			return fl != ll
		case tokLt:
			return fl < ll
		case tokLe:
			return fl <= ll
		case tokGt:
			return fl > ll
		case tokGe:
			return fl >= ll
		}
	}

	fs, okF := fact.Str()
	ls, okL := lit.Str()
	if !okF || !okL {
		return false
	}
	switch op {
	case tokEq:
		return fs == ls
	case tokNe:
		return fs != ls
	}
	// Ordering over non-numeric operands has no defined meaning.
	return false
}
