// Package hintparse parses the textual hint expression language used by
// the CLI: `[]int | string`, `map[string]int`, `tuple[int, string]`,
// `lit["a", "b", 3]`, `seq[int]`, numeric tower names, and bare
// identifiers as forward references.
package hintparse

import (
	"fmt"
	"reflect"
	"strconv"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"ward"
)

// Parse turns a hint expression into a ward.Hint. Unknown identifiers
// become forward references, resolved (or rejected) at compile time.
func Parse(src string) (ward.Hint, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return ward.Hint{}, err
	}
	h, err := p.parseUnion()
	if err != nil {
		return ward.Hint{}, err
	}
	if p.tok.kind != tokEOF {
		return ward.Hint{}, fmt.Errorf("hintparse: unexpected %q at offset %d", p.tok.text, p.tok.pos)
	}
	return h, nil
}

// builtins maps identifier spellings to hints. Tower names sit beside
// the concrete Go types; `number` is the broadest tower level.
var builtins = map[string]ward.Hint{
	"any":        ward.Any(),
	"bool":       ward.Type[bool](),
	"string":     ward.Type[string](),
	"int":        ward.Type[int](),
	"int8":       ward.Type[int8](),
	"int16":      ward.Type[int16](),
	"int32":      ward.Type[int32](),
	"int64":      ward.Type[int64](),
	"uint":       ward.Type[uint](),
	"uint8":      ward.Type[uint8](),
	"uint16":     ward.Type[uint16](),
	"uint32":     ward.Type[uint32](),
	"uint64":     ward.Type[uint64](),
	"uintptr":    ward.Type[uintptr](),
	"byte":       ward.Type[byte](),
	"rune":       ward.Type[rune](),
	"float32":    ward.Type[float32](),
	"float64":    ward.Type[float64](),
	"complex64":  ward.Type[complex64](),
	"complex128": ward.Type[complex128](),
	"error":      ward.Class(reflect.TypeOf((*error)(nil)).Elem()),
	"integer":    ward.Numeric(ward.TowerInteger),
	"rational":   ward.Numeric(ward.TowerRational),
	"real":       ward.Numeric(ward.TowerReal),
	"complex":    ward.Numeric(ward.TowerComplex),
	"number":     ward.Numeric(ward.TowerComplex),
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.tok.kind != kind {
		return token{}, fmt.Errorf("hintparse: expected %s at offset %d, got %q", what, p.tok.pos, p.tok.text)
	}
	t := p.tok
	if err := p.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

func (p *parser) parseUnion() (ward.Hint, error) {
	first, err := p.parseTerm()
	if err != nil {
		return ward.Hint{}, err
	}
	members := []ward.Hint{first}
	for p.tok.kind == tokPipe {
		if err := p.advance(); err != nil {
			return ward.Hint{}, err
		}
		m, err := p.parseTerm()
		if err != nil {
			return ward.Hint{}, err
		}
		members = append(members, m)
	}
	if len(members) == 1 {
		return members[0], nil
	}
	return ward.Union(members...), nil
}

func (p *parser) parseTerm() (ward.Hint, error) {
	switch p.tok.kind {
	case tokLBracket:
		if err := p.advance(); err != nil {
			return ward.Hint{}, err
		}
		if _, err := p.expect(tokRBracket, "]"); err != nil {
			return ward.Hint{}, err
		}
		elem, err := p.parseTerm()
		if err != nil {
			return ward.Hint{}, err
		}
		return ward.SliceOf(elem), nil

	case tokLParen:
		if err := p.advance(); err != nil {
			return ward.Hint{}, err
		}
		inner, err := p.parseUnion()
		if err != nil {
			return ward.Hint{}, err
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return ward.Hint{}, err
		}
		return inner, nil

	case tokIdent:
		return p.parseIdent()

	default:
		return ward.Hint{}, fmt.Errorf("hintparse: unexpected %q at offset %d", p.tok.text, p.tok.pos)
	}
}

func (p *parser) parseIdent() (ward.Hint, error) {
	// Identifier comparison happens on the NFC form so visually
	// identical spellings resolve to one name.
	name := norm.NFC.String(p.tok.text)
	if err := p.advance(); err != nil {
		return ward.Hint{}, err
	}
	switch name {
	case "map":
		if _, err := p.expect(tokLBracket, "["); err != nil {
			return ward.Hint{}, err
		}
		key, err := p.parseUnion()
		if err != nil {
			return ward.Hint{}, err
		}
		if _, err := p.expect(tokRBracket, "]"); err != nil {
			return ward.Hint{}, err
		}
		val, err := p.parseTerm()
		if err != nil {
			return ward.Hint{}, err
		}
		return ward.MapOf(key, val), nil

	case "tuple":
		elems, err := p.parseBracketList()
		if err != nil {
			return ward.Hint{}, err
		}
		return ward.TupleOf(elems...), nil

	case "seq":
		if _, err := p.expect(tokLBracket, "["); err != nil {
			return ward.Hint{}, err
		}
		elem, err := p.parseUnion()
		if err != nil {
			return ward.Hint{}, err
		}
		if _, err := p.expect(tokRBracket, "]"); err != nil {
			return ward.Hint{}, err
		}
		return ward.SeqOf(elem), nil

	case "lit":
		values, err := p.parseLiteralList()
		if err != nil {
			return ward.Hint{}, err
		}
		return ward.Literal(values...), nil
	}
	if h, ok := builtins[name]; ok {
		return h, nil
	}
	return ward.Ref(name), nil
}

func (p *parser) parseBracketList() ([]ward.Hint, error) {
	if _, err := p.expect(tokLBracket, "["); err != nil {
		return nil, err
	}
	var elems []ward.Hint
	for {
		h, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		elems = append(elems, h)
		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(tokRBracket, "]"); err != nil {
		return nil, err
	}
	return elems, nil
}

func (p *parser) parseLiteralList() ([]any, error) {
	if _, err := p.expect(tokLBracket, "["); err != nil {
		return nil, err
	}
	var values []any
	for {
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(tokRBracket, "]"); err != nil {
		return nil, err
	}
	return values, nil
}

func (p *parser) parseLiteral() (any, error) {
	t := p.tok
	switch t.kind {
	case tokString:
		s, err := strconv.Unquote(t.text)
		if err != nil {
			return nil, fmt.Errorf("hintparse: bad string literal at offset %d: %w", t.pos, err)
		}
		return s, p.advance()
	case tokNumber:
		i64, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("hintparse: bad integer literal at offset %d: %w", t.pos, err)
		}
		i, err := safecast.Conv[int](i64)
		if err != nil {
			return nil, fmt.Errorf("hintparse: integer literal overflows int at offset %d: %w", t.pos, err)
		}
		return i, p.advance()
	case tokIdent:
		switch t.text {
		case "true":
			return true, p.advance()
		case "false":
			return false, p.advance()
		case "nil":
			return nil, p.advance()
		}
	}
	return nil, fmt.Errorf("hintparse: expected literal at offset %d, got %q", t.pos, t.text)
}
