// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// An Anchor represents a location in source text. The methods of an Anchor
// report the location, token kind, and contents of the anchor, and the
// structural path of the value under construction there.
//
// The Anchor passed to a visitor callback is only valid for the duration of
// that call; values returned by its methods may be retained freely.
type Anchor interface {
	Token() Kind        // Returns the token kind of the anchor
	Text() string       // Returns the raw (undecoded) text of the anchor
	Location() Location // Returns the full location of the anchor
	Path() Path         // Returns an independent copy of the current path
}

// A Path identifies a location in the structure of a JSON document, as a
// sequence of object keys (string) and array indices (int) leading from the
// root.
type Path []any

func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, elt := range p {
		switch t := elt.(type) {
		case int:
			fmt.Fprintf(&sb, "[%d]", t)
		case string:
			fmt.Fprintf(&sb, "[%q]", t)
		default:
			fmt.Fprintf(&sb, "[%v]", t) // not produced by the parser
		}
	}
	return sb.String()
}

// An Error describes a single syntax error found while parsing.
type Error struct {
	Code     ErrCode
	Location Location
}

// Error satisfies the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location.First, e.Code)
}

// Options carry optional extensions to the JSON grammar recognized by Visit
// and Parse. A nil *Options is ready for use and provides the defaults
// described on the fields.
type Options struct {
	// Permit a single trailing comma before the closing bracket of an
	// object or array. Default: report CommaExpected or ValueExpected.
	AllowTrailingCommas bool

	// Reject line and block comments. By default comments are trivia, and
	// are reported to the Comment callback.
	DisallowComments bool

	// Treat an input with no values as valid. By default an empty input
	// reports ValueExpected.
	AllowEmptyContent bool
}

// A Visitor bundles the callbacks invoked by Visit as it traverses an
// input. Any of the fields may be nil, in which case the corresponding
// events are discarded.
type Visitor struct {
	// Called with the open brace of each object.
	BeginObject func(loc Anchor)

	// Called with each object member key, unquoted. The path reported by
	// loc does not yet include the key.
	Key func(loc Anchor, key string)

	// Called with the close brace of each object. Every BeginObject is
	// matched by an EndObject even if the close brace is missing, in which
	// case loc is the token where the object ended.
	EndObject func(loc Anchor)

	// Called with the open bracket of each array.
	BeginArray func(loc Anchor)

	// Called with the close bracket of each array. Every BeginArray is
	// matched by an EndArray even if the close bracket is missing, in which
	// case loc is the token where the array ended.
	EndArray func(loc Anchor)

	// Called with each literal in decoded form: a string, float64, bool, or
	// nil for the null constant.
	Value func(loc Anchor, value any)

	// Called with each comma and colon separator.
	Separator func(loc Anchor)

	// Called with each line and block comment, unless the options disallow
	// comments.
	Comment func(loc Anchor)

	// Called with each syntax error. Parsing continues after the callback
	// returns.
	Error func(loc Anchor, code ErrCode)
}

// full returns a copy of v in which every nil callback is replaced by a
// no-op, so the parser can invoke callbacks unconditionally. A nil v is
// equivalent to an empty Visitor.
func (v *Visitor) full() Visitor {
	out := Visitor{}
	if v != nil {
		out = *v
	}
	if out.BeginObject == nil {
		out.BeginObject = func(Anchor) {}
	}
	if out.Key == nil {
		out.Key = func(Anchor, string) {}
	}
	if out.EndObject == nil {
		out.EndObject = func(Anchor) {}
	}
	if out.BeginArray == nil {
		out.BeginArray = func(Anchor) {}
	}
	if out.EndArray == nil {
		out.EndArray = func(Anchor) {}
	}
	if out.Value == nil {
		out.Value = func(Anchor, any) {}
	}
	if out.Separator == nil {
		out.Separator = func(Anchor) {}
	}
	if out.Comment == nil {
		out.Comment = func(Anchor) {}
	}
	if out.Error == nil {
		out.Error = func(Anchor, ErrCode) {}
	}
	return out
}

// Visit scans text and invokes the callbacks of v for each structural
// element of the input. Syntax errors do not stop the traversal: each is
// reported to the Error callback, the parser resynchronizes, and visiting
// continues. Visit reports whether a complete top-level value was found,
// which may be true even if errors were reported along the way.
//
// A nil opts is equivalent to a zero Options.
func Visit(text string, v *Visitor, opts *Options) bool {
	if opts == nil {
		opts = new(Options)
	}
	p := &parser{s: NewScanner(text), v: v.full(), opts: *opts}
	return p.parseTop()
}

// A parser drives a Scanner over the input and delivers events to a
// Visitor. The parser is itself the Anchor it passes to callbacks.
type parser struct {
	s    *Scanner
	v    Visitor
	opts Options
	path Path
}

func (p *parser) Token() Kind        { return p.s.Token() }
func (p *parser) Text() string       { return p.s.Text() }
func (p *parser) Location() Location { return p.s.Location() }
func (p *parser) Path() Path         { return slices.Clone(p.path) }

// report delivers a syntax error anchored at the current token.
func (p *parser) report(code ErrCode) { p.v.Error(p, code) }

// Token sets on which the grammar resynchronizes after an error.
var (
	endMember  = []Kind{RBrace, Comma}
	endElement = []Kind{RSquare, Comma}
)

// syncError reports a syntax error at the current token and resynchronizes:
// tokens are discarded until one in skipPast is found and consumed, or one
// in stopAt is found and left current, or the input ends. The current token
// is considered first, so a token already in stopAt is not discarded.
func (p *parser) syncError(code ErrCode, skipPast, stopAt []Kind) {
	p.report(code)
	if len(skipPast) == 0 && len(stopAt) == 0 {
		return
	}
	tok := p.s.Token()
	for tok != EOF {
		if slices.Contains(skipPast, tok) {
			p.next()
			return
		} else if slices.Contains(stopAt, tok) {
			return
		}
		tok = p.next()
	}
}

// next advances to the next token meaningful to the grammar, reporting
// lexical errors, comments, and unrecognized tokens along the way.
func (p *parser) next() Kind {
	for {
		tok := p.s.Next()
		switch p.s.Err() {
		case NoError:
			// ok
		case UnterminatedComment:
			// When comments are disallowed, reporting the comment token
			// below covers the lexical problem as well.
			if !p.opts.DisallowComments {
				p.report(UnterminatedComment)
			}
		default:
			p.report(p.s.Err())
		}

		switch tok {
		case LineComment, BlockComment:
			if p.opts.DisallowComments {
				p.report(InvalidCommentToken)
			} else {
				p.v.Comment(p)
			}
		case Unknown:
			p.report(InvalidSymbol)
		case Space, Newline:
			// trivia
		default:
			return tok
		}
	}
}

// parseTop parses the top-level value and verifies the input ends after it.
func (p *parser) parseTop() bool {
	if p.next() == EOF {
		if p.opts.AllowEmptyContent {
			return true
		}
		p.report(ValueExpected)
		return false
	}
	if !p.parseValue() {
		p.report(ValueExpected)
		return false
	}
	if p.s.Token() != EOF {
		p.report(EndOfFileExpected)
	}
	return true
}

// parseValue parses a single value of any type, and reports whether the
// current token was able to begin one. On success the current token is the
// first token after the value.
func (p *parser) parseValue() bool {
	switch p.s.Token() {
	case LBrace:
		return p.parseObject()
	case LSquare:
		return p.parseArray()
	case String:
		p.v.Value(p, p.s.Value())
	case Number:
		n, err := strconv.ParseFloat(p.s.Text(), 64)
		if err != nil {
			p.report(InvalidNumberFormat)
			n = 0
		}
		p.v.Value(p, n)
	case True:
		p.v.Value(p, true)
	case False:
		p.v.Value(p, false)
	case Null:
		p.v.Value(p, nil)
	default:
		return false
	}
	p.next()
	return true
}

// parseObject parses an object. The current token is the open brace.
func (p *parser) parseObject() bool {
	p.v.BeginObject(p)
	p.next() // consume "{"

	needComma := false
	for p.s.Token() != RBrace && p.s.Token() != EOF {
		if p.s.Token() == Comma {
			if !needComma {
				p.report(ValueExpected)
			}
			p.v.Separator(p)
			p.next() // consume ","
			if p.s.Token() == RBrace && p.opts.AllowTrailingCommas {
				break
			}
		} else if needComma {
			p.report(CommaExpected)
		}
		if !p.parseMember() {
			p.syncError(ValueExpected, nil, endMember)
		}
		needComma = true
	}
	p.v.EndObject(p)

	if p.s.Token() != RBrace {
		p.syncError(CloseBraceExpected, []Kind{RBrace}, nil)
	} else {
		p.next() // consume "}"
	}
	return true
}

// parseMember parses a single "key": value member of an object. It reports
// false if the current token cannot begin a member.
func (p *parser) parseMember() bool {
	if p.s.Token() != String {
		p.syncError(PropertyNameExpected, nil, endMember)
		return false
	}
	key := p.s.Value()
	p.v.Key(p, key)
	p.path = append(p.path, key)
	p.next() // consume the key

	if p.s.Token() == Colon {
		p.v.Separator(p)
		p.next() // consume ":"
		if !p.parseValue() {
			p.syncError(ValueExpected, nil, endMember)
		}
	} else {
		p.syncError(ColonExpected, nil, endMember)
	}
	p.path = p.path[:len(p.path)-1]
	return true
}

// parseArray parses an array. The current token is the open bracket.
func (p *parser) parseArray() bool {
	p.v.BeginArray(p)
	p.next() // consume "["

	first := true
	needComma := false
	for p.s.Token() != RSquare && p.s.Token() != EOF {
		if p.s.Token() == Comma {
			if !needComma {
				p.report(ValueExpected)
			}
			p.v.Separator(p)
			p.next() // consume ","
			if p.s.Token() == RSquare && p.opts.AllowTrailingCommas {
				break
			}
		} else if needComma {
			p.report(CommaExpected)
		}
		if first {
			p.path = append(p.path, 0)
			first = false
		} else {
			p.path[len(p.path)-1] = p.path[len(p.path)-1].(int) + 1
		}
		if !p.parseValue() {
			p.syncError(ValueExpected, nil, endElement)
		}
		needComma = true
	}
	p.v.EndArray(p)
	if !first {
		p.path = p.path[:len(p.path)-1]
	}

	if p.s.Token() != RSquare {
		p.syncError(CloseBracketExpected, []Kind{RSquare}, nil)
	} else {
		p.next() // consume "]"
	}
	return true
}
