// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"github.com/creachadair/jsonc"
)

// ParseTree parses text and returns the syntax tree of the first value it
// contains, along with any errors encountered. A nil opts is ready for use
// and provides default settings.
//
// Parsing is fault tolerant. When text is damaged, ParseTree repairs what
// it can and reports the rest in its error slice, so the returned Value
// reflects a best effort rather than a guarantee. The Value is nil only if
// no part of a top-level value could be recovered.
func ParseTree(text string, opts *jsonc.Options) (Value, []jsonc.Error) {
	b := new(treeBuilder)
	var errs []jsonc.Error
	jsonc.Visit(text, &jsonc.Visitor{
		BeginObject: b.beginObject,
		Key:         b.key,
		EndObject:   b.endObject,
		BeginArray:  b.beginArray,
		EndArray:    b.endArray,
		Value:       b.value,
		Error: func(loc jsonc.Anchor, code jsonc.ErrCode) {
			errs = append(errs, jsonc.Error{Code: code, Location: loc.Location()})
		},
	}, opts)
	return b.root, errs
}

// A treeBuilder assembles a syntax tree from visitor events. Containers
// are pushed on a stack when they open and bound to their parent when they
// close, so the root is not set until the outermost container is complete.
type treeBuilder struct {
	root Value
	stk  []Value
}

func (b *treeBuilder) push(v Value)  { b.stk = append(b.stk, v) }
func (b *treeBuilder) top() Value    { return b.stk[len(b.stk)-1] }
func (b *treeBuilder) pop()          { b.stk = b.stk[:len(b.stk)-1] }
func (b *treeBuilder) isEmpty() bool { return len(b.stk) == 0 }

// bind attaches v to the container on top of the stack, or records it as
// the root if the stack is empty.
func (b *treeBuilder) bind(v Value) {
	if b.isEmpty() {
		b.root = v
		return
	}
	switch t := b.top().(type) {
	case *Member:
		t.Value = v
		t.end = v.Span().End
		b.pop() // the member is already attached to its object
	case *Array:
		t.Values = append(t.Values, v)
	case *Object:
		// An object accepts values only through a member. This arises
		// only from malformed input, and the value is discarded.
	}
}

func (b *treeBuilder) beginObject(loc jsonc.Anchor) {
	b.push(&Object{pos: loc.Location().Span.Pos})
}

func (b *treeBuilder) key(loc jsonc.Anchor, key string) {
	if _, ok := b.top().(*Member); ok {
		b.pop() // the previous member recovered no value
	}
	span := loc.Location().Span
	m := &Member{pos: span.Pos, end: span.End, Key: key}
	if obj, ok := b.top().(*Object); ok {
		obj.Members = append(obj.Members, m)
	}
	b.push(m)
}

func (b *treeBuilder) endObject(loc jsonc.Anchor) {
	if _, ok := b.top().(*Member); ok {
		b.pop() // a member with no value keeps Value == nil
	}
	obj := b.top().(*Object)
	obj.end = loc.Location().Span.End
	b.pop()
	b.bind(obj)
}

func (b *treeBuilder) beginArray(loc jsonc.Anchor) {
	b.push(&Array{pos: loc.Location().Span.Pos})
}

func (b *treeBuilder) endArray(loc jsonc.Anchor) {
	arr := b.top().(*Array)
	arr.end = loc.Location().Span.End
	b.pop()
	b.bind(arr)
}

func (b *treeBuilder) value(loc jsonc.Anchor, v any) {
	span := loc.Location().Span
	d := datum{pos: span.Pos, end: span.End, text: loc.Text()}
	switch t := v.(type) {
	case string:
		b.bind(&Quoted{datum: d, value: t})
	case float64:
		b.bind(&Number{datum: d})
	case bool:
		b.bind(&Bool{datum: d, value: t})
	default:
		b.bind(&Null{datum: d})
	}
}
