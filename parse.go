// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsonc

// Parse parses text and returns its value in plain Go form: objects become
// map[string]any, arrays become []any, and literals become string, float64,
// bool, or nil values.
//
// Parse does not stop at the first syntax error. The parser reports what it
// found, resynchronizes, and keeps as much of the value as the input
// supports, so the returned value may be partial when the error slice is
// non-empty. An input with no recognizable value yields nil. Callers that
// require well-formed input must check the errors.
//
// A nil opts is equivalent to a zero Options.
func Parse(text string, opts *Options) (any, []Error) {
	var errs []Error
	var b valueBuilder
	Visit(text, &Visitor{
		BeginObject: b.beginObject,
		Key:         b.key,
		EndObject:   b.end,
		BeginArray:  b.beginArray,
		EndArray:    b.end,
		Value:       b.value,
		Error: func(loc Anchor, code ErrCode) {
			errs = append(errs, Error{Code: code, Location: loc.Location()})
		},
	}, opts)
	return b.root, errs
}

// A valueBuilder assembles plain Go values from visitor events. Each frame
// of the stack is an open container; completed values attach to the
// innermost frame, or to the root slot when the stack is empty. The parser
// guarantees begin and end events are balanced, so the stack cannot
// underflow.
type valueBuilder struct {
	root  any
	stack []frame
}

type frame struct {
	object  map[string]any // members, for an object frame
	array   []any          // elements, for an array frame
	isArray bool
	key     string // pending member key, for an object frame
	haveKey bool
}

func (b *valueBuilder) beginObject(Anchor) {
	b.stack = append(b.stack, frame{object: make(map[string]any)})
}

func (b *valueBuilder) beginArray(Anchor) {
	b.stack = append(b.stack, frame{isArray: true})
}

func (b *valueBuilder) key(_ Anchor, key string) {
	f := &b.stack[len(b.stack)-1]
	f.key, f.haveKey = key, true
}

func (b *valueBuilder) value(_ Anchor, v any) { b.bind(v) }

func (b *valueBuilder) end(Anchor) {
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if !f.isArray {
		b.bind(f.object)
	} else if f.array == nil {
		b.bind([]any{}) // an empty array is non-nil
	} else {
		b.bind(f.array)
	}
}

// bind attaches a completed value to the innermost open container, or to
// the root slot at top level. In an object a value with no pending key is
// discarded; this arises only from malformed input.
func (b *valueBuilder) bind(v any) {
	if len(b.stack) == 0 {
		b.root = v
		return
	}
	f := &b.stack[len(b.stack)-1]
	if f.isArray {
		f.array = append(f.array, v)
	} else if f.haveKey {
		f.object[f.key] = v
	}
}
