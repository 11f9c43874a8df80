// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jsonc implements a fault-tolerant scanner and parser for JSON
// with comments (JSONC), the JSON dialect commonly used for configuration
// files. In addition to standard JSON, the syntax admits line and block
// comments, and optionally trailing commas in objects and arrays.
//
// The parser does not stop at the first problem in its input. Each syntax
// error is reported to the caller with its exact location, the parser
// resynchronizes at the nearest sensible token, and parsing continues. This
// allows a complete error listing from a single pass, and recovers as much
// of the value as the input supports, which suits editors and tools that
// must make sense of files while they are being written.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSONC. Construct a
// scanner from a source string and call its Next method to iterate over the
// tokens. Next advances to the next token and returns its kind, reporting
// EOF once the input is exhausted:
//
//	s := jsonc.NewScanner(input)
//	for s.Next() != jsonc.EOF {
//	   log.Printf("Token %v at %v", s.Token(), s.Location())
//	}
//
// The scanner reports comments, whitespace, and line breaks as trivia
// tokens; call SkipTrivia to discard them instead. Malformed input does not
// stop the scanner: the affected token carries an ErrCode describing the
// problem (see Err), and scanning continues on the next call of Next.
//
// # Visiting
//
// The Visit function parses an input and reports its structure to the
// callbacks of a Visitor. Callbacks correspond to the syntax of JSONC
// values:
//
//	JSON type  | Callbacks                 | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	member     | Key                       | "key": ...
//	array      | BeginArray, EndArray      | [ ... ]
//	value      | Value                     | true, false, null, number, string
//	--         | Separator, Comment        | "," and ":" tokens, comments
//	--         | Error                     | syntax errors
//
// Any callback may be nil, and its events are then discarded. Each callback
// receives an Anchor that reports the location and text of the token that
// produced the event, and the path of object keys and array indices leading
// to it. The Anchor is only valid for the duration of the call, but the
// values its methods return may be retained.
//
// The parser guarantees that BeginObject and EndObject, and likewise
// BeginArray and EndArray, are delivered in matched pairs even when a
// closing token is missing from the input.
//
// # Parsing
//
// The Parse function builds a plain Go value from an input, with objects as
// map[string]any and arrays as []any, and returns it together with the list
// of syntax errors found:
//
//	v, errs := jsonc.Parse(input, nil)
//	for _, err := range errs {
//	   log.Printf("Parse: %v", err)
//	}
//
// Parse is built on Visit and shares its recovery behavior: a damaged input
// yields the recognizable parts of its value along with the errors. For a
// parse that preserves member order, source locations, and number
// precision, use the ast subpackage.
package jsonc
