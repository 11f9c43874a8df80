// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Kind is the type of a lexical token in the JSONC grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Unknown Kind = iota // unrecognized input
	LBrace              // left brace "{"
	RBrace              // right brace "}"
	LSquare             // left square bracket "["
	RSquare             // right square bracket "]"
	Comma               // comma ","
	Colon               // colon ":"
	String              // quoted string
	Number              // numeric literal
	True                // constant: true
	False               // constant: false
	Null                // constant: null

	LineComment  // comment: // ... to end of line
	BlockComment // comment: /* ... */
	Space        // run of spaces and tabs
	Newline      // line break: LF, CR, or CRLF

	EOF // end of input

	// Do not modify the order of these constants without updating the
	// trivia check below.
)

// IsTrivia reports whether k is a trivia token: a comment, a run of
// whitespace, or a line break.
func (k Kind) IsTrivia() bool { return k >= LineComment && k <= Newline }

var tokenStr = [...]string{
	Unknown: "unknown token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	String:  "string",
	Number:  "number",
	True:    "true",
	False:   "false",
	Null:    "null",

	LineComment:  "line comment",
	BlockComment: "block comment",
	Space:        "space",
	Newline:      "newline",

	EOF: "end of input",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(tokenStr) {
		return tokenStr[Unknown]
	}
	return tokenStr[v]
}

// An ErrCode identifies the nature of a syntax error found while scanning
// or parsing. The lexical codes are attached to tokens by the scanner; the
// structural codes are reported by the parser, which also re-surfaces
// lexical codes through its error channel.
type ErrCode byte

// Constants defining the valid ErrCode values.
const (
	NoError ErrCode = iota

	// Lexical errors, reported by the scanner.
	UnterminatedComment // block comment not closed before end of input
	UnterminatedString  // string not closed before a line break or end of input
	UnterminatedNumber  // number broken off after a decimal point or exponent marker
	InvalidUnicode      // "\u" not followed by four hex digits
	InvalidEscape       // invalid character after a backslash
	InvalidCharacter    // unescaped control character in a string

	// Structural errors, reported by the parser.
	InvalidSymbol        // unrecognized token
	InvalidNumberFormat  // number token does not encode a value
	PropertyNameExpected // object member does not begin with a string key
	ValueExpected        // a value is required here
	ColonExpected        // missing ":" after an object key
	CommaExpected        // missing "," between members or elements
	CloseBraceExpected   // missing "}" at end of object
	CloseBracketExpected // missing "]" at end of array
	EndOfFileExpected    // extra content after the top-level value
	InvalidCommentToken  // comment found with comments disallowed
)

var errStr = [...]string{
	NoError: "no error",

	UnterminatedComment: "unterminated comment",
	UnterminatedString:  "unterminated string",
	UnterminatedNumber:  "unterminated number",
	InvalidUnicode:      "invalid unicode escape",
	InvalidEscape:       "invalid escape character",
	InvalidCharacter:    "invalid character",

	InvalidSymbol:        "invalid symbol",
	InvalidNumberFormat:  "invalid number format",
	PropertyNameExpected: "property name expected",
	ValueExpected:        "value expected",
	ColonExpected:        "colon expected",
	CommaExpected:        "comma expected",
	CloseBraceExpected:   "close brace expected",
	CloseBracketExpected: "close bracket expected",
	EndOfFileExpected:    "end of input expected",
	InvalidCommentToken:  "comments are not permitted",
}

func (e ErrCode) String() string {
	v := int(e)
	if v >= len(errStr) {
		return "invalid error code"
	}
	return errStr[v]
}

// A Scanner reads lexical tokens from a source text. Each call of Next
// advances the scanner to the next token and reports its kind. The scanner
// does not stop at malformed input: it forms the longest token it can,
// attaches an ErrCode describing the problem, and keeps going. At the end
// of the input Next returns EOF, and continues to do so on further calls.
type Scanner struct {
	src  string
	off  int  // read position
	skip bool // discard trivia tokens in Next

	tok        Kind
	start, end int     // extent of the current token
	val        string  // decoded value of a String token
	err        ErrCode // lexical error of the current token, or NoError

	// Apparent line and column offsets (0-based).
	line, col   int // at the read position
	fline, fcol int // at the start of the current token
	lline, lcol int // at the end of the current token
}

// NewScanner constructs a new lexical scanner that reads tokens from text.
func NewScanner(text string) *Scanner { return &Scanner{src: text} }

// SkipTrivia configures the scanner to discard (true) or report (false)
// trivia tokens: comments, whitespace, and line breaks. The default is
// false.
func (s *Scanner) SkipTrivia(ok bool) { s.skip = ok }

// Next advances s to the next token of the input and reports its kind.
func (s *Scanner) Next() Kind {
	for {
		kind := s.scan()
		if s.skip && kind.IsTrivia() {
			continue
		}
		return kind
	}
}

// Token returns the kind of the current token.
func (s *Scanner) Token() Kind { return s.tok }

// Err returns the lexical error attached to the current token, or NoError.
func (s *Scanner) Err() ErrCode { return s.err }

// Text returns the raw text of the current token. For strings this includes
// the enclosing quotes and any escape sequences as written.
func (s *Scanner) Text() string { return s.src[s.start:s.end] }

// Value returns the decoded value of a String token, with the quotes
// removed and escapes undone. For all other kinds it returns the same as
// Text. If the token carries a lexical error the value holds whatever
// content could be decoded.
func (s *Scanner) Value() string {
	if s.tok == String {
		return s.val
	}
	return s.Text()
}

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.start, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.fline + 1, Column: s.fcol},
		Last:  LineCol{Line: s.lline + 1, Column: s.lcol},
	}
}

// SetPosition moves the scanner to resume at the given byte offset, clamped
// to the bounds of the input, and clears the current token state. Line and
// column positions are recomputed from the start of the input, so a scanner
// reset to a previously visited offset reproduces the same tokens it
// reported the first time through.
func (s *Scanner) SetPosition(pos int) {
	pos = min(max(pos, 0), len(s.src))
	s.off = pos
	s.tok = Unknown
	s.start, s.end = pos, pos
	s.val = ""
	s.err = NoError

	s.line, s.col = 0, 0
	i := 0
	for i < pos {
		ch := s.src[i]
		i++
		if ch == '\n' || ch == '\r' {
			if ch == '\r' && i < pos && s.src[i] == '\n' {
				i++
			}
			s.line++
			s.col = 0
		} else {
			s.col++
		}
	}
	s.fline, s.fcol = s.line, s.col
	s.lline, s.lcol = s.line, s.col
}

// scan reads the next token from the input, trivia included.
func (s *Scanner) scan() Kind {
	s.tok = Unknown
	s.val = ""
	s.err = NoError
	s.start, s.fline, s.fcol = s.off, s.line, s.col

	if s.off >= len(s.src) {
		return s.token(EOF)
	}

	switch ch := s.src[s.off]; {
	case ch == ' ' || ch == '\t':
		for s.off < len(s.src) && (s.src[s.off] == ' ' || s.src[s.off] == '\t') {
			s.off++
			s.col++
		}
		return s.token(Space)

	case ch == '\n' || ch == '\r':
		s.step()
		return s.token(Newline)

	case ch == '"':
		return s.scanString()

	case ch == '/':
		return s.scanComment()

	case ch == '-' || isDigit(ch):
		return s.scanNumber()
	}
	if t, ok := selfDelim(s.src[s.off]); ok {
		s.off++
		s.col++
		return s.token(t)
	}
	return s.scanWord()
}

// token finalizes the current token as kind k, ending at the read position.
func (s *Scanner) token(k Kind) Kind {
	s.tok = k
	s.end = s.off
	s.lline, s.lcol = s.line, s.col
	return k
}

// step consumes a single input byte, folding a CRLF pair into one line
// break.
func (s *Scanner) step() {
	if ch := s.src[s.off]; ch == '\n' || ch == '\r' {
		s.off++
		if ch == '\r' && s.off < len(s.src) && s.src[s.off] == '\n' {
			s.off++
		}
		s.line++
		s.col = 0
	} else {
		s.off++
		s.col++
	}
}

// scanString scans a quoted string, decoding its content into s.val as it
// goes. The token ends at the closing quote, or before a line break or the
// end of input for an unterminated string; in that case the value holds the
// content decoded so far.
func (s *Scanner) scanString() Kind {
	s.off++ // consume the open quote
	s.col++

	var dec []byte // decoded content, nil until the first escape
	hasEscape := false
	chunk := s.off // start of the current literal chunk

	for {
		if s.off >= len(s.src) {
			s.err = UnterminatedString
			break
		}
		ch := s.src[s.off]
		if ch == '"' {
			s.setValue(dec, chunk, hasEscape)
			s.off++
			s.col++
			return s.token(String)
		}
		if ch == '\\' {
			dec = mem.Append(dec, mem.S(s.src[chunk:s.off]))
			hasEscape = true
			s.off++
			s.col++
			dec = s.escape(dec)
			chunk = s.off
			continue
		}
		if ch < 0x20 {
			if ch == '\n' || ch == '\r' {
				// The break is left for the next token.
				s.err = UnterminatedString
				break
			}
			// Keep the raw byte in the value and continue.
			s.err = InvalidCharacter
		}
		s.off++
		s.col++
	}
	s.setValue(dec, chunk, hasEscape)
	return s.token(String)
}

// setValue records the decoded value of a string token whose content ends
// at the read position.
func (s *Scanner) setValue(dec []byte, chunk int, hasEscape bool) {
	if !hasEscape {
		s.val = s.src[chunk:s.off]
		return
	}
	dec = mem.Append(dec, mem.S(s.src[chunk:s.off]))
	s.val = string(dec)
}

// escape decodes the escape sequence after a backslash and appends its
// expansion to dec. A malformed escape records an error and contributes
// nothing to the value.
func (s *Scanner) escape(dec []byte) []byte {
	if s.off >= len(s.src) {
		s.err = UnterminatedString
		return dec
	}
	ch := s.src[s.off]
	s.off++
	s.col++
	switch ch {
	case '"', '\\', '/':
		return append(dec, ch)
	case 'b':
		return append(dec, '\b')
	case 'f':
		return append(dec, '\f')
	case 'n':
		return append(dec, '\n')
	case 'r':
		return append(dec, '\r')
	case 't':
		return append(dec, '\t')
	case 'u':
		r, ok := s.hex4()
		if !ok {
			s.err = InvalidUnicode
			return dec
		}
		if utf16.IsSurrogate(r) && s.off+1 < len(s.src) && s.src[s.off] == '\\' && s.src[s.off+1] == 'u' {
			moff, mcol := s.off, s.col
			s.off += 2
			s.col += 2
			if r2, ok := s.hex4(); ok {
				if c := utf16.DecodeRune(r, r2); c != utf8.RuneError {
					return utf8.AppendRune(dec, c)
				}
			}
			// Not the other half of a pair; leave it for the next escape.
			s.off, s.col = moff, mcol
		}
		return utf8.AppendRune(dec, r) // an unpaired surrogate becomes U+FFFD
	default:
		s.err = InvalidEscape
		return dec
	}
}

// hex4 reads exactly four hex digits and reports the code unit they name.
// On failure any digits already matched stay consumed.
func (s *Scanner) hex4() (rune, bool) {
	var r rune
	for range 4 {
		if s.off >= len(s.src) {
			return 0, false
		}
		d, ok := hexDigit(s.src[s.off])
		if !ok {
			return 0, false
		}
		r = r<<4 | rune(d)
		s.off++
		s.col++
	}
	return r, true
}

// numState names a position in the grammar of a numeric literal. Scanning
// advances byte by byte from numStart; any byte that does not fit the
// current state ends the token.
type numState byte

const (
	numStart    numState = iota // before the first character
	numNeg                      // after a leading minus sign
	numZero                     // the integer part is a bare zero
	numInt                      // in the integer digit run
	numDot                      // after the decimal point
	numFrac                     // in the fraction digit run
	numExp                      // after the exponent marker
	numExpSign                  // after the exponent sign
	numExpDigit                 // in the exponent digit run
)

// scanNumber scans a numeric literal. A minus sign with no following digit
// yields an Unknown token of just the sign. A literal broken off after a
// decimal point keeps the point in its text; one broken off in the exponent
// ends before the exponent marker, though the marker and sign stay
// consumed. Both record UnterminatedNumber.
func (s *Scanner) scanNumber() Kind {
	state := numStart
	mark := -1 // token end preceding the exponent marker, or -1

scan:
	for s.off < len(s.src) {
		ch := s.src[s.off]
		switch state {
		case numStart, numNeg:
			switch {
			case ch == '-' && state == numStart:
				state = numNeg
			case ch == '0':
				state = numZero
			case isDigit(ch):
				state = numInt
			default:
				break scan // a bare minus sign
			}

		case numZero, numInt:
			switch {
			case ch == '.':
				state = numDot
			case ch == 'e' || ch == 'E':
				mark = s.off
				state = numExp
			case state == numInt && isDigit(ch):
				// extend the integer part
			default:
				break scan
			}

		case numDot:
			if !isDigit(ch) {
				s.err = UnterminatedNumber
				break scan
			}
			state = numFrac

		case numFrac:
			switch {
			case isDigit(ch):
				// extend the fraction
			case ch == 'e' || ch == 'E':
				mark = s.off
				state = numExp
			default:
				break scan
			}

		case numExp:
			switch {
			case ch == '+' || ch == '-':
				state = numExpSign
			case isDigit(ch):
				mark = -1
				state = numExpDigit
			default:
				s.err = UnterminatedNumber
				break scan
			}

		case numExpSign:
			if !isDigit(ch) {
				s.err = UnterminatedNumber
				break scan
			}
			mark = -1
			state = numExpDigit

		case numExpDigit:
			if !isDigit(ch) {
				break scan
			}
		}
		s.off++
		s.col++
	}

	switch state {
	case numStart, numNeg:
		return s.token(Unknown) // a bare minus sign
	case numDot, numExp, numExpSign:
		s.err = UnterminatedNumber
	}
	k := s.token(Number)
	if mark >= 0 {
		// Exclude the dangling exponent marker from the token.
		s.end = mark
		s.lcol = s.fcol + (mark - s.start)
	}
	return k
}

// scanComment scans a line or block comment. A slash that does not begin a
// comment yields an Unknown token of just the slash.
func (s *Scanner) scanComment() Kind {
	s.off++ // consume "/"
	s.col++
	if s.off >= len(s.src) {
		return s.token(Unknown)
	}
	switch s.src[s.off] {
	case '/': // line comment, not including the line break
		s.off++
		s.col++
		for s.off < len(s.src) && s.src[s.off] != '\n' && s.src[s.off] != '\r' {
			s.off++
			s.col++
		}
		return s.token(LineComment)

	case '*': // block comment
		s.off++
		s.col++
		for s.off < len(s.src) {
			if s.src[s.off] == '*' && s.off+1 < len(s.src) && s.src[s.off+1] == '/' {
				s.off += 2
				s.col += 2
				return s.token(BlockComment)
			}
			s.step()
		}
		s.err = UnterminatedComment
		return s.token(BlockComment)

	default:
		return s.token(Unknown)
	}
}

// scanWord scans a maximal run of unstructured characters and reports
// whether it spells one of the constants true, false, or null. Any other
// word is an Unknown token.
func (s *Scanner) scanWord() Kind {
	for s.off < len(s.src) && isWordByte(s.src[s.off]) {
		s.off++
		s.col++
	}
	switch word := mem.S(s.src[s.start:s.off]); {
	case word.Equal(memTrue):
		return s.token(True)
	case word.Equal(memFalse):
		return s.token(False)
	case word.Equal(memNull):
		return s.token(Null)
	}
	return s.token(Unknown)
}

var memTrue, memFalse, memNull = mem.S("true"), mem.S("false"), mem.S("null")

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func hexDigit(ch byte) (byte, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

// isWordByte reports whether ch may appear in an unquoted word. Words end
// at whitespace, line breaks, and the punctuation that delimits JSON
// values.
func isWordByte(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '{', '}', '[', ']', ',', ':', '"', '/':
		return false
	}
	return true
}

var self = [...]Kind{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Kind, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Unknown, false
}
