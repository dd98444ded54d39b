package kotlin

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/kotlint/pkg/cst"
)

type token struct {
	kind cst.Kind
	text string
	off  int
}

// hardKeywords are reserved everywhere. Soft and modifier keywords are lexed
// as identifiers and recognized by the parser in context.
var hardKeywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true,
	"else": true, "false": true, "for": true, "fun": true, "if": true,
	"import": true, "in": true, "interface": true, "is": true, "null": true,
	"object": true, "package": true, "return": true, "super": true,
	"this": true, "throw": true, "true": true, "try": true,
	"typealias": true, "typeof": true, "val": true, "var": true,
	"when": true, "while": true,
}

// operators in longest-match order.
var operators = []string{
	"..<", "===", "!==",
	"?.", "?:", "::", "..", "->", "==", "!=", "<=", ">=", "&&", "||",
	"++", "--", "+=", "-=", "*=", "/=", "%=", "!!",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "?", "&", "|", "~", "^", "#",
}

type lexer struct {
	src    string
	pos    int
	tokens []token
}

func lex(src string) ([]token, error) {
	lx := &lexer{src: src}
	if strings.HasPrefix(src, "#!") {
		lx.emitUntilEOL(cst.KindEOLComment)
	}
	for lx.pos < len(lx.src) {
		if err := lx.next(); err != nil {
			return nil, err
		}
	}
	return lx.tokens, nil
}

func (lx *lexer) emit(kind cst.Kind, start int) {
	lx.tokens = append(lx.tokens, token{kind: kind, text: lx.src[start:lx.pos], off: start})
}

func (lx *lexer) peekAt(offset int) byte {
	if lx.pos+offset >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+offset]
}

func (lx *lexer) emitUntilEOL(kind cst.Kind) {
	start := lx.pos
	end := strings.IndexByte(lx.src[lx.pos:], '\n')
	if end < 0 {
		lx.pos = len(lx.src)
	} else {
		lx.pos += end
	}
	lx.emit(kind, start)
}

func (lx *lexer) next() error {
	start := lx.pos
	ch := lx.src[lx.pos]

	switch {
	case isSpace(ch):
		for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
			lx.pos++
		}
		lx.emit(cst.KindWhitespace, start)
		return nil

	case ch == '/' && lx.peekAt(1) == '/':
		lx.emitUntilEOL(cst.KindEOLComment)
		return nil

	case ch == '/' && lx.peekAt(1) == '*':
		return lx.blockComment()

	case ch == '"':
		return lx.stringLiteral()

	case ch == '\'':
		return lx.charLiteral()

	case ch == '`':
		end := strings.IndexAny(lx.src[lx.pos+1:], "`\n")
		if end < 0 || lx.src[lx.pos+1+end] != '`' {
			return lx.errorf(start, "unterminated backtick identifier")
		}
		lx.pos += end + 2
		lx.emit(cst.KindIdentifier, start)
		return nil

	case isDigit(ch) || (ch == '.' && isDigit(lx.peekAt(1))):
		lx.number()
		lx.emit(cst.KindNumber, start)
		return nil
	}

	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	if r == '_' || unicode.IsLetter(r) {
		lx.pos += size
		for lx.pos < len(lx.src) {
			r, size = utf8.DecodeRuneInString(lx.src[lx.pos:])
			if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			lx.pos += size
		}
		if hardKeywords[lx.src[start:lx.pos]] {
			lx.emit(cst.KindKeyword, start)
		} else {
			lx.emit(cst.KindIdentifier, start)
		}
		return nil
	}

	if kind, ok := punctuation[ch]; ok {
		if !(ch == '.' && lx.peekAt(1) == '.') && !(ch == ':' && lx.peekAt(1) == ':') {
			lx.pos++
			lx.emit(kind, start)
			return nil
		}
	}

	for _, op := range operators {
		if strings.HasPrefix(lx.src[lx.pos:], op) {
			lx.pos += len(op)
			lx.emit(cst.KindOperator, start)
			return nil
		}
	}

	// Anything else is kept verbatim so the tree still covers every byte.
	lx.pos += size
	lx.emit(cst.KindOperator, start)
	return nil
}

var punctuation = map[byte]cst.Kind{
	'(': cst.KindLParen,
	')': cst.KindRParen,
	'{': cst.KindLBrace,
	'}': cst.KindRBrace,
	'[': cst.KindLBracket,
	']': cst.KindRBracket,
	',': cst.KindComma,
	'.': cst.KindDot,
	':': cst.KindColon,
	';': cst.KindSemicolon,
	'@': cst.KindAt,
}

func (lx *lexer) blockComment() error {
	start := lx.pos
	kind := cst.KindBlockComment
	if strings.HasPrefix(lx.src[lx.pos:], "/**") && !strings.HasPrefix(lx.src[lx.pos:], "/**/") {
		kind = cst.KindKDoc
	}
	lx.pos += 2
	depth := 1
	for lx.pos < len(lx.src) {
		switch {
		case strings.HasPrefix(lx.src[lx.pos:], "/*"):
			depth++
			lx.pos += 2
		case strings.HasPrefix(lx.src[lx.pos:], "*/"):
			depth--
			lx.pos += 2
			if depth == 0 {
				lx.emit(kind, start)
				return nil
			}
		default:
			lx.pos++
		}
	}
	return lx.errorf(start, "unterminated comment")
}

func (lx *lexer) charLiteral() error {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
		case '\'':
			lx.pos++
			lx.emit(cst.KindCharacter, start)
			return nil
		case '\n':
			return lx.errorf(start, "unterminated character literal")
		default:
			lx.pos++
		}
	}
	return lx.errorf(start, "unterminated character literal")
}

func (lx *lexer) number() {
	if lx.src[lx.pos] == '0' && (lx.peekAt(1) == 'x' || lx.peekAt(1) == 'X' || lx.peekAt(1) == 'b' || lx.peekAt(1) == 'B') {
		lx.pos += 2
	}
	lx.alnum()
	if lx.peekAt(0) == '.' && isDigit(lx.peekAt(1)) {
		lx.pos++
		lx.alnum()
	}
	if (lx.peekAt(0) == '+' || lx.peekAt(0) == '-') && lx.pos > 0 &&
		(lx.src[lx.pos-1] == 'e' || lx.src[lx.pos-1] == 'E') && isDigit(lx.peekAt(1)) {
		lx.pos++
		lx.alnum()
	}
}

func (lx *lexer) alnum() {
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		if !isDigit(ch) && ch != '_' && !(ch >= 'a' && ch <= 'z') && !(ch >= 'A' && ch <= 'Z') {
			return
		}
		lx.pos++
	}
}

// stringLiteral emits the opening quote, content runs, template entries and
// the closing quote as separate tokens.
func (lx *lexer) stringLiteral() error {
	start := lx.pos
	raw := strings.HasPrefix(lx.src[lx.pos:], `"""`)
	quote := `"`
	if raw {
		quote = `"""`
	}
	lx.pos += len(quote)
	lx.emit(cst.KindStringQuote, start)

	contentStart := lx.pos
	flush := func() {
		if lx.pos > contentStart {
			lx.emit(cst.KindStringContent, contentStart)
		}
	}

	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		switch {
		case raw && strings.HasPrefix(lx.src[lx.pos:], `"""`):
			// Extra quotes before the closing triple belong to the content.
			for strings.HasPrefix(lx.src[lx.pos+1:], `"""`) {
				lx.pos++
			}
			flush()
			closeStart := lx.pos
			lx.pos += 3
			lx.emit(cst.KindStringQuote, closeStart)
			return nil

		case !raw && ch == '"':
			flush()
			closeStart := lx.pos
			lx.pos++
			lx.emit(cst.KindStringQuote, closeStart)
			return nil

		case !raw && ch == '\n':
			return lx.errorf(start, "unterminated string")

		case !raw && ch == '\\':
			lx.pos += 2

		case ch == '$' && lx.peekAt(1) == '{':
			flush()
			entryStart := lx.pos
			if err := lx.templateExpression(); err != nil {
				return err
			}
			lx.emit(cst.KindTemplateEntry, entryStart)
			contentStart = lx.pos

		case ch == '$' && isIdentStart(lx.src[lx.pos+1:]):
			flush()
			entryStart := lx.pos
			lx.pos++
			for lx.pos < len(lx.src) {
				r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				lx.pos += size
			}
			lx.emit(cst.KindTemplateEntry, entryStart)
			contentStart = lx.pos

		default:
			lx.pos++
		}
	}
	return lx.errorf(start, "unterminated string")
}

func (lx *lexer) templateExpression() error {
	start := lx.pos
	lx.pos += 2
	depth := 1
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				lx.pos++
				return nil
			}
		case '"':
			// Nested string literal inside the template expression.
			end := strings.IndexByte(lx.src[lx.pos+1:], '"')
			if end < 0 {
				return lx.errorf(start, "unterminated string template")
			}
			lx.pos += end + 1
		}
		lx.pos++
	}
	return lx.errorf(start, "unterminated string template")
}

func (lx *lexer) errorf(offset int, msg string) error {
	line, col := lineCol(lx.src, offset)
	return &Error{Line: line, Column: col, Message: msg}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r)
}

func lineCol(src string, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}
	line := 1 + strings.Count(src[:offset], "\n")
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	return line, utf8.RuneCountInString(src[lineStart:offset]) + 1
}
