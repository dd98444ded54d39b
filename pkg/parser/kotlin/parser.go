// Package kotlin builds concrete syntax trees for Kotlin source files.
//
// The parser covers the structure the lint rules need (package and import
// headers, annotations, modifier lists, classes, functions, properties, call
// expressions, blocks and string templates) and keeps every other construct
// as plain token runs, so each byte of the input ends up in exactly one leaf.
package kotlin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/kotlint/pkg/cst"
)

// Parser implements lint.Parser for Kotlin and Kotlin script files.
// It holds no state and is safe for concurrent use.
type Parser struct{}

// New creates a Kotlin parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts source bytes into a tree whose text equals content.
func (p *Parser) Parse(ctx context.Context, _ string, content []byte) (*cst.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	return Parse(string(content))
}

// Parse parses Kotlin source text.
func Parse(src string) (*cst.Tree, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}

	ps := &parser{src: src, toks: tokens, tree: cst.NewTree()}
	root, err := ps.parseFile()
	if err != nil {
		return nil, err
	}
	if err := ps.tree.SetRoot(root); err != nil {
		return nil, err
	}
	if ps.tree.Text() != src {
		return nil, errors.New("internal error: tree text does not match source")
	}
	return ps.tree, nil
}

var modifierKeywords = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"open": true, "final": true, "abstract": true, "sealed": true,
	"override": true, "data": true, "enum": true, "annotation": true,
	"companion": true, "inner": true, "value": true, "inline": true,
	"noinline": true, "crossinline": true, "suspend": true, "tailrec": true,
	"operator": true, "infix": true, "external": true, "const": true,
	"lateinit": true, "vararg": true, "expect": true, "actual": true,
	"reified": true,
}

var declarationKeywords = map[string]bool{
	"fun": true, "class": true, "interface": true, "object": true,
	"val": true, "var": true, "typealias": true,
}

type seqMode struct {
	stopOnNewline bool
	noLambda      bool
	stop          func(tok token) bool
}

type parser struct {
	src     string
	toks    []token
	pos     int
	lastSig token
	tree    *cst.Tree
}

func (p *parser) eof() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) at(i int) token {
	if i < 0 || i >= len(p.toks) {
		return token{kind: cst.KindInvalid, off: len(p.src)}
	}
	return p.toks[i]
}

func (p *parser) peek() token {
	return p.at(p.pos)
}

// sigIndexFrom returns the index of the first non-trivia token at or after i.
func (p *parser) sigIndexFrom(i int) int {
	for i < len(p.toks) && p.toks[i].kind.IsTrivia() {
		i++
	}
	return i
}

func (p *parser) sig() token {
	return p.at(p.sigIndexFrom(p.pos))
}

func (p *parser) triviaHasNewline() bool {
	for i := p.pos; i < len(p.toks) && p.toks[i].kind.IsTrivia(); i++ {
		if p.toks[i].kind == cst.KindEOLComment || strings.Contains(p.toks[i].text, "\n") {
			return true
		}
	}
	return false
}

func (p *parser) take() cst.Node {
	tok := p.toks[p.pos]
	p.pos++
	if !tok.kind.IsTrivia() {
		p.lastSig = tok
	}
	return p.tree.NewLeaf(tok.kind, tok.text)
}

func (p *parser) takeTrivia() []cst.Node {
	var out []cst.Node
	for !p.eof() && p.peek().kind.IsTrivia() {
		out = append(out, p.take())
	}
	return out
}

func (p *parser) errorAt(tok token, format string, args ...any) error {
	line, col := lineCol(p.src, tok.off)
	return &Error{Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

func isCloser(kind cst.Kind) bool {
	return kind == cst.KindRParen || kind == cst.KindRBracket || kind == cst.KindRBrace
}

func isKeyword(tok token, text string) bool {
	return tok.kind == cst.KindKeyword && tok.text == text
}

func (p *parser) parseFile() (cst.Node, error) {
	var items []cst.Node

	for p.isFileAnnotation(p.sigIndexFrom(p.pos)) {
		items = append(items, p.takeTrivia()...)
		ann, err := p.parseAnnotation()
		if err != nil {
			return cst.Node{}, err
		}
		items = append(items, ann)
	}

	if isKeyword(p.sig(), "package") {
		items = append(items, p.takeTrivia()...)
		items = append(items, p.parseHeaderDirective(cst.KindPackageDirective))
	}

	imports, leading := p.parseImportList()
	items = append(items, leading...)
	items = append(items, imports)

	for {
		items = append(items, p.takeTrivia()...)
		if p.eof() {
			break
		}
		tok := p.peek()
		switch {
		case isCloser(tok.kind):
			return cst.Node{}, p.errorAt(tok, "unexpected %q", tok.text)
		case tok.kind == cst.KindSemicolon || tok.kind == cst.KindComma:
			items = append(items, p.take())
		default:
			stmt, err := p.parseStatement()
			if err != nil {
				return cst.Node{}, err
			}
			items = append(items, stmt)
		}
	}

	return p.tree.NewComposite(cst.KindFile, items...), nil
}

func (p *parser) isFileAnnotation(i int) bool {
	return p.at(i).kind == cst.KindAt &&
		p.at(i+1).kind == cst.KindIdentifier && p.at(i+1).text == "file" &&
		p.at(i+2).kind == cst.KindColon
}

// parseImportList collects consecutive import directives. Trivia before the
// first import is returned separately so it stays outside the list.
func (p *parser) parseImportList() (cst.Node, []cst.Node) {
	var list, leading []cst.Node
	for isKeyword(p.sig(), "import") {
		trivia := p.takeTrivia()
		if len(list) == 0 {
			leading = trivia
		} else {
			list = append(list, trivia...)
		}
		list = append(list, p.parseHeaderDirective(cst.KindImportDirective))
	}
	return p.tree.NewComposite(cst.KindImportList, list...), leading
}

// parseHeaderDirective parses a package or import directive: the keyword
// followed by a dotted name on the same line, an optional star and alias.
func (p *parser) parseHeaderDirective(kind cst.Kind) cst.Node {
	children := []cst.Node{p.take()}
	aliasAt := -1
	var semi cst.Node

loop:
	for !p.eof() {
		tok := p.peek()
		switch {
		case tok.kind == cst.KindWhitespace && !strings.Contains(tok.text, "\n"):
			if !isNamePart(p.at(p.pos + 1)) {
				break loop
			}
			children = append(children, p.take())
		case isNamePart(tok):
			if isKeyword(tok, "as") {
				aliasAt = len(children)
			}
			children = append(children, p.take())
		case tok.kind == cst.KindSemicolon:
			semi = p.take()
			break loop
		default:
			break loop
		}
	}

	if aliasAt >= 0 {
		alias := p.tree.NewComposite(cst.KindImportAlias, children[aliasAt:]...)
		children = append(children[:aliasAt:aliasAt], alias)
	}
	if !semi.IsZero() {
		children = append(children, semi)
	}
	return p.tree.NewComposite(kind, children...)
}

func isNamePart(tok token) bool {
	switch tok.kind {
	case cst.KindIdentifier, cst.KindDot:
		return true
	case cst.KindKeyword:
		return tok.text == "as"
	case cst.KindOperator:
		return tok.text == "*"
	default:
		return false
	}
}

func (p *parser) parseStatement() (cst.Node, error) {
	start := p.pos
	if p.atDeclarationStart(p.pos) {
		return p.parseDeclaration()
	}
	items, err := p.parseSequence(seqMode{stopOnNewline: true})
	if err != nil {
		return cst.Node{}, err
	}
	if p.pos == start {
		return cst.Node{}, p.errorAt(p.peek(), "unexpected %q", p.peek().text)
	}
	return p.wrap(items), nil
}

func (p *parser) wrap(items []cst.Node) cst.Node {
	if len(items) == 1 {
		return items[0]
	}
	return p.tree.NewComposite(cst.KindExpression, items...)
}

func (p *parser) atDeclarationStart(i int) bool {
	tok := p.at(i)
	switch tok.kind {
	case cst.KindAt:
		return true
	case cst.KindKeyword:
		return declarationKeywords[tok.text]
	case cst.KindIdentifier:
		return p.isModifierAt(i)
	default:
		return false
	}
}

// isModifierAt reports whether the identifier at i acts as a modifier, which
// is the case when another modifier, an annotation or a declaration keyword
// follows it.
func (p *parser) isModifierAt(i int) bool {
	tok := p.at(i)
	if tok.kind != cst.KindIdentifier || !modifierKeywords[tok.text] {
		return false
	}
	next := p.at(p.sigIndexFrom(i + 1))
	switch next.kind {
	case cst.KindAt:
		return true
	case cst.KindKeyword:
		return declarationKeywords[next.text]
	case cst.KindIdentifier:
		if next.text == "constructor" {
			return true
		}
		return p.isModifierAt(p.sigIndexFrom(i + 1))
	default:
		return false
	}
}

func (p *parser) atModifier(i int) bool {
	return p.at(i).kind == cst.KindAt || p.isModifierAt(i)
}

func (p *parser) parseDeclaration() (cst.Node, error) {
	var children []cst.Node
	if p.atModifier(p.pos) {
		mods, err := p.parseModifierList()
		if err != nil {
			return cst.Node{}, err
		}
		children = append(children, mods)
	}

	kw := p.sig()
	if kw.kind != cst.KindKeyword || !declarationKeywords[kw.text] {
		rest, err := p.parseSequence(seqMode{stopOnNewline: true})
		if err != nil {
			return cst.Node{}, err
		}
		return p.tree.NewComposite(cst.KindExpression, append(children, rest...)...), nil
	}

	children = append(children, p.takeTrivia()...)
	switch kw.text {
	case "fun":
		return p.parseFunction(children)
	case "class", "interface", "object":
		return p.parseClass(children)
	default:
		return p.parseProperty(children)
	}
}

func (p *parser) parseModifierList() (cst.Node, error) {
	var items []cst.Node
	for {
		i := p.pos
		if len(items) > 0 {
			i = p.sigIndexFrom(p.pos)
		}
		if !p.atModifier(i) {
			break
		}
		items = append(items, p.takeTrivia()...)

		if p.peek().kind == cst.KindAt {
			ann, err := p.parseAnnotation()
			if err != nil {
				return cst.Node{}, err
			}
			items = append(items, ann)
			continue
		}
		tok := p.peek()
		p.pos++
		p.lastSig = tok
		items = append(items, p.tree.NewLeaf(cst.KindKeyword, tok.text))
	}
	return p.tree.NewComposite(cst.KindModifierList, items...), nil
}

func (p *parser) parseAnnotation() (cst.Node, error) {
	children := []cst.Node{p.take()}

	if p.peek().kind == cst.KindIdentifier && p.at(p.pos+1).kind == cst.KindColon {
		children = append(children, p.take(), p.take())
	}

	switch p.peek().kind {
	case cst.KindIdentifier:
		children = append(children, p.take())
		for p.peek().kind == cst.KindDot && p.at(p.pos+1).kind == cst.KindIdentifier {
			children = append(children, p.take(), p.take())
		}
	case cst.KindLBracket:
		group, err := p.parseGroup(cst.KindRBracket)
		if err != nil {
			return cst.Node{}, err
		}
		children = append(children, group)
	}

	if p.peek().kind == cst.KindLParen {
		args, err := p.parseList(cst.KindValueArgumentList, cst.KindValueArgument)
		if err != nil {
			return cst.Node{}, err
		}
		children = append(children, args)
	}
	return p.tree.NewComposite(cst.KindAnnotation, children...), nil
}

func (p *parser) parseFunction(prefix []cst.Node) (cst.Node, error) {
	children := append(prefix, p.take())

	// Type parameters, receiver and name up to the parameter list.
	angle := 0
	for {
		tok := p.sig()
		if tok.kind == cst.KindLParen && angle == 0 {
			children = append(children, p.takeTrivia()...)
			params, err := p.parseList(cst.KindParameterList, cst.KindParameter)
			if err != nil {
				return cst.Node{}, err
			}
			children = append(children, params)
			break
		}
		if tok.kind == cst.KindInvalid || tok.kind == cst.KindLBrace || tok.kind == cst.KindSemicolon ||
			isCloser(tok.kind) || (tok.kind == cst.KindOperator && tok.text == "=") {
			return p.tree.NewComposite(cst.KindFunction, children...), nil
		}
		switch {
		case tok.kind == cst.KindOperator && tok.text == "<":
			angle++
		case tok.kind == cst.KindOperator && tok.text == ">":
			angle--
		}
		children = append(children, p.takeTrivia()...)
		children = append(children, p.take())
	}

	if p.sig().kind == cst.KindColon {
		children = append(children, p.takeTrivia()...)
		children = append(children, p.take())
		typ, err := p.parseSequence(seqMode{stopOnNewline: true, noLambda: true, stop: isBodyStart})
		if err != nil {
			return cst.Node{}, err
		}
		children = append(children, typ...)
	}

	body := p.sig()
	switch {
	case body.kind == cst.KindLBrace:
		children = append(children, p.takeTrivia()...)
		block, err := p.parseBlock(cst.KindBlock)
		if err != nil {
			return cst.Node{}, err
		}
		children = append(children, block)
	case body.kind == cst.KindOperator && body.text == "=":
		children = append(children, p.takeTrivia()...)
		children = append(children, p.take())
		expr, err := p.parseSequence(seqMode{stopOnNewline: true})
		if err != nil {
			return cst.Node{}, err
		}
		children = append(children, expr...)
	}
	return p.tree.NewComposite(cst.KindFunction, children...), nil
}

func isBodyStart(tok token) bool {
	return tok.kind == cst.KindLBrace || (tok.kind == cst.KindOperator && tok.text == "=")
}

func (p *parser) parseClass(prefix []cst.Node) (cst.Node, error) {
	children := append(prefix, p.take())

	if p.sig().kind == cst.KindIdentifier {
		children = append(children, p.takeTrivia()...)
		children = append(children, p.take())
	}
	if tok := p.peek(); tok.kind == cst.KindOperator && tok.text == "<" {
		children = append(children, p.takeTypeParameters()...)
	}

	// Primary constructor, optionally with modifiers and the keyword.
	ctor := p.sigIndexFrom(p.pos)
	sameLine := !p.triviaHasNewline()
	if sameLine && (p.atModifier(ctor) || (p.at(ctor).kind == cst.KindIdentifier && p.at(ctor).text == "constructor")) {
		children = append(children, p.takeTrivia()...)
		if p.atModifier(p.pos) {
			mods, err := p.parseModifierList()
			if err != nil {
				return cst.Node{}, err
			}
			children = append(children, mods)
			children = append(children, p.takeTrivia()...)
		}
		if p.peek().kind == cst.KindIdentifier && p.peek().text == "constructor" {
			children = append(children, p.take())
		}
	}
	if p.sig().kind == cst.KindLParen && !p.triviaHasNewline() {
		children = append(children, p.takeTrivia()...)
		params, err := p.parseList(cst.KindParameterList, cst.KindParameter)
		if err != nil {
			return cst.Node{}, err
		}
		children = append(children, params)
	}

	// Supertypes, constraints and body.
	for {
		tok := p.sig()
		switch {
		case tok.kind == cst.KindLBrace:
			children = append(children, p.takeTrivia()...)
			body, err := p.parseBlock(cst.KindClassBody)
			if err != nil {
				return cst.Node{}, err
			}
			return p.tree.NewComposite(cst.KindClass, append(children, body)...), nil
		case tok.kind == cst.KindInvalid || tok.kind == cst.KindSemicolon || isCloser(tok.kind):
			return p.tree.NewComposite(cst.KindClass, children...), nil
		case p.triviaHasNewline() && !continuesHeader(p.lastSig, tok):
			return p.tree.NewComposite(cst.KindClass, children...), nil
		}
		children = append(children, p.takeTrivia()...)
		item, err := p.parsePrimary(true)
		if err != nil {
			return cst.Node{}, err
		}
		children = append(children, item)
	}
}

func continuesHeader(prev, next token) bool {
	switch {
	case prev.kind == cst.KindColon, prev.kind == cst.KindComma, prev.kind == cst.KindDot:
		return true
	case next.kind == cst.KindColon, next.kind == cst.KindComma, next.kind == cst.KindDot:
		return true
	case next.kind == cst.KindIdentifier && (next.text == "where" || next.text == "by"):
		return true
	default:
		return false
	}
}

func (p *parser) takeTypeParameters() []cst.Node {
	var out []cst.Node
	depth := 0
	for !p.eof() {
		tok := p.peek()
		if tok.kind == cst.KindOperator {
			switch tok.text {
			case "<":
				depth++
			case ">":
				depth--
			}
		}
		out = append(out, p.take())
		if depth == 0 {
			break
		}
	}
	return out
}

func (p *parser) parseProperty(prefix []cst.Node) (cst.Node, error) {
	children := append(prefix, p.take())
	rest, err := p.parseSequence(seqMode{stopOnNewline: true})
	if err != nil {
		return cst.Node{}, err
	}
	return p.tree.NewComposite(cst.KindProperty, append(children, rest...)...), nil
}

// parseList parses a parenthesized, comma separated list into listKind with
// one itemKind child per element. Whitespace and comments between elements
// belong to the list.
func (p *parser) parseList(listKind, itemKind cst.Kind) (cst.Node, error) {
	open := p.peek()
	items := []cst.Node{p.take()}
	for {
		items = append(items, p.takeTrivia()...)
		tok := p.peek()
		switch {
		case tok.kind == cst.KindRParen:
			items = append(items, p.take())
			return p.tree.NewComposite(listKind, items...), nil
		case tok.kind == cst.KindInvalid:
			return cst.Node{}, p.errorAt(open, "unclosed %q", open.text)
		case isCloser(tok.kind):
			return cst.Node{}, p.errorAt(tok, "unexpected %q", tok.text)
		case tok.kind == cst.KindComma:
			items = append(items, p.take())
			continue
		}

		seq, err := p.parseSequence(seqMode{stop: func(t token) bool { return t.kind == cst.KindComma }})
		if err != nil {
			return cst.Node{}, err
		}
		core, trailing := splitTrailingTrivia(seq)
		items = append(items, p.tree.NewComposite(itemKind, core...))
		items = append(items, trailing...)
	}
}

func splitTrailingTrivia(items []cst.Node) ([]cst.Node, []cst.Node) {
	end := len(items)
	for end > 0 && items[end-1].Kind().IsTrivia() {
		end--
	}
	return items[:end], items[end:]
}

// parseGroup parses a parenthesized or bracketed expression.
func (p *parser) parseGroup(closer cst.Kind) (cst.Node, error) {
	open := p.peek()
	items := []cst.Node{p.take()}
	seq, err := p.parseSequence(seqMode{})
	if err != nil {
		return cst.Node{}, err
	}
	items = append(items, seq...)
	items = append(items, p.takeTrivia()...)

	tok := p.peek()
	switch {
	case tok.kind == closer:
		items = append(items, p.take())
		return p.tree.NewComposite(cst.KindExpression, items...), nil
	case tok.kind == cst.KindInvalid:
		return cst.Node{}, p.errorAt(open, "unclosed %q", open.text)
	default:
		return cst.Node{}, p.errorAt(tok, "unexpected %q", tok.text)
	}
}

func (p *parser) parseBlock(kind cst.Kind) (cst.Node, error) {
	open := p.peek()
	items := []cst.Node{p.take()}
	for {
		items = append(items, p.takeTrivia()...)
		tok := p.peek()
		switch {
		case tok.kind == cst.KindInvalid:
			return cst.Node{}, p.errorAt(open, "unclosed %q", open.text)
		case tok.kind == cst.KindRBrace:
			items = append(items, p.take())
			return p.tree.NewComposite(kind, items...), nil
		case isCloser(tok.kind):
			return cst.Node{}, p.errorAt(tok, "unexpected %q", tok.text)
		case tok.kind == cst.KindSemicolon || tok.kind == cst.KindComma:
			items = append(items, p.take())
		default:
			stmt, err := p.parseStatement()
			if err != nil {
				return cst.Node{}, err
			}
			items = append(items, stmt)
		}
	}
}

func (p *parser) parseString() cst.Node {
	children := []cst.Node{p.take()}
	for !p.eof() {
		closing := p.peek().kind == cst.KindStringQuote
		children = append(children, p.take())
		if closing {
			break
		}
	}
	return p.tree.NewComposite(cst.KindStringTemplate, children...)
}

// parseSequence consumes expression items until a closer, a stop token or,
// in statement mode, the end of the statement. Trivia directly before the
// terminating token is left unconsumed.
func (p *parser) parseSequence(mode seqMode) ([]cst.Node, error) {
	var items []cst.Node
	for !p.eof() {
		tok := p.peek()
		if tok.kind.IsTrivia() {
			next := p.sig()
			if next.kind == cst.KindInvalid || isCloser(next.kind) || (mode.stop != nil && mode.stop(next)) {
				return items, nil
			}
			if mode.stopOnNewline && (next.kind == cst.KindSemicolon ||
				(p.triviaHasNewline() && !continues(p.lastSig, next))) {
				return items, nil
			}
			items = append(items, p.takeTrivia()...)
			continue
		}

		if isCloser(tok.kind) || (mode.stop != nil && mode.stop(tok)) {
			return items, nil
		}
		if mode.stopOnNewline && tok.kind == cst.KindSemicolon {
			return items, nil
		}

		item, err := p.parsePrimary(mode.noLambda)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// continues reports whether a line break between prev and next keeps the
// statement going.
func continues(prev, next token) bool {
	switch prev.kind {
	case cst.KindDot, cst.KindComma, cst.KindColon, cst.KindAt:
		return true
	case cst.KindOperator:
		switch prev.text {
		case "++", "--", "!!", ">", "?":
		default:
			return true
		}
	case cst.KindKeyword:
		switch prev.text {
		case "else", "in", "is", "as":
			return true
		}
	}

	switch next.kind {
	case cst.KindDot:
		return true
	case cst.KindOperator:
		switch next.text {
		case "?.", "?:", "&&", "||", "::", "..", "..<", "->", "|", "&":
			return true
		}
	case cst.KindKeyword:
		return next.text == "else" || next.text == "as"
	case cst.KindIdentifier:
		return next.text == "catch" || next.text == "finally"
	}
	return false
}

func (p *parser) parsePrimary(noLambda bool) (cst.Node, error) {
	tok := p.peek()
	switch tok.kind {
	case cst.KindIdentifier, cst.KindKeyword:
		if tok.kind == cst.KindKeyword {
			switch tok.text {
			case "fun":
				return p.parseFunction(nil)
			case "object", "class", "interface":
				return p.parseClass(nil)
			case "val", "var":
				return p.parseProperty(nil)
			case "this", "super":
			default:
				return p.take(), nil
			}
		}
		if p.at(p.pos+1).kind == cst.KindLParen {
			return p.parseCall(noLambda)
		}
		if !noLambda && tok.kind == cst.KindIdentifier && p.lambdaFollows(p.pos+1) {
			children := []cst.Node{p.take()}
			children = append(children, p.takeTrivia()...)
			block, err := p.parseBlock(cst.KindBlock)
			if err != nil {
				return cst.Node{}, err
			}
			return p.tree.NewComposite(cst.KindCallExpression, append(children, block)...), nil
		}
		return p.take(), nil
	case cst.KindLParen:
		return p.parseGroup(cst.KindRParen)
	case cst.KindLBracket:
		return p.parseGroup(cst.KindRBracket)
	case cst.KindLBrace:
		return p.parseBlock(cst.KindBlock)
	case cst.KindStringQuote:
		return p.parseString(), nil
	case cst.KindAt:
		return p.parseAnnotation()
	default:
		return p.take(), nil
	}
}

func (p *parser) parseCall(noLambda bool) (cst.Node, error) {
	children := []cst.Node{p.take()}
	args, err := p.parseList(cst.KindValueArgumentList, cst.KindValueArgument)
	if err != nil {
		return cst.Node{}, err
	}
	children = append(children, args)
	if !noLambda && p.lambdaFollows(p.pos) {
		children = append(children, p.takeTrivia()...)
		block, err := p.parseBlock(cst.KindBlock)
		if err != nil {
			return cst.Node{}, err
		}
		children = append(children, block)
	}
	return p.tree.NewComposite(cst.KindCallExpression, children...), nil
}

// lambdaFollows reports whether a trailing lambda starts at i, allowing
// spaces but no line break before the brace.
func (p *parser) lambdaFollows(i int) bool {
	tok := p.at(i)
	if tok.kind == cst.KindWhitespace && !strings.Contains(tok.text, "\n") {
		tok = p.at(i + 1)
	}
	return tok.kind == cst.KindLBrace
}
