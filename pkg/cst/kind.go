package cst

import "strconv"

// Kind classifies a node in the concrete syntax tree.
type Kind uint16

// Composite kinds own children. Leaf kinds carry raw text.
const (
	KindInvalid Kind = iota

	// Composite nodes.
	KindFile
	KindPackageDirective
	KindImportList
	KindImportDirective
	KindImportAlias
	KindAnnotation
	KindModifierList
	KindClass
	KindClassBody
	KindFunction
	KindParameterList
	KindParameter
	KindProperty
	KindBlock
	KindCallExpression
	KindValueArgumentList
	KindValueArgument
	KindStringTemplate
	KindExpression

	// Leaf nodes.
	KindWhitespace
	KindEOLComment
	KindBlockComment
	KindKDoc
	KindIdentifier
	KindKeyword
	KindNumber
	KindCharacter
	KindStringContent
	KindStringQuote
	KindTemplateEntry
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket
	KindComma
	KindDot
	KindColon
	KindSemicolon
	KindAt
	KindOperator

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:           "Invalid",
	KindFile:              "File",
	KindPackageDirective:  "PackageDirective",
	KindImportList:        "ImportList",
	KindImportDirective:   "ImportDirective",
	KindImportAlias:       "ImportAlias",
	KindAnnotation:        "Annotation",
	KindModifierList:      "ModifierList",
	KindClass:             "Class",
	KindClassBody:         "ClassBody",
	KindFunction:          "Function",
	KindParameterList:     "ParameterList",
	KindParameter:         "Parameter",
	KindProperty:          "Property",
	KindBlock:             "Block",
	KindCallExpression:    "CallExpression",
	KindValueArgumentList: "ValueArgumentList",
	KindValueArgument:     "ValueArgument",
	KindStringTemplate:    "StringTemplate",
	KindExpression:        "Expression",
	KindWhitespace:        "Whitespace",
	KindEOLComment:        "EOLComment",
	KindBlockComment:      "BlockComment",
	KindKDoc:              "KDoc",
	KindIdentifier:        "Identifier",
	KindKeyword:           "Keyword",
	KindNumber:            "Number",
	KindCharacter:         "Character",
	KindStringContent:     "StringContent",
	KindStringQuote:       "StringQuote",
	KindTemplateEntry:     "TemplateEntry",
	KindLParen:            "LParen",
	KindRParen:            "RParen",
	KindLBrace:            "LBrace",
	KindRBrace:            "RBrace",
	KindLBracket:          "LBracket",
	KindRBracket:          "RBracket",
	KindComma:             "Comma",
	KindDot:               "Dot",
	KindColon:             "Colon",
	KindSemicolon:         "Semicolon",
	KindAt:                "At",
	KindOperator:          "Operator",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsLeaf reports whether nodes of this kind carry text instead of children.
func (k Kind) IsLeaf() bool {
	return k >= KindWhitespace && k < kindCount
}

// IsComment reports whether the kind is any comment flavour.
func (k Kind) IsComment() bool {
	switch k {
	case KindEOLComment, KindBlockComment, KindKDoc:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether the kind is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	return k == KindWhitespace || k.IsComment()
}

// IsDeclaration reports whether the kind is a top-level or member declaration.
func (k Kind) IsDeclaration() bool {
	switch k {
	case KindClass, KindFunction, KindProperty:
		return true
	default:
		return false
	}
}
