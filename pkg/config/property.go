package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// UnsetValue is the literal that switches a property's constraint off.
const UnsetValue = "unset"

// PropertyType is the value type of an editorconfig-style property.
type PropertyType int

const (
	TypeInt PropertyType = iota
	TypeBool
	TypeEnum
	TypeList
	TypeIndentStyle
)

func (t PropertyType) String() string {
	switch t {
	case TypeInt:
		return "integer"
	case TypeBool:
		return "boolean"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	case TypeIndentStyle:
		return "indent style"
	default:
		return "PropertyType(" + strconv.Itoa(int(t)) + ")"
	}
}

// IndentStyle values.
const (
	IndentSpace = "space"
	IndentTab   = "tab"
)

// Property declares a named, typed setting with a default.
type Property struct {
	Name        string
	Type        PropertyType
	Description string

	// Default is the raw default, written the way it would appear in an
	// .editorconfig file. UnsetValue makes the property unset by default.
	Default string

	// Values lists the allowed values of an enum property.
	Values []string

	// OffIsUnset makes "off" an alias of UnsetValue, the convention used by
	// max_line_length.
	OffIsUnset bool
}

// Value is a resolved property value.
type Value struct {
	Type  PropertyType
	Unset bool
	Int   int
	Bool  bool
	Str   string
	List  []string
}

// Parse coerces a raw string into a value of the property's type.
func (p Property) Parse(raw string) (Value, error) {
	text := strings.TrimSpace(raw)
	lower := strings.ToLower(text)
	if lower == UnsetValue || (p.OffIsUnset && lower == "off") {
		return Value{Type: p.Type, Unset: true}, nil
	}

	switch p.Type {
	case TypeInt:
		n, err := strconv.Atoi(text)
		if err != nil {
			return Value{}, fmt.Errorf("expected integer, got %q", raw)
		}
		return Value{Type: TypeInt, Int: n}, nil

	case TypeBool:
		b, err := strconv.ParseBool(lower)
		if err != nil {
			return Value{}, fmt.Errorf("expected boolean, got %q", raw)
		}
		return Value{Type: TypeBool, Bool: b}, nil

	case TypeEnum:
		if !slices.Contains(p.Values, lower) {
			return Value{}, fmt.Errorf("expected one of %s, got %q", strings.Join(p.Values, ", "), raw)
		}
		return Value{Type: TypeEnum, Str: lower}, nil

	case TypeIndentStyle:
		if lower != IndentSpace && lower != IndentTab {
			return Value{}, fmt.Errorf("expected %s or %s, got %q", IndentSpace, IndentTab, raw)
		}
		return Value{Type: TypeIndentStyle, Str: lower}, nil

	case TypeList:
		var items []string
		for _, item := range strings.Split(text, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return Value{Type: TypeList, List: items}, nil

	default:
		return Value{}, fmt.Errorf("unknown property type %s", p.Type)
	}
}

// DefaultValue returns the parsed default. A default that does not parse is
// a programming error.
func (p Property) DefaultValue() Value {
	v, err := p.Parse(p.Default)
	if err != nil {
		panic(fmt.Sprintf("config: property %s has invalid default %q: %v", p.Name, p.Default, err))
	}
	return v
}

// Properties shared by the engine and several rules.
var (
	IndentSizeProperty = Property{
		Name:        "indent_size",
		Type:        TypeInt,
		Default:     "4",
		Description: "Number of columns per indentation level",
	}
	IndentStyleProperty = Property{
		Name:        "indent_style",
		Type:        TypeIndentStyle,
		Default:     IndentSpace,
		Description: "Indent with spaces or tabs",
	}
	MaxLineLengthProperty = Property{
		Name:        "max_line_length",
		Type:        TypeInt,
		Default:     UnsetValue,
		OffIsUnset:  true,
		Description: "Maximum line length; unset or off disables the limit",
	}
	InsertFinalNewlineProperty = Property{
		Name:        "insert_final_newline",
		Type:        TypeBool,
		Default:     "true",
		Description: "Require the file to end with a newline",
	}
	DisabledRulesProperty = Property{
		Name:        "ktlint_disabled_rules",
		Type:        TypeList,
		Default:     "",
		Description: "Comma separated rule ids to disable",
	}
	ExperimentalProperty = Property{
		Name:        "ktlint_experimental",
		Type:        TypeEnum,
		Default:     "disabled",
		Values:      []string{"enabled", "disabled"},
		Description: "Run experimental rules",
	}
)

// CoreProperties returns the properties every file resolves regardless of
// the active rules.
func CoreProperties() []Property {
	return []Property{
		IndentSizeProperty,
		IndentStyleProperty,
		MaxLineLengthProperty,
		InsertFinalNewlineProperty,
		DisabledRulesProperty,
		ExperimentalProperty,
	}
}
