// Package selector builds CSS selector strings from typed parts.
//
// A selector is assembled fluently, one category at a time, in the order CSS
// mandates: element, id, classes, attributes, pseudo-classes, pseudo-element.
// Two selectors can be joined with a combinator into a compound selector.
// The package only constructs and renders selector text - it does not parse
// CSS or match selectors against a document.
package selector

import "strings"

// Category identifies one of the six selector part kinds. The declaration
// order is the mandated category order: a part may only be added while no
// later category holds an entry.
type Category int

const (
	CategoryElement Category = iota
	CategoryID
	CategoryClass
	CategoryAttribute
	CategoryPseudoClass
	CategoryPseudoElement
)

// String returns the category name for error messages and logging.
func (c Category) String() string {
	switch c {
	case CategoryElement:
		return "element"
	case CategoryID:
		return "id"
	case CategoryClass:
		return "class"
	case CategoryAttribute:
		return "attribute"
	case CategoryPseudoClass:
		return "pseudo-class"
	case CategoryPseudoElement:
		return "pseudo-element"
	default:
		return "unknown"
	}
}

// unique reports whether the category admits at most one fragment.
func (c Category) unique() bool {
	return c == CategoryElement || c == CategoryID || c == CategoryPseudoElement
}

// Combinator joins two selectors in a compound selector.
type Combinator string

const (
	Descendant      Combinator = " "
	Child           Combinator = ">"
	AdjacentSibling Combinator = "+"
	GeneralSibling  Combinator = "~"
)

// Valid checks that the combinator is one of the four CSS combinator tokens.
func (c Combinator) Valid() bool {
	switch c {
	case Descendant, Child, AdjacentSibling, GeneralSibling:
		return true
	default:
		return false
	}
}

// Selector is anything that renders to CSS selector text: a Builder, a
// finished Simple or Compound value, or a Raw string.
type Selector interface {
	String() string
}

// Raw is a pre-rendered selector used verbatim, typically as a Combine operand.
type Raw string

func (r Raw) String() string { return string(r) }

// Simple holds the accumulated fragments of a selector without combinators.
// Element, id and pseudo-element admit a single fragment; the remaining
// categories keep every fragment in insertion order. Presence of the
// single-fragment categories is tracked explicitly so an empty fragment still
// occupies its category.
type Simple struct {
	element          string
	hasElement       bool
	id               string
	hasID            bool
	classes          []string
	attrs            []string
	pseudoClasses    []string
	pseudoElement    string
	hasPseudoElement bool
}

// String renders the selector in fixed category order. Each category uses its
// own glue: classes are dot-prefixed and dot-joined, attribute fragments share
// a single bracket pair, pseudo-classes are colon-prefixed and colon-joined,
// the pseudo-element gets a double colon. Absent categories contribute
// nothing. Rendering is a pure read and can be repeated.
func (s *Simple) String() string {
	var b strings.Builder
	b.WriteString(s.element)
	if s.hasID {
		b.WriteString("#")
		b.WriteString(s.id)
	}
	if len(s.classes) > 0 {
		b.WriteString(".")
		b.WriteString(strings.Join(s.classes, "."))
	}
	if len(s.attrs) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(s.attrs, ""))
		b.WriteString("]")
	}
	if len(s.pseudoClasses) > 0 {
		b.WriteString(":")
		b.WriteString(strings.Join(s.pseudoClasses, ":"))
	}
	if s.hasPseudoElement {
		b.WriteString("::")
		b.WriteString(s.pseudoElement)
	}
	return b.String()
}

// Compound joins two already-rendered selectors with a combinator.
type Compound struct {
	left       string
	combinator Combinator
	right      string
}

// Left returns the rendered left operand.
func (c *Compound) Left() string { return c.left }

// Right returns the rendered right operand.
func (c *Compound) Right() string { return c.right }

// Combinator returns the joining combinator token.
func (c *Compound) Combinator() Combinator { return c.combinator }

// String interpolates "left combinator right" with single spaces around the
// combinator token. The descendant combinator is itself a space, so it renders
// with three spaces between the operands. That is the documented contract,
// kept literal.
func (c *Compound) String() string {
	return c.left + " " + string(c.combinator) + " " + c.right
}
