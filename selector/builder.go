package selector

import (
	"errors"
	"fmt"
)

// UniquenessError reports a second fragment for a category that admits only
// one (element, id or pseudo-element).
type UniquenessError struct {
	Category Category
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("selector: %s is already set", e.Category)
}

// OrderError reports a fragment added after a later-ordered category already
// holds an entry, e.g. a class after an attribute.
type OrderError struct {
	Category Category // category being added
	After    Category // highest category already present
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("selector: %s cannot follow %s", e.Category, e.After)
}

// Builder accumulates selector fragments under the category order and
// uniqueness rules. Methods chain; the first violation latches as a sticky
// error, later calls become no-ops and Build reports it. The zero value is
// ready to use.
type Builder struct {
	sel  Simple
	high Category // highest category touched so far
	set  bool     // any category touched at all
	err  error
}

// New returns an empty builder.
func New() *Builder { return &Builder{} }

// Element starts a new selector with an element (type) fragment.
func Element(v string) *Builder { return New().Element(v) }

// ID starts a new selector with an id fragment.
func ID(v string) *Builder { return New().ID(v) }

// Class starts a new selector with a class fragment.
func Class(v string) *Builder { return New().Class(v) }

// Attr starts a new selector with an attribute fragment.
func Attr(v string) *Builder { return New().Attr(v) }

// PseudoClass starts a new selector with a pseudo-class fragment.
func PseudoClass(v string) *Builder { return New().PseudoClass(v) }

// PseudoElement starts a new selector with a pseudo-element fragment.
func PseudoElement(v string) *Builder { return New().PseudoElement(v) }

// check validates the category order and uniqueness rules for adding a
// fragment of category c, latching the first violation.
func (b *Builder) check(c Category, present bool) bool {
	if b.err != nil {
		return false
	}
	if b.set && c < b.high {
		b.err = &OrderError{Category: c, After: b.high}
		return false
	}
	if present {
		b.err = &UniquenessError{Category: c}
		return false
	}
	return true
}

func (b *Builder) touch(c Category) {
	b.high = c
	b.set = true
}

// Element sets the element (type) fragment. At most one is allowed and it
// must come before every other category.
func (b *Builder) Element(v string) *Builder {
	if b.check(CategoryElement, b.sel.hasElement) {
		b.sel.element = v
		b.sel.hasElement = true
		b.touch(CategoryElement)
	}
	return b
}

// ID sets the id fragment. At most one is allowed.
func (b *Builder) ID(v string) *Builder {
	if b.check(CategoryID, b.sel.hasID) {
		b.sel.id = v
		b.sel.hasID = true
		b.touch(CategoryID)
	}
	return b
}

// Class appends a class fragment. Repeats are allowed and kept in call order.
func (b *Builder) Class(v string) *Builder {
	if b.check(CategoryClass, false) {
		b.sel.classes = append(b.sel.classes, v)
		b.touch(CategoryClass)
	}
	return b
}

// Attr appends an attribute expression fragment, e.g. `href$=".png"`.
// All attribute fragments render inside a single bracket pair.
func (b *Builder) Attr(v string) *Builder {
	if b.check(CategoryAttribute, false) {
		b.sel.attrs = append(b.sel.attrs, v)
		b.touch(CategoryAttribute)
	}
	return b
}

// PseudoClass appends a pseudo-class fragment, e.g. "hover" or "nth-child(2)".
func (b *Builder) PseudoClass(v string) *Builder {
	if b.check(CategoryPseudoClass, false) {
		b.sel.pseudoClasses = append(b.sel.pseudoClasses, v)
		b.touch(CategoryPseudoClass)
	}
	return b
}

// PseudoElement sets the pseudo-element fragment. At most one is allowed.
func (b *Builder) PseudoElement(v string) *Builder {
	if b.check(CategoryPseudoElement, b.sel.hasPseudoElement) {
		b.sel.pseudoElement = v
		b.sel.hasPseudoElement = true
		b.touch(CategoryPseudoElement)
	}
	return b
}

// Err returns the sticky error, if any.
func (b *Builder) Err() error { return b.err }

// Selector returns the accumulated Simple selector and the sticky error.
func (b *Builder) Selector() (*Simple, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &b.sel, nil
}

// Build renders the accumulated selector or reports the sticky error.
// Building does not consume the builder: repeated calls return the same
// string and further fragments may still be added afterwards.
func (b *Builder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return b.sel.String(), nil
}

// String renders the accumulated selector, or "" when a sticky error is
// latched - a broken chain must not leak a partial selector to Stringer
// consumers. Use Build when the error itself matters.
func (b *Builder) String() string {
	if b.err != nil {
		return ""
	}
	return b.sel.String()
}

// ErrCombinator reports an unsupported combinator token passed to Combine.
var ErrCombinator = errors.New("selector: unsupported combinator")

// Combine joins two selectors with a combinator into a compound selector.
// Operands may be builders, finished Simple or Compound values, or Raw
// strings; builder operands are rendered at this point and a pending builder
// error fails the combination.
func Combine(left Selector, c Combinator, right Selector) (*Compound, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrCombinator, string(c))
	}
	ls, err := render(left)
	if err != nil {
		return nil, fmt.Errorf("left operand: %w", err)
	}
	rs, err := render(right)
	if err != nil {
		return nil, fmt.Errorf("right operand: %w", err)
	}
	return &Compound{left: ls, combinator: c, right: rs}, nil
}

func render(s Selector) (string, error) {
	if b, ok := s.(*Builder); ok {
		return b.Build()
	}
	return s.String(), nil
}
