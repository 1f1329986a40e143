package selector

import (
	"errors"
	"fmt"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrFragment reports a fragment value that cannot appear in its category.
var ErrFragment = errors.New("selector: bad fragment")

// CheckFragment tokenizes a single fragment value and reports whether it is
// lexically acceptable for the category. Element, id and class fragments must
// be a single identifier (element also accepts the universal "*"); attribute
// and pseudo-class fragments accept any clean token run. This is a per-value
// check for early error reporting, not selector parsing - builders accept any
// string.
func CheckFragment(c Category, v string) error {
	if v == "" {
		return fmt.Errorf("%w: empty %s value", ErrFragment, c)
	}

	l := css.NewLexer(parse.NewInputString(v))

	var n int // token count
	var idents, others int
	var universal bool
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return fmt.Errorf("%w: %s value %q: %v", ErrFragment, c, v, err)
			}
			break
		}
		n++
		switch tt {
		case css.BadStringToken, css.BadURLToken:
			return fmt.Errorf("%w: %s value %q: unterminated token", ErrFragment, c, v)
		case css.WhitespaceToken:
			if c != CategoryAttribute {
				return fmt.Errorf("%w: %s value %q: unexpected whitespace", ErrFragment, c, v)
			}
		case css.IdentToken:
			idents++
		case css.DelimToken:
			if string(data) == "*" && n == 1 {
				universal = true
			}
			others++
		default:
			others++
		}
	}

	switch c {
	case CategoryElement:
		if universal && n == 1 {
			return nil
		}
		fallthrough
	case CategoryID, CategoryClass, CategoryPseudoElement:
		if idents != 1 || others > 0 {
			return fmt.Errorf("%w: %s value %q: want a single identifier", ErrFragment, c, v)
		}
	case CategoryAttribute, CategoryPseudoClass:
		// any clean token run is fine
	}
	return nil
}
