package selector_test

import (
	"errors"
	"testing"

	"cssel/selector"
)

func TestCheckFragment(t *testing.T) {
	tests := []struct {
		name string
		cat  selector.Category
		v    string
		ok   bool
	}{
		{name: "element ident", cat: selector.CategoryElement, v: "article", ok: true},
		{name: "element universal", cat: selector.CategoryElement, v: "*", ok: true},
		{name: "element with space", cat: selector.CategoryElement, v: "a b", ok: false},
		{name: "element empty", cat: selector.CategoryElement, v: "", ok: false},
		{name: "id ident", cat: selector.CategoryID, v: "main-content", ok: true},
		{name: "id with hash", cat: selector.CategoryID, v: "#main", ok: false},
		{name: "class ident", cat: selector.CategoryClass, v: "nav_item", ok: true},
		{name: "class with dot", cat: selector.CategoryClass, v: ".nav", ok: false},
		{name: "attr bare name", cat: selector.CategoryAttribute, v: "disabled", ok: true},
		{name: "attr expression", cat: selector.CategoryAttribute, v: `href$=".png"`, ok: true},
		{name: "attr broken string", cat: selector.CategoryAttribute, v: "href=\"x\ny\"", ok: false},
		{name: "pseudo-class ident", cat: selector.CategoryPseudoClass, v: "hover", ok: true},
		{name: "pseudo-class function", cat: selector.CategoryPseudoClass, v: "nth-child(2n+1)", ok: true},
		{name: "pseudo-element ident", cat: selector.CategoryPseudoElement, v: "before", ok: true},
		{name: "pseudo-element with colon", cat: selector.CategoryPseudoElement, v: "::before", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := selector.CheckFragment(tc.cat, tc.v)
			if tc.ok && err != nil {
				t.Errorf("CheckFragment(%s, %q) failed: %v", tc.cat, tc.v, err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("CheckFragment(%s, %q) accepted a bad value", tc.cat, tc.v)
				}
				if !errors.Is(err, selector.ErrFragment) {
					t.Errorf("error does not wrap ErrFragment: %v", err)
				}
			}
		})
	}
}
