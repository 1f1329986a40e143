package gen_test

import (
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssel/gen"
)

const sampleDefs = `
selectors:
  - name: active-link
    element: a
    classes: [nav, active]
    attrs: ['href^="/"']
    pseudo_classes: [hover]
  - name: editable
    id: main
    classes: [container, editable]
  - name: hero-image
    combine: { left: section.hero, combinator: ">", right: img }
  - name: nested
    combine: { left: active-link, combinator: "+", right: editable }
`

func TestParseAndBuild(t *testing.T) {
	set, err := gen.Parse([]byte(sampleDefs))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(set.Selectors) != 4 {
		t.Fatalf("expected 4 definitions, got %d", len(set.Selectors))
	}

	entries, err := gen.Build(set, zap.NewNop())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := map[string]string{
		"active-link": `a.nav.active[href^="/"]:hover`,
		"editable":    "#main.container.editable",
		"hero-image":  "section.hero > img",
		"nested":      `a.nav.active[href^="/"]:hover + #main.container.editable`,
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for _, e := range entries {
		if got := want[e.Name]; e.Selector != got {
			t.Errorf("%s: got %q, want %q", e.Name, e.Selector, got)
		}
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := gen.Parse([]byte("selectors:\n  - name: x\n    elemnt: a\n"))
	if err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestParse_RejectsEmptySet(t *testing.T) {
	if _, err := gen.Parse([]byte("selectors: []\n")); err == nil {
		t.Fatal("expected empty definition set to be rejected")
	}
}

func TestBuild_CollectsAllErrors(t *testing.T) {
	defs := `
selectors:
  - name: ok
    element: p
  - name: bad-order
    combine: { left: a, combinator: "|", right: b }
  - name: bad-fragment
    classes: [".leading-dot"]
  - name: also-ok
    element: li
    pseudo_classes: [first-child]
`
	set, err := gen.Parse([]byte(defs))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	entries, err := gen.Build(set, nil)
	if err == nil {
		t.Fatal("expected accumulated errors")
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("expected 2 accumulated errors, got %d: %v", n, err)
	}
	// good definitions still build
	if len(entries) != 2 {
		t.Fatalf("expected 2 built entries, got %d", len(entries))
	}
	if entries[0].Name != "ok" || entries[1].Name != "also-ok" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestBuild_RejectsDuplicateNames(t *testing.T) {
	set, err := gen.Parse([]byte("selectors:\n  - name: x\n    element: p\n  - name: x\n    element: a\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := gen.Build(set, nil); err == nil || !strings.Contains(err.Error(), "duplicate name") {
		t.Errorf("expected duplicate name error, got %v", err)
	}
}

func TestBuild_RejectsMixedCombine(t *testing.T) {
	set, err := gen.Parse([]byte("selectors:\n  - name: x\n    element: p\n    combine: { left: a, combinator: \">\", right: b }\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := gen.Build(set, nil); err == nil {
		t.Fatal("expected mixed combine definition to be rejected")
	}
}

func TestRenderList(t *testing.T) {
	entries := []gen.Entry{
		{Name: "active-link", GoName: "ActiveLink", Selector: "a.nav.active"},
		{Name: "editable", GoName: "Editable", Selector: "#main.editable"},
	}
	out, err := gen.RenderList(entries)
	if err != nil {
		t.Fatalf("RenderList failed: %v", err)
	}
	want := "active-link\ta.nav.active\neditable\t#main.editable\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRenderGo(t *testing.T) {
	entries := []gen.Entry{
		{Name: "active-link", GoName: "ActiveLink", Selector: `a[href^="/"]`},
	}
	out, err := gen.RenderGo(entries, "ui")
	if err != nil {
		t.Fatalf("RenderGo failed: %v", err)
	}
	for _, frag := range []string{
		"package ui",
		"ActiveLink = \"a[href^=\\\"/\\\"]\"",
		"DO NOT EDIT",
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("generated source missing %q:\n%s", frag, out)
		}
	}
}

func TestGoName(t *testing.T) {
	set, err := gen.Parse([]byte("selectors:\n  - name: active-link2x\n    element: p\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	built, err := gen.Build(set, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if built[0].GoName != "ActiveLink2X" {
		t.Errorf("got GoName %q, want %q", built[0].GoName, "ActiveLink2X")
	}
}
