// Package gen batch-builds CSS selectors from YAML definitions and renders
// them either as a plain listing or as a generated Go constants file.
package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"cssel/selector"
)

// Definition describes one selector to build. Either the category fields or
// Combine is used, not both. Combine operands may name a previously defined
// selector in the same set; otherwise they are taken as raw selector text.
type Definition struct {
	Name          string      `yaml:"name"`
	Element       string      `yaml:"element,omitempty"`
	ID            string      `yaml:"id,omitempty"`
	Classes       []string    `yaml:"classes,omitempty"`
	Attrs         []string    `yaml:"attrs,omitempty"`
	PseudoClasses []string    `yaml:"pseudo_classes,omitempty"`
	PseudoElement string      `yaml:"pseudo_element,omitempty"`
	Combine       *CombineDef `yaml:"combine,omitempty"`
}

// CombineDef joins two operands with a combinator.
type CombineDef struct {
	Left       string `yaml:"left"`
	Combinator string `yaml:"combinator"`
	Right      string `yaml:"right"`
}

// Set is the top level of a definition file.
type Set struct {
	Selectors []Definition `yaml:"selectors"`
}

// Entry is a built selector ready for rendering.
type Entry struct {
	Name     string
	GoName   string
	Selector string
}

// Parse decodes a YAML definition set. Unknown fields are rejected so typos
// in definition files surface immediately.
func Parse(data []byte) (*Set, error) {
	var set Set
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode selector definitions: %w", err)
	}
	if len(set.Selectors) == 0 {
		return nil, fmt.Errorf("no selector definitions found")
	}
	return &set, nil
}

// Build constructs every definition in order. Failures do not stop the run:
// all errors are accumulated and returned together with the entries that did
// build, so a single bad definition does not hide the rest.
func Build(set *Set, log *zap.Logger) ([]Entry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("gen")

	var errs error
	entries := make([]Entry, 0, len(set.Selectors))
	byName := make(map[string]string, len(set.Selectors))

	for i, def := range set.Selectors {
		if def.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("definition %d: missing name", i))
			continue
		}
		if _, dup := byName[def.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("definition %q: duplicate name", def.Name))
			continue
		}

		s, err := buildOne(def, byName)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("definition %q: %w", def.Name, err))
			continue
		}

		log.Debug("Built selector", zap.String("name", def.Name), zap.String("selector", s))
		byName[def.Name] = s
		entries = append(entries, Entry{Name: def.Name, GoName: goName(def.Name), Selector: s})
	}
	return entries, errs
}

func buildOne(def Definition, byName map[string]string) (string, error) {
	if def.Combine != nil {
		if def.Element != "" || def.ID != "" || len(def.Classes) > 0 ||
			len(def.Attrs) > 0 || len(def.PseudoClasses) > 0 || def.PseudoElement != "" {
			return "", fmt.Errorf("combine cannot be mixed with category fields")
		}
		c, err := selector.Combine(
			operand(def.Combine.Left, byName),
			selector.Combinator(def.Combine.Combinator),
			operand(def.Combine.Right, byName))
		if err != nil {
			return "", err
		}
		return c.String(), nil
	}

	b := selector.New()
	for _, f := range fragments(def) {
		if err := selector.CheckFragment(f.cat, f.value); err != nil {
			return "", err
		}
		f.add(b)
	}
	return b.Build()
}

// operand resolves a combine operand: a previously built selector by name, or
// raw selector text.
func operand(v string, byName map[string]string) selector.Selector {
	if s, ok := byName[v]; ok {
		return selector.Raw(s)
	}
	return selector.Raw(v)
}

type fragment struct {
	cat   selector.Category
	value string
	add   func(*selector.Builder)
}

// fragments lists a definition's category values in the mandated order,
// paired with the builder call that applies each one.
func fragments(def Definition) []fragment {
	var out []fragment
	if def.Element != "" {
		v := def.Element
		out = append(out, fragment{selector.CategoryElement, v, func(b *selector.Builder) { b.Element(v) }})
	}
	if def.ID != "" {
		v := def.ID
		out = append(out, fragment{selector.CategoryID, v, func(b *selector.Builder) { b.ID(v) }})
	}
	for _, v := range def.Classes {
		v := v
		out = append(out, fragment{selector.CategoryClass, v, func(b *selector.Builder) { b.Class(v) }})
	}
	for _, v := range def.Attrs {
		v := v
		out = append(out, fragment{selector.CategoryAttribute, v, func(b *selector.Builder) { b.Attr(v) }})
	}
	for _, v := range def.PseudoClasses {
		v := v
		out = append(out, fragment{selector.CategoryPseudoClass, v, func(b *selector.Builder) { b.PseudoClass(v) }})
	}
	if def.PseudoElement != "" {
		v := def.PseudoElement
		out = append(out, fragment{selector.CategoryPseudoElement, v, func(b *selector.Builder) { b.PseudoElement(v) }})
	}
	return out
}

// goName derives an exported Go identifier from a definition name, e.g.
// "active-link" -> "ActiveLink".
func goName(name string) string {
	var b strings.Builder
	up := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			if up {
				r = unicode.ToUpper(r)
				up = false
			}
			b.WriteRune(r)
		case unicode.IsDigit(r) && b.Len() > 0:
			b.WriteRune(r)
			up = true
		default:
			up = true
		}
	}
	if b.Len() == 0 {
		return "Sel"
	}
	return b.String()
}

const listTemplate = `{{ range . }}{{ .Name }}	{{ .Selector }}
{{ end }}`

const goFileTemplate = `// Code generated from selector definitions; DO NOT EDIT.

package {{ .Package }}

const (
{{- range .Entries }}
	{{ .GoName }} = {{ .Selector | quote }}
{{- end }}
)
`

// RenderList renders entries as "name<TAB>selector" lines.
func RenderList(entries []Entry) (string, error) {
	tmpl, err := template.New("list").Funcs(sprig.FuncMap()).Parse(listTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse list template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, entries); err != nil {
		return "", fmt.Errorf("failed to render listing: %w", err)
	}
	return buf.String(), nil
}

// RenderGo renders entries as a Go source file with one string constant per
// selector, for compile-time checked selector references.
func RenderGo(entries []Entry, pkg string) (string, error) {
	if pkg == "" {
		pkg = "selectors"
	}
	tmpl, err := template.New("go").Funcs(sprig.FuncMap()).Parse(goFileTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse Go template: %w", err)
	}
	var buf bytes.Buffer
	data := struct {
		Package string
		Entries []Entry
	}{Package: pkg, Entries: entries}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render Go source: %w", err)
	}
	return buf.String(), nil
}
