// Package config parses phosphor-uikit configuration documents.
//
// A configuration document is a JSON array of groups. Each group is an array
// whose first element is a human-readable label and whose remaining elements
// are icon specs. An icon spec is a flat array of one-or-more icon names,
// one-or-more point sizes, and one-or-more style tokens:
//
//	[
//	    ["tab bar", ["house", "book", "play", 25, "regular"]],
//	    ["toolbar", ["gear", 17, 22, "bold"]]
//	]
//
// Every (name, size, style) combination in a spec expands to one Request.
// Expansion order is deterministic: names in appearance order, then sizes,
// then styles. Parsing is all-or-nothing; a malformed entry fails the whole
// document with an error identifying the offending group and spec.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/pepaslabs/phosphor-uikit/pkg/errors"
)

// Style is a named visual variant of the Phosphor icon family.
type Style string

// The six styles shipped by Phosphor.
const (
	StyleRegular Style = "regular"
	StyleBold    Style = "bold"
	StyleFill    Style = "fill"
	StyleDuotone Style = "duotone"
	StyleThin    Style = "thin"
	StyleLight   Style = "light"
)

// Styles lists all valid styles in display order.
var Styles = []Style{StyleRegular, StyleBold, StyleFill, StyleDuotone, StyleThin, StyleLight}

var validStyles = map[Style]bool{
	StyleRegular: true,
	StyleBold:    true,
	StyleFill:    true,
	StyleDuotone: true,
	StyleThin:    true,
	StyleLight:   true,
}

// ParseStyle converts a string token to a Style.
// Returns ok=false if the token is not a known style.
func ParseStyle(s string) (Style, bool) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	return st, validStyles[st]
}

// StyleNames returns the valid style tokens joined for error messages.
func StyleNames() string {
	names := make([]string, len(Styles))
	for i, s := range Styles {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Request is a single icon rendering request. Immutable once parsed.
type Request struct {
	Name  string // icon name (e.g., "house")
	Size  int    // logical point size (positive)
	Style Style  // visual variant
}

// Key returns the deterministic identifier used for imageset naming.
func (r Request) Key() string {
	return fmt.Sprintf("%s.%d.%s", r.Name, r.Size, r.Style)
}

// Group is an ordered sequence of requests sharing a label.
// The label is used only for progress reporting.
type Group struct {
	Label    string
	Requests []Request
}

// Document is one parsed configuration file.
type Document struct {
	Path   string  // config file path as given on the command line
	Groups []Group // groups in file order
}

// CatalogPath returns the asset catalog root derived from the config path:
// the ".json" suffix replaced with ".xcassets".
func (d *Document) CatalogPath() string {
	return strings.TrimSuffix(d.Path, ".json") + ".xcassets"
}

// RequestCount returns the total number of requests across all groups.
func (d *Document) RequestCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Requests)
	}
	return n
}

// Load reads and parses a configuration file.
// The file must have a ".json" suffix so the catalog path can be derived.
func Load(path string) (*Document, error) {
	if filepath.Ext(path) != ".json" {
		return nil, errs.New(errs.ErrCodeConfig, "%s: config file does not have suffix '.json'", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfig, err, "%s: unable to read config", path)
	}
	groups, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	return &Document{Path: path, Groups: groups}, nil
}

// Parse parses a configuration document. The name parameter identifies the
// document in error messages.
func Parse(name string, data []byte) ([]Group, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfig, err, "%s: top-level JSON element must be an array", name)
	}

	groups := make([]Group, 0, len(raw))
	for gi, rawGroup := range raw {
		group, err := parseGroup(name, gi, rawGroup)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func parseGroup(doc string, gi int, raw json.RawMessage) (Group, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return Group{}, errs.New(errs.ErrCodeConfig, "%s: group %d: expected an array, got %s", doc, gi+1, truncate(raw))
	}
	if len(elems) < 2 {
		return Group{}, errs.New(errs.ErrCodeConfig, "%s: group %d: expected [label, spec, ...], got %d element(s)", doc, gi+1, len(elems))
	}

	var label string
	if err := json.Unmarshal(elems[0], &label); err != nil {
		return Group{}, errs.New(errs.ErrCodeConfig, "%s: group %d: label must be a string, got %s", doc, gi+1, truncate(elems[0]))
	}

	group := Group{Label: label}
	for si, rawSpec := range elems[1:] {
		at := fmt.Sprintf("%s: group %q, spec %d", doc, label, si+1)
		reqs, err := parseSpec(at, rawSpec)
		if err != nil {
			return Group{}, err
		}
		group.Requests = append(group.Requests, reqs...)
	}
	return group, nil
}

// parseSpec expands one icon spec into requests. Classification rules:
// integers are sizes, strings matching a style token are styles, and other
// strings are icon names. Names must precede the first size or style; a
// non-style string after either is reported as an unknown style token.
func parseSpec(at string, raw json.RawMessage) ([]Request, error) {
	var words []any
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, errs.New(errs.ErrCodeConfig, "%s: expected an array, got %s", at, truncate(raw))
	}

	var (
		names  []string
		sizes  []int
		styles []Style
	)
	for _, word := range words {
		switch v := word.(type) {
		case float64:
			size := int(v)
			if float64(size) != v || size <= 0 {
				return nil, errs.New(errs.ErrCodeInvalidSize, "%s: size must be a positive integer, got %v", at, v)
			}
			sizes = append(sizes, size)
		case string:
			if style, ok := ParseStyle(v); ok {
				styles = append(styles, style)
				continue
			}
			if len(sizes) > 0 || len(styles) > 0 {
				return nil, errs.New(errs.ErrCodeInvalidStyle, "%s: unknown style token %q (valid: %s)", at, v, StyleNames())
			}
			if err := errs.ValidateIconName(v); err != nil {
				return nil, fmt.Errorf("%s: %w", at, err)
			}
			names = append(names, v)
		default:
			return nil, errs.New(errs.ErrCodeConfig, "%s: unexpected value %v", at, word)
		}
	}

	switch {
	case len(names) == 0:
		return nil, errs.New(errs.ErrCodeConfig, "%s: no icon names", at)
	case len(sizes) == 0:
		return nil, errs.New(errs.ErrCodeConfig, "%s: missing size", at)
	case len(styles) == 0:
		return nil, errs.New(errs.ErrCodeConfig, "%s: missing style (valid: %s)", at, StyleNames())
	}

	reqs := make([]Request, 0, len(names)*len(sizes)*len(styles))
	for _, name := range names {
		for _, size := range sizes {
			for _, style := range styles {
				reqs = append(reqs, Request{Name: name, Size: size, Style: style})
			}
		}
	}
	return reqs, nil
}

func truncate(raw json.RawMessage) string {
	s := string(raw)
	if len(s) > 40 {
		s = s[:37] + "..."
	}
	return s
}
