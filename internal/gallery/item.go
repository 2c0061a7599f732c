package gallery

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Item is one entry of the gallery list. The engine only reads properties
// off it through an Accessor.
type Item interface {
	// Property returns the value stored under name, if any.
	Property(name string) (any, bool)
}

// Default property names.
const (
	PropURL     = "url"
	PropType    = "type"
	PropTitle   = "title"
	PropAltText = "alt"
	PropSrcset  = "srcset"
	PropSizes   = "sizes"
	PropSources = "sources"
)

// Source is a responsive variant of an item.
type Source struct {
	URL    string
	Type   string
	Media  string
	Srcset string
	Sizes  string
}

// URL is the simplest Item: a bare location with no other properties.
type URL string

// Property implements Item.
func (u URL) Property(name string) (any, bool) {
	if name == PropURL || name == "href" {
		return string(u), true
	}
	return nil, false
}

// Media is a fully described item. Extra holds free-form properties that
// can be addressed by custom property names, including dotted paths into
// nested maps and slices ("meta.covers.0").
type Media struct {
	URL     string
	Type    string
	Title   string
	AltText string
	Srcset  string
	Sizes   string
	Sources []Source
	Extra   map[string]any
}

// Property implements Item.
func (m *Media) Property(name string) (any, bool) {
	if v, ok := m.field(name); ok {
		return v, true
	}
	if v, ok := m.Extra[name]; ok {
		return v, true
	}
	return lookupPath(m.Extra, name)
}

func (m *Media) field(name string) (any, bool) {
	var v string
	switch name {
	case PropURL, "href":
		v = m.URL
	case PropType:
		v = m.Type
	case PropTitle:
		v = m.Title
	case PropAltText:
		v = m.AltText
	case PropSrcset:
		v = m.Srcset
	case PropSizes:
		v = m.Sizes
	case PropSources:
		if len(m.Sources) == 0 {
			return nil, false
		}
		return m.Sources, true
	default:
		return nil, false
	}
	return v, v != ""
}

func lookupPath(root map[string]any, path string) (any, bool) {
	if root == nil || !strings.Contains(path, ".") {
		return nil, false
	}
	var cur any = root
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Descriptor is the typed view of an item used by content factories.
type Descriptor struct {
	URL     string
	Type    string
	Title   string
	AltText string
	Srcset  string
	Sizes   string
	Sources []Source
}

// Kind returns the major part of the MIME type ("image" for "image/png").
func (d Descriptor) Kind() string {
	kind, _, _ := strings.Cut(d.Type, "/")
	return kind
}

// Accessor reads item properties by configurable names.
type Accessor struct {
	URLProperty     string `koanf:"url_property"`
	TypeProperty    string `koanf:"type_property"`
	TitleProperty   string `koanf:"title_property"`
	AltTextProperty string `koanf:"alt_property"`
	SrcsetProperty  string `koanf:"srcset_property"`
	SizesProperty   string `koanf:"sizes_property"`
	SourcesProperty string `koanf:"sources_property"`
}

// DefaultAccessor reads the standard property names.
func DefaultAccessor() Accessor {
	return Accessor{
		URLProperty:     PropURL,
		TypeProperty:    PropType,
		TitleProperty:   PropTitle,
		AltTextProperty: PropAltText,
		SrcsetProperty:  PropSrcset,
		SizesProperty:   PropSizes,
		SourcesProperty: PropSources,
	}
}

// Describe extracts every known property of item.
func (a Accessor) Describe(item Item) Descriptor {
	if item == nil {
		return Descriptor{}
	}
	d := Descriptor{
		URL:     a.URL(item),
		Type:    a.Type(item),
		Title:   stringProperty(item, a.TitleProperty),
		AltText: stringProperty(item, a.AltTextProperty),
		Srcset:  stringProperty(item, a.SrcsetProperty),
		Sizes:   stringProperty(item, a.SizesProperty),
	}
	if d.AltText == "" {
		d.AltText = d.Title
	}
	if v, ok := item.Property(a.SourcesProperty); ok {
		if sources, ok := v.([]Source); ok {
			d.Sources = sources
		}
	}
	return d
}

// URL returns the item's location.
func (a Accessor) URL(item Item) string {
	return stringProperty(item, a.URLProperty)
}

// Type returns the item's MIME type.
func (a Accessor) Type(item Item) string {
	return stringProperty(item, a.TypeProperty)
}

// Same reports whether two items designate the same entry: identical values
// or equal URLs.
func (a Accessor) Same(x, y Item) bool {
	if x == nil || y == nil {
		return false
	}
	if reflect.TypeOf(x) == reflect.TypeOf(y) && reflect.TypeOf(x).Comparable() && x == y {
		return true
	}
	u := a.URL(x)
	return u != "" && u == a.URL(y)
}

func stringProperty(item Item, name string) string {
	if item == nil || name == "" {
		return ""
	}
	v, ok := item.Property(name)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}
