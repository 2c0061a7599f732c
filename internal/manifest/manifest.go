// Package manifest turns command-line arguments and YAML manifests into
// gallery items.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/llehouerou/lightbox/internal/gallery"
)

// ErrEmpty is returned when the arguments yield no items.
var ErrEmpty = errors.New("no media found")

// Manifest is the document form of a YAML manifest. A bare list of entries
// is accepted as well.
type Manifest struct {
	Title string  `yaml:"title"`
	Items []Entry `yaml:"items"`
}

// Entry is one manifest item. It is either a plain URL string or a mapping;
// unknown keys are kept and can be addressed by custom property names.
type Entry struct {
	URL     string         `yaml:"url"`
	Type    string         `yaml:"type"`
	Title   string         `yaml:"title"`
	Alt     string         `yaml:"alt"`
	Srcset  string         `yaml:"srcset"`
	Sizes   string         `yaml:"sizes"`
	Sources []SourceEntry  `yaml:"sources"`
	Extra   map[string]any `yaml:",inline"`
}

// SourceEntry is a responsive variant of an entry.
type SourceEntry struct {
	URL    string `yaml:"url"`
	Type   string `yaml:"type"`
	Media  string `yaml:"media"`
	Srcset string `yaml:"srcset"`
	Sizes  string `yaml:"sizes"`
}

// UnmarshalYAML accepts a scalar as shorthand for {url: <scalar>}.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*e = Entry{URL: node.Value}
		return nil
	}
	type plain Entry
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// Parse decodes a manifest. Relative locations are resolved against baseDir.
func Parse(data []byte, baseDir string) (*Manifest, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	m := &Manifest{}
	if len(root.Content) == 0 {
		return m, nil
	}
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&m.Items); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		if err := doc.Decode(m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("line %d: manifest must be a list or a mapping", doc.Line)
	}

	for i := range m.Items {
		e := &m.Items[i]
		e.URL = resolve(baseDir, e.URL)
		for j := range e.Sources {
			e.Sources[j].URL = resolve(baseDir, e.Sources[j].URL)
		}
		if e.Type == "" && e.URL != "" {
			e.Type = TypeOf(e.URL)
		}
	}
	return m, nil
}

// LoadFile reads and parses the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// GalleryItems converts the manifest entries to gallery items.
func (m *Manifest) GalleryItems() []gallery.Item {
	items := make([]gallery.Item, 0, len(m.Items))
	for _, e := range m.Items {
		items = append(items, e.Media())
	}
	return items
}

// Media converts the entry to a gallery item.
func (e Entry) Media() *gallery.Media {
	m := &gallery.Media{
		URL:     e.URL,
		Type:    e.Type,
		Title:   e.Title,
		AltText: e.Alt,
		Srcset:  e.Srcset,
		Sizes:   e.Sizes,
		Extra:   e.Extra,
	}
	for _, s := range e.Sources {
		m.Sources = append(m.Sources, gallery.Source(s))
	}
	return m
}

// FromArgs builds the item list from command-line arguments: media files,
// URLs, directories (expanded to their media files) and .yaml/.yml
// manifests. The returned title is the first manifest title, if any.
func FromArgs(args []string) (items []gallery.Item, title string, err error) {
	for _, arg := range args {
		switch {
		case isURL(arg):
			items = append(items, fileItem(arg))
		case isManifest(arg):
			m, err := LoadFile(arg)
			if err != nil {
				return nil, "", err
			}
			if title == "" {
				title = m.Title
			}
			items = append(items, m.GalleryItems()...)
		default:
			info, err := os.Stat(arg)
			if err != nil {
				return nil, "", err
			}
			if !info.IsDir() {
				items = append(items, fileItem(arg))
				continue
			}
			found, err := scanDir(arg)
			if err != nil {
				return nil, "", err
			}
			items = append(items, found...)
		}
	}
	if len(items) == 0 {
		return nil, "", ErrEmpty
	}
	return items, title, nil
}

func scanDir(dir string) ([]gallery.Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	var items []gallery.Item
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || TypeOf(name) == "" {
			continue
		}
		items = append(items, fileItem(filepath.Join(dir, name)))
	}
	return items, nil
}

func fileItem(location string) *gallery.Media {
	base := filepath.Base(location)
	if isURL(location) {
		base = location[strings.LastIndex(location, "/")+1:]
		if i := strings.IndexAny(base, "?#"); i >= 0 {
			base = base[:i]
		}
	}
	return &gallery.Media{
		URL:   location,
		Type:  TypeOf(location),
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

func resolve(baseDir, location string) string {
	if location == "" || isURL(location) || filepath.IsAbs(location) || strings.HasPrefix(location, "file://") {
		return location
	}
	return filepath.Join(baseDir, location)
}

func isURL(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func isManifest(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
