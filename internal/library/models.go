package library

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// AllPlaylist is the implicit playlist containing every item of a collection.
const AllPlaylist = "all"

// ItemKind classifies what selecting an item does.
type ItemKind int

const (
	// ItemGame is a leaf: selecting it launches an external program.
	ItemGame ItemKind = iota
	// ItemCollection opens another collection.
	ItemCollection
	// ItemMenu opens a menu collection (settings, utilities). Kiosk lock
	// disables these.
	ItemMenu
)

// String returns the YAML name of the kind.
func (k ItemKind) String() string {
	switch k {
	case ItemGame:
		return "game"
	case ItemCollection:
		return "collection"
	case ItemMenu:
		return "menu"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// UnmarshalYAML parses "game", "collection" or "menu".
func (k *ItemKind) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "", "game":
		*k = ItemGame
	case "collection":
		*k = ItemCollection
	case "menu":
		*k = ItemMenu
	default:
		return fmt.Errorf("line %d: unknown item kind %q", value.Line, value.Value)
	}
	return nil
}

// MarshalYAML writes the kind name.
func (k ItemKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Item is one entry in a collection.
type Item struct {
	Name  string   `yaml:"name"`
	Title string   `yaml:"title,omitempty"`
	Kind  ItemKind `yaml:"kind,omitempty"`

	// Collection is the target of collection and menu items. Defaults to
	// Name.
	Collection string `yaml:"collection,omitempty"`

	// Launcher names the launcher for game items. Defaults to the
	// collection's launcher.
	Launcher string `yaml:"launcher,omitempty"`
	File     string `yaml:"file,omitempty"`

	Year         string `yaml:"year,omitempty"`
	Manufacturer string `yaml:"manufacturer,omitempty"`
	Genre        string `yaml:"genre,omitempty"`
}

// DisplayName returns the title, or the name when no title is set.
func (i *Item) DisplayName() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// IsLeaf reports whether selecting the item launches it.
func (i *Item) IsLeaf() bool {
	return i.Kind == ItemGame
}

// Target returns the collection opened by a collection or menu item.
func (i *Item) Target() string {
	if i.Collection != "" {
		return i.Collection
	}
	return i.Name
}

// Collection is a named group of items with optional playlists.
type Collection struct {
	Name string `yaml:"-"`

	// Layout names the visual layout. Entering a collection with a
	// different layout creates a new view; the same layout reuses the
	// current one.
	Layout   string  `yaml:"layout,omitempty"`
	Launcher string  `yaml:"launcher,omitempty"`
	Items    []*Item `yaml:"items"`

	// Playlists maps playlist name to item names.
	Playlists map[string][]string `yaml:"playlists,omitempty"`
}

// PlaylistNames returns "all" followed by the named playlists in sorted
// order. Extra names (favorites) are merged in.
func (c *Collection) PlaylistNames(extra ...string) []string {
	seen := map[string]bool{AllPlaylist: true}
	var named []string
	for name := range c.Playlists {
		if !seen[name] {
			seen[name] = true
			named = append(named, name)
		}
	}
	for _, name := range extra {
		if name != "" && !seen[name] {
			seen[name] = true
			named = append(named, name)
		}
	}
	sort.Strings(named)
	return append([]string{AllPlaylist}, named...)
}

// Playlist returns the items of a playlist. Unknown playlists are empty.
func (c *Collection) Playlist(name string) []*Item {
	if name == AllPlaylist || name == "" {
		return c.Items
	}
	return c.Select(c.Playlists[name])
}

// Select returns the items whose names appear in names, in the order of
// names. Unknown names are skipped.
func (c *Collection) Select(names []string) []*Item {
	index := make(map[string]*Item, len(c.Items))
	for _, it := range c.Items {
		index[it.Name] = it
	}
	out := make([]*Item, 0, len(names))
	for _, n := range names {
		if it, ok := index[n]; ok {
			out = append(out, it)
		}
	}
	return out
}

// Item looks up an item by name.
func (c *Collection) Item(name string) *Item {
	for _, it := range c.Items {
		if it.Name == name {
			return it
		}
	}
	return nil
}
