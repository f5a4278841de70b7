package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap binds raw terminal key strings to logical keys. It also satisfies
// help.KeyMap so the front-end can render it.
type KeyMap struct {
	bindings map[Key]key.Binding
	index    map[string]Key
	chords   []Chord
}

// Chord is a two-key combination that produces its own logical key.
type Chord struct {
	Key    Key
	First  string
	Second string
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() *KeyMap {
	km := &KeyMap{bindings: map[Key]key.Binding{
		KeyScrollBack:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		KeyScrollForward:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		KeyPageUp:            key.NewBinding(key.WithKeys("pgup", "left", "h"), key.WithHelp("←/pgup", "page up")),
		KeyPageDown:          key.NewBinding(key.WithKeys("pgdown", "right", "l"), key.WithHelp("→/pgdn", "page down")),
		KeyLetterUp:          key.NewBinding(key.WithKeys("home", "["), key.WithHelp("[", "letter up")),
		KeyLetterDown:        key.NewBinding(key.WithKeys("end", "]"), key.WithHelp("]", "letter down")),
		KeyRandom:            key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "random")),
		KeySelect:            key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		KeyBack:              key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		KeyQuit:              key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		KeyPlaylistNext:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next playlist")),
		KeyPlaylistPrev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev playlist")),
		KeyCyclePlaylistNext: key.NewBinding(key.WithKeys("."), key.WithHelp(".", "cycle playlist")),
		KeyCyclePlaylistPrev: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "cycle playlist back")),
		KeyCollectionNext:    key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "next collection")),
		KeyCollectionPrev:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "prev collection")),
		KeyCollectionUp:      key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "collection up")),
		KeyCollectionDown:    key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "collection down")),
		KeyFavorite:          key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		KeyMenu:              key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		KeyGameInfo:          key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "game info")),
		KeyCollectionInfo:    key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "collection info")),
		KeyBuildInfo:         key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "build info")),
		KeyKiosk:             key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "kiosk")),
		KeyPause:             key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		KeyQuitCombo:         key.NewBinding(key.WithHelp("start+select", "quit")),
	}}
	km.chords = []Chord{{Key: KeyQuitCombo, First: "1", Second: "2"}}
	km.reindex()
	return km
}

// NewKeyMap returns the default bindings with overrides applied. bindings
// maps a logical key name to raw keys; chords maps a logical key name to
// exactly two raw keys.
func NewKeyMap(bindings, chords map[string][]string) (*KeyMap, error) {
	km := DefaultKeyMap()

	for _, name := range sortedNames(bindings) {
		k, ok := ParseKey(name)
		if !ok {
			return nil, fmt.Errorf("unknown key binding %q", name)
		}
		b := km.bindings[k]
		b.SetKeys(bindings[name]...)
		b.SetHelp(strings.Join(bindings[name], "/"), b.Help().Desc)
		km.bindings[k] = b
	}

	if len(chords) > 0 {
		km.chords = nil
	}
	for _, name := range sortedNames(chords) {
		k, ok := ParseKey(name)
		if !ok {
			return nil, fmt.Errorf("unknown chord %q", name)
		}
		raw := chords[name]
		if len(raw) != 2 {
			return nil, fmt.Errorf("chord %q needs exactly two keys, got %d", name, len(raw))
		}
		km.chords = append(km.chords, Chord{Key: k, First: raw[0], Second: raw[1]})
	}

	km.reindex()
	return km, nil
}

func (km *KeyMap) reindex() {
	km.index = make(map[string]Key)
	for _, k := range AllKeys() {
		b, ok := km.bindings[k]
		if !ok {
			continue
		}
		for _, raw := range b.Keys() {
			km.index[raw] = k
		}
	}
}

// Lookup returns the logical key bound to raw.
func (km *KeyMap) Lookup(raw string) (Key, bool) {
	k, ok := km.index[raw]
	return k, ok
}

// Chords returns the configured chords.
func (km *KeyMap) Chords() []Chord {
	return km.chords
}

// Binding returns the binding of a logical key.
func (km *KeyMap) Binding(k Key) key.Binding {
	return km.bindings[k]
}

// ShortHelp implements help.KeyMap.
func (km *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.bindings[KeyScrollBack],
		km.bindings[KeyScrollForward],
		km.bindings[KeySelect],
		km.bindings[KeyBack],
		km.bindings[KeyPlaylistNext],
		km.bindings[KeyQuit],
	}
}

// FullHelp implements help.KeyMap.
func (km *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.bindings[KeyScrollBack], km.bindings[KeyScrollForward], km.bindings[KeyPageUp], km.bindings[KeyPageDown], km.bindings[KeyLetterUp], km.bindings[KeyLetterDown], km.bindings[KeyRandom]},
		{km.bindings[KeySelect], km.bindings[KeyBack], km.bindings[KeyCollectionUp], km.bindings[KeyCollectionDown], km.bindings[KeyCollectionNext], km.bindings[KeyCollectionPrev]},
		{km.bindings[KeyPlaylistNext], km.bindings[KeyPlaylistPrev], km.bindings[KeyCyclePlaylistNext], km.bindings[KeyCyclePlaylistPrev], km.bindings[KeyFavorite]},
		{km.bindings[KeyGameInfo], km.bindings[KeyCollectionInfo], km.bindings[KeyBuildInfo], km.bindings[KeyMenu], km.bindings[KeyKiosk], km.bindings[KeyPause], km.bindings[KeyQuit]},
	}
}

func sortedNames(m map[string][]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}


// DefaultBindings returns the stock single-key bindings by logical key name.
func DefaultBindings() map[string][]string {
	km := DefaultKeyMap()
	out := make(map[string][]string, len(km.bindings))
	for k, b := range km.bindings {
		if keys := b.Keys(); len(keys) > 0 {
			out[k.String()] = keys
		}
	}
	return out
}
