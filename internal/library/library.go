package library

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Sentinel resolution errors. Use errors.Is on a *ResolveError.
var (
	ErrNotFound = errors.New("collection not found")
	ErrInvalid  = errors.New("collection metadata invalid")
)

// ResolveError reports a collection that cannot be entered.
type ResolveError struct {
	Collection string
	Reason     string
	Err        error
}

func (e *ResolveError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("resolve collection %q: %v: %s", e.Collection, e.Err, e.Reason)
	}
	return fmt.Sprintf("resolve collection %q: %v", e.Collection, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Library is the on-disk collection database.
type Library struct {
	Version     int                    `yaml:"version"`
	Collections map[string]*Collection `yaml:"collections"`
}

// Load reads a library file.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}
	return Parse(data)
}

// Parse decodes library YAML and fills defaults.
func Parse(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse library: %w", err)
	}
	if lib.Version == 0 {
		lib.Version = 1
	}
	if lib.Version != 1 {
		return nil, fmt.Errorf("unsupported library version: %d (expected 1)", lib.Version)
	}
	if lib.Collections == nil {
		lib.Collections = make(map[string]*Collection)
	}
	for name, c := range lib.Collections {
		if c == nil {
			// An empty YAML mapping value; kept so Resolve can report it.
			continue
		}
		c.Name = name
		if c.Layout == "" {
			c.Layout = "default"
		}
		for _, it := range c.Items {
			if it.Kind == ItemGame && it.Launcher == "" {
				it.Launcher = c.Launcher
			}
		}
	}
	return &lib, nil
}

// Names returns the collection names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.Collections))
	for name := range l.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns a collection ready to be shown. A collection with zero
// items resolves fine; a collection with no metadata at all, or whose
// playlists and links point nowhere, does not.
func (l *Library) Resolve(name string) (*Collection, error) {
	c, ok := l.Collections[name]
	if !ok {
		return nil, &ResolveError{Collection: name, Err: ErrNotFound}
	}
	if c == nil {
		return nil, &ResolveError{Collection: name, Reason: "no metadata", Err: ErrInvalid}
	}
	if err := l.check(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Check resolves every collection and returns all failures.
func (l *Library) Check() []error {
	var errs []error
	for _, name := range l.Names() {
		if _, err := l.Resolve(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (l *Library) check(c *Collection) error {
	names := make(map[string]bool, len(c.Items))
	for _, it := range c.Items {
		if it.Name == "" {
			return &ResolveError{Collection: c.Name, Reason: "item without name", Err: ErrInvalid}
		}
		if names[it.Name] {
			return &ResolveError{Collection: c.Name, Reason: fmt.Sprintf("duplicate item %q", it.Name), Err: ErrInvalid}
		}
		names[it.Name] = true
	}
	for pl, members := range c.Playlists {
		for _, m := range members {
			if !names[m] {
				return &ResolveError{
					Collection: c.Name,
					Reason:     fmt.Sprintf("playlist %q references unknown item %q", pl, m),
					Err:        ErrInvalid,
				}
			}
		}
	}
	return nil
}
