package nav

// MenuMemory remembers the scroll offset and playlist last seen in each
// collection.
type MenuMemory struct {
	entries map[string]Memory
}

// NewMenuMemory creates an empty memory.
func NewMenuMemory() *MenuMemory {
	return &MenuMemory{entries: make(map[string]Memory)}
}

// Record stores the position of a collection.
func (m *MenuMemory) Record(collection, playlist string, offset int) {
	m.entries[collection] = Memory{Has: true, Playlist: playlist, Offset: offset}
}

// Lookup returns the remembered position of a collection.
func (m *MenuMemory) Lookup(collection string) Memory {
	return m.entries[collection]
}

// Forget drops a collection's entry.
func (m *MenuMemory) Forget(collection string) {
	delete(m.entries, collection)
}
