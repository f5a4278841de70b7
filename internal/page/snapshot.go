package page

// ItemSnapshot is one row of a rendered menu.
type ItemSnapshot struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Kind     string `json:"kind"`
	Favorite bool   `json:"favorite,omitempty"`
}

// Snapshot is a copy of everything needed to draw a view.
type Snapshot struct {
	Collection string         `json:"collection"`
	Playlist   string         `json:"playlist"`
	Playlists  []string       `json:"playlists"`
	Layout     string         `json:"layout"`
	MenuMode   bool           `json:"menu_mode"`
	Depth      int            `json:"depth"`
	Selected   int            `json:"selected"`
	Items      []ItemSnapshot `json:"items"`
	Animation  string         `json:"animation,omitempty"`
	Scrolling  bool           `json:"scrolling"`
	Attract    bool           `json:"attract"`
	Launching  bool           `json:"launching"`
	Info       []string       `json:"info,omitempty"`
}

// Snapshot copies the view's visible state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	f := v.top()
	items := v.items()
	var favs map[string]bool
	if v.stats != nil {
		favs = make(map[string]bool)
		for _, name := range v.stats.Favorites(f.collection.Name) {
			favs[name] = true
		}
	}

	s := Snapshot{
		Collection: f.collection.Name,
		Playlist:   f.playlist,
		Playlists:  v.playlistNames(),
		Layout:     v.layout,
		MenuMode:   v.menuMode,
		Depth:      len(v.frames),
		Selected:   v.clamp(f.offset, len(items)),
		Items:      make([]ItemSnapshot, 0, len(items)),
		Animation:  v.animation,
		Scrolling:  v.scrolling,
		Attract:    v.attract,
		Launching:  v.launching,
	}
	for _, it := range items {
		s.Items = append(s.Items, ItemSnapshot{
			Name:     it.Name,
			Title:    it.DisplayName(),
			Kind:     it.Kind.String(),
			Favorite: favs[it.Name],
		})
	}
	if v.infoShown {
		s.Info = append([]string(nil), v.infoLines...)
	}
	return s
}

// Window returns the slice of items around the selection that fits in rows
// lines, and the index of the selection inside it.
func (s Snapshot) Window(rows int) ([]ItemSnapshot, int) {
	n := len(s.Items)
	if rows <= 0 || n == 0 {
		return nil, 0
	}
	if n <= rows {
		return s.Items, s.Selected
	}
	start := s.Selected - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return s.Items[start : start+rows], s.Selected - start
}
