package nav

import (
	"errors"
	"slices"

	"github.com/muurk/marquee/internal/attract"
	"github.com/muurk/marquee/internal/input"
)

// Graph is the state-level transition graph produced by Explore.
type Graph map[State]map[State]bool

// Explore runs Step for every state under every context and event and
// records which states follow which. Phase payloads are filled with sample
// values so request states have somewhere to go.
func Explore(contexts []Context, events []Event) Graph {
	g := make(Graph, stateCount)
	for _, s := range AllStates() {
		g[s] = make(map[State]bool)
		p := Phase{State: s, Collection: "Arcade", Playlist: "classics", Jump: JumpNext}
		for _, ctx := range contexts {
			for _, ev := range events {
				if ev.Kind == EventKey && !s.AcceptsInput() {
					continue
				}
				next, _ := Step(ctx, p, ev)
				g[s][next.State] = true
			}
		}
	}
	return g
}

// Reachable returns every state reachable from start, start included.
func (g Graph) Reachable(start State) map[State]bool {
	seen := map[State]bool{start: true}
	queue := []State{start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for next := range g[s] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// Stuck returns the states reachable from start that can reach none of
// the goals.
func (g Graph) Stuck(start State, goals ...State) []State {
	var stuck []State
	for s := range g.Reachable(start) {
		reach := g.Reachable(s)
		ok := false
		for _, goal := range goals {
			if reach[goal] {
				ok = true
				break
			}
		}
		if !ok {
			stuck = append(stuck, s)
		}
	}
	slices.Sort(stuck)
	return stuck
}

// Successors returns the states that may follow s in sorted order.
func (g Graph) Successors(s State) []State {
	out := make([]State, 0, len(g[s]))
	for next := range g[s] {
		out = append(out, next)
	}
	slices.Sort(out)
	return out
}

// SampleContexts returns a spread of contexts covering busy and idle views,
// every selection class, nested and flat menus, and the boolean settings.
func SampleContexts() []Context {
	var out []Context
	for _, idle := range []bool{false, true} {
		for _, sel := range []ItemClass{ItemNone, ItemLeaf, ItemCollection, ItemMenu} {
			for _, depth := range []int{0, 1} {
				for _, flag := range []bool{false, true} {
					out = append(out, Context{
						View: ViewStatus{
							Idle:           idle,
							MenuIdle:       idle,
							GraphicsIdle:   idle,
							AttractIdle:    idle,
							Scrolling:      !idle && flag,
							MenuDepth:      1,
							ItemCount:      map[bool]int{false: 0, true: 3}[flag],
							Collection:     "Main",
							Playlist:       "all",
							Selected:       sel,
							SelectedTarget: "Arcade",
						},
						StackDepth:          depth,
						Kiosk:               flag && depth == 0,
						AttractEnabled:      flag,
						BurstOver:           flag && !idle,
						ScrollHeld:          !idle,
						RememberMenu:        flag,
						BackOnEmpty:         true,
						ExitOnFirstPageBack: flag,
						EnterOnCollection:   flag,
						RandomizeStart:      flag,
						FavoritesPlaylist:   "favorites",
						MenuCollection:      "Settings",
						AutoPlaylist:        map[bool]string{false: "", true: "classics"}[flag],
						Memory:              Memory{Has: flag, Playlist: "classics", Offset: 2},
						Neighbors: Neighbors{
							NextPlaylist:      "classics",
							PrevPlaylist:      "favorites",
							NextCyclePlaylist: "classics",
							PrevCyclePlaylist: "classics",
							NextCollection:    "Arcade",
							PrevCollection:    "Consoles",
							AttractPlaylist:   "classics",
							AttractCollection: "Arcade",
						},
					})
				}
			}
		}
	}
	return out
}

// SampleEvents returns one event of every kind: a plain tick, every key,
// every attract signal, both launch outcomes and a resolution failure.
func SampleEvents() []Event {
	events := []Event{{Kind: EventNone}}
	for _, k := range input.AllKeys() {
		events = append(events, Event{Kind: EventKey, Key: k})
	}
	for _, sig := range []attract.Signal{
		attract.SignalScroll, attract.SignalScrollStop, attract.SignalSwitchPlaylist,
		attract.SignalSwitchCollection, attract.SignalLaunchRandom,
	} {
		events = append(events, Event{Kind: EventAttract, Signal: sig})
	}
	return append(events,
		Event{Kind: EventLaunched},
		Event{Kind: EventLaunched, Reboot: true},
		Event{Kind: EventResolutionFailed, Err: errors.New("not found")},
	)
}
