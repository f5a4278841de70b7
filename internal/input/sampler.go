package input

import (
	"time"
)

// Event is one logical key press.
type Event struct {
	Key Key
	At  time.Time
}

// Sampler turns raw key strings into logical key presses. Terminals report
// auto-repeat instead of key-up, so a key counts as held while repeats keep
// arriving within the hold timeout and is released once they stop.
//
// Feed and Poll must be called from the tick goroutine. Inject may be
// called from anywhere.
type Sampler struct {
	keymap      *KeyMap
	holdTimeout time.Duration
	chordWindow time.Duration

	held    map[Key]time.Time
	pending []Event

	prefix       string
	prefixAt     time.Time
	prefixActive bool

	remote chan string
}

// NewSampler creates a sampler.
func NewSampler(km *KeyMap, holdTimeout, chordWindow time.Duration) *Sampler {
	return &Sampler{
		keymap:      km,
		holdTimeout: holdTimeout,
		chordWindow: chordWindow,
		held:        make(map[Key]time.Time),
		remote:      make(chan string, 64),
	}
}

// KeyMap returns the sampler's bindings.
func (s *Sampler) KeyMap() *KeyMap {
	return s.keymap
}

// Feed records a raw key observed at now.
func (s *Sampler) Feed(raw string, now time.Time) {
	if s.prefixActive {
		if s.completesChord(raw, now) {
			return
		}
		s.flushPrefix()
	}

	if s.startsChord(raw) {
		s.prefix = raw
		s.prefixAt = now
		s.prefixActive = true
		return
	}

	if k, ok := s.keymap.Lookup(raw); ok {
		s.press(k, now)
	}
}

// Inject queues a raw key from another goroutine. It reports false when
// the queue is full and the key was dropped.
func (s *Sampler) Inject(raw string) bool {
	select {
	case s.remote <- raw:
		return true
	default:
		return false
	}
}

// Poll returns the presses seen since the last call and expires held keys
// and chord prefixes.
func (s *Sampler) Poll(now time.Time) []Event {
	for drained := false; !drained; {
		select {
		case raw := <-s.remote:
			s.Feed(raw, now)
		default:
			drained = true
		}
	}

	if s.prefixActive && now.Sub(s.prefixAt) > s.chordWindow {
		s.flushPrefix()
	}

	for k, last := range s.held {
		if now.Sub(last) > s.holdTimeout {
			delete(s.held, k)
		}
	}

	out := s.pending
	s.pending = nil
	return out
}

// Held reports whether k was still held at the last Poll.
func (s *Sampler) Held(k Key) bool {
	_, ok := s.held[k]
	return ok
}

// Reset forgets held keys, queued presses and any chord prefix.
func (s *Sampler) Reset() {
	s.held = make(map[Key]time.Time)
	s.pending = nil
	s.prefixActive = false
}

func (s *Sampler) press(k Key, at time.Time) {
	if last, ok := s.held[k]; ok && at.Sub(last) <= s.holdTimeout {
		s.held[k] = at
		return
	}
	s.held[k] = at
	s.pending = append(s.pending, Event{Key: k, At: at})
}

func (s *Sampler) startsChord(raw string) bool {
	for _, c := range s.keymap.Chords() {
		if c.First == raw {
			return true
		}
	}
	return false
}

func (s *Sampler) completesChord(raw string, now time.Time) bool {
	if now.Sub(s.prefixAt) > s.chordWindow {
		return false
	}
	for _, c := range s.keymap.Chords() {
		if c.First == s.prefix && c.Second == raw {
			s.prefixActive = false
			s.press(c.Key, now)
			return true
		}
	}
	return false
}

// flushPrefix delivers a chord prefix that was never completed as its
// single-key binding, if it has one.
func (s *Sampler) flushPrefix() {
	s.prefixActive = false
	if k, ok := s.keymap.Lookup(s.prefix); ok {
		s.press(k, s.prefixAt)
	}
}
