// Package input maps raw terminal and remote key strings to logical cabinet
// keys.
//
// A KeyMap holds one bubbles key.Binding per logical key plus optional
// two-key chords. The Sampler feeds raw keys through the map, suppresses
// auto-repeat while a key is held and reports releases once repeats stop.
// A raw key that starts a chord is held back for the chord window; if the
// second key does not follow, it is delivered as its own binding.
package input
