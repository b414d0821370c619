// Package host abstracts the machine dotup mutates: the filesystem it
// edits and the external tools it invokes. The bootstrap stages depend
// only on these interfaces, so the sequencer can be exercised against a
// fake host that records calls instead of touching a real machine.
package host
