// Package libdiff computes structural differences between property list
// trees.
//
// Dictionaries are matched by key, arrays are aligned by a diff of their
// element summaries, and strings that change only a little are reported
// as in-place edits diffed with github.com/sergi/go-diff.
package libdiff
