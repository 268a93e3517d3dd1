// Package organize moves files into category folders according to the
// enabled policies.
//
// The Organizer enumerates candidates once, then runs the policies in a
// fixed order: duplicate isolation, type sorting, date sorting. A shared
// skip-set guarantees a file claimed by an earlier stage is invisible to the
// later ones. The Relocator handles each individual move with self-move
// detection, deterministic conflict suffixes, and a dry-run mode that
// reports intentions without touching the filesystem.
package organize
