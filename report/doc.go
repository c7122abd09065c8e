// Package report renders tracked structures for humans and machines:
// JSON conversion of canonical structures, text diffs between snapshots,
// RFC 7386 merge patches, and colored dirty-path listings.
package report
