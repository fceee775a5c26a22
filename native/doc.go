// Package native is the storage and codec boundary for property-list trees.
//
// # Overview
//
// Nodes live in a Store and are addressed by Ref handles. A Ref is an index
// into the store's slot table combined with a generation number, so a Ref
// that outlives the node it named is detected instead of silently
// addressing a recycled slot. Storage is never released implicitly: the
// owner of a root node must call Free, which releases the whole subtree.
//
// The API mirrors a C property-list library. Calls are synchronous and
// report failures with a Status code (0 for success, negative otherwise)
// next to their results.
//
// # Ownership
//
// A node attached to an array or dictionary belongs to that container.
// Attaching requires the node to be a root (no parent), so a subtree has at
// most one owner. Removing an element, replacing it, or freeing any
// ancestor releases it; Refs to released nodes report ErrInvalidArg and
// NodeType returns None for them.
//
// # Wire formats
//
// FromXML, FromBin and FromMemory decode the XML and binary formats (and,
// through FromMemory, OpenStep text) into a new root node. ToXML, ToBin and
// ToOpenStep encode a subtree. The grammar itself is provided by
// howett.net/plist.
//
// # Thread Safety
//
// Every Store call takes the store mutex, so independent trees may be used
// from different goroutines. Mutating one tree from several goroutines
// still requires external synchronization to get meaningful results.
package native
