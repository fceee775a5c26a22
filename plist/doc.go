// Package plist provides typed, ownership-tracked handles to property-list
// trees.
//
// # Overview
//
// A property list is a tree of booleans, integers, reals, dates, data
// blobs, strings, uids, arrays and dictionaries. Trees are stored in a
// native.Store and reached through *Node handles created by a Heap. The
// package-level constructors use Default().
//
//	d := plist.NewDict()
//	defer d.Free()
//	d.DictSetItem("enabled", plist.NewBool(true))
//	xml, err := d.ToXML()
//
// # Ownership
//
// Every Node is either Owning or Borrowed:
//
//   - Constructors, decoders (FromXML, FromBinary, FromMemory) and Clone
//     return Owning nodes. Free releases their storage, including every
//     descendant.
//   - Inserting a node into an array or a dictionary moves its storage into
//     the container. The inserted handle becomes Borrowed and keeps working
//     as a view of the element.
//   - Nodes returned by ArrayItem, DictItem, Parent, NavigatePath and the
//     iterators are Borrowed.
//
// Free on a Borrowed node does nothing. Storage is released at most once:
// a second Free is logged and ignored. Using a handle whose storage has
// been released, for instance an element removed from its array, fails
// with ErrInvalidArg rather than reading another node. An Owning node that
// becomes unreachable without Free is released by the garbage collector.
//
// # Errors
//
// Fallible operations return errors that match one of ErrInvalidArg,
// ErrFormat, ErrParse, ErrNoMem or ErrUnknown under errors.Is. Typed
// accessors called on a node of another kind fail with ErrInvalidArg.
// Missing array indices and dictionary keys fail with ErrNotFound.
//
// # Dates
//
// Dates are stored as seconds and microseconds since MacEpoch. NewDate and
// DateVal use a time.Duration since the Unix epoch and truncate toward zero
// below a microsecond.
//
// # Thread Safety
//
// A Heap and its store may be shared by goroutines. Concurrent mutation of
// one tree must be serialized by the caller.
package plist
