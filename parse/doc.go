// Package parse decodes property lists from any readable format into
// plist trees.
//
// # Usage
//
//	// Detect the format
//	node, err := parse.Parse(data)
//	if err != nil {
//	    return err
//	}
//	defer node.Free()
//
//	// Force a format and heap
//	node, err := parse.Parse(data, parse.ParseJSON(), parse.ParseHeap(h))
//
// JSON and YAML have no date, data or uid types. Non-negative integers
// become unsigned, negative ones signed. A map with the single key
// encode.UIDKey holding an unsigned integer becomes a uid, and with
// ParseDates strings holding RFC 3339 timestamps become dates. null is
// rejected with ErrNull.
//
// # Related Packages
//
//   - github.com/signadot/plist-format/go-plist/plist - Trees
//   - github.com/signadot/plist-format/go-plist/encode - Encode trees
package parse
