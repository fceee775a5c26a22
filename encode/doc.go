// Package encode writes property list trees in any of the formats named
// by package format.
//
// # Usage
//
//	// XML, the default
//	err := encode.Encode(node, os.Stdout)
//
//	// JSON with sorted keys
//	err = encode.Encode(node, os.Stdout,
//	    encode.EncodeFormat(format.JSONFormat),
//	    encode.SortKeys(true))
//
//	// plutil -p style listing in color
//	err = encode.Encode(node, os.Stdout,
//	    encode.EncodeFormat(format.PrettyFormat),
//	    encode.EncodeColors(encode.NewColors()))
//
// JSON and YAML write data as base64 strings and uids as a single entry
// map keyed by UIDKey. JSON writes dates as RFC 3339 strings and rejects
// NaN and infinite reals with ErrEncoding.
//
// # Related Packages
//
//   - github.com/signadot/plist-format/go-plist/plist - Trees
//   - github.com/signadot/plist-format/go-plist/parse - Parse to trees
package encode
