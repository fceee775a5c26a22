// Package format names the encodings a property list can be read from or
// written to.
//
// # Usage
//
//	f, err := format.ParseFormat("json")
//	err = encode.Encode(node, os.Stdout, encode.EncodeFormat(f))
//
// XMLFormat, BinaryFormat and OpenStepFormat are wire formats and round
// trip every kind. JSONFormat and YAMLFormat are views: dates, data and
// uids are written as strings, numbers and tagged maps. PrettyFormat is a
// human-readable listing and cannot be parsed back.
//
// # Related Packages
//
//   - github.com/signadot/plist-format/go-plist/encode - Encode trees
//   - github.com/signadot/plist-format/go-plist/parse - Parse to trees
package format
