// Package kpath parses and prints paths into property-list trees.
//
// A path is a sequence of segments:
//   - .field or field - dictionary key
//   - "quoted key" - dictionary key containing '.', '[', spaces or quotes
//   - [index] - array element
//   - .* / [*] - wildcards matching every key or every element
//
// # Usage
//
//	kp, err := kpath.Parse(`apps[0].name`)
//	segs := kp.Segments() // ["apps", "0", "name"]
//	parent := kp.Parent() // apps[0]
//	child := kp.Append(kpath.Field("icon"))
//
// Segments returns the plain string form used by plist.Node.NavigatePath,
// where array indices are decimal strings.
package kpath
