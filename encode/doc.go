// Package encode encodes IR nodes to lax, JSON or YAML text.
//
// # Usage
//
//	// Encode in lax block style
//	err := encode.Encode(node, os.Stdout)
//
//	// Single line flow style
//	err := encode.Encode(node, w, encode.EncodeFlow(true))
//
//	// Encode to JSON, keeping duplicate keys in order
//	err := encode.Encode(node, w, encode.EncodeFormat(format.JSONFormat))
//
// Lax output re-parses to a node equal (ir.Equal) to the input.  Strings
// that cannot be written in lax, such as those with newlines or holding
// both quote characters where quoting is needed, yield ErrEncoding.
//
// # Related Packages
//
//   - github.com/signadot/lax/ir - IR representation
//   - github.com/signadot/lax/parse - Parse text to IR
package encode
