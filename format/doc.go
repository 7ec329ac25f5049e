// Package format names the output formats lax documents can be encoded
// to.
//
// # Related Packages
//
//   - github.com/signadot/lax/encode - Encode IR to text or CBOR
package format
