// Package token provides source positions and the Cursor, a
// character-addressable view over a line-split lax document.
//
// The Cursor has no parsing semantics of its own: it offers line and
// character navigation, indentation measurement and lookahead.  All
// interpretation of the text is left to package parse.
//
// # Related Packages
//
//   - github.com/signadot/lax/parse - Parse lax text into IR nodes
//   - github.com/signadot/lax/ir - IR representation
package token
