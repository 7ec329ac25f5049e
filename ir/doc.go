// Package ir provides the intermediate representation (IR) for lax
// documents.
//
// # Node Structure
//
// A Node represents a single value.  Nodes can be:
//
//   - Atomic types: null, boolean, number, string
//   - Composite types: object (key-value pairs), array (ordered list)
//
// The IR works as a recursive tagged union structure, where values are
// placed in fields depending on the node's Type:
//
//   - NullType: no value field
//   - BoolType: Bool
//   - NumberType: Number
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields and Values
//
// Children are owned by their parent; there are no parent links, so a tree
// can never contain a cycle.
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values.  Fields are
// always StringType.  Properties are kept in source order and duplicate keys
// are retained as distinct properties.
//
// # Spans
//
// Every node produced by package parse carries Start and End positions
// spanning exactly the source text it was derived from.  Quoted scalars
// include their quotes; collections run from their opening delimiter or
// first item to their closing delimiter or last item.  Nodes built with the
// constructors in this package have zero spans.
//
// # Related Packages
//
//   - github.com/signadot/lax/parse - Parse text to IR
//   - github.com/signadot/lax/encode - Encode IR to text
package ir
