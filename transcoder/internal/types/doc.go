// Package types defines the compiled type plans used by the transcoder.
//
// A Plan holds precomputed reflection metadata for one Go type: how the type
// maps onto the value tree (its Kind), which custom coding hooks it
// implements, and for structs the ordered field list. By compiling this once
// per type, the transcoder avoids repeated reflection work on hot paths.
//
// # Key Types
//
//   - Plan: Cached type metadata
//   - Kind: Type discriminator (scalar, bridge, aggregate)
//
// Plans never point at other plans, so self-referential Go types compile
// without recursion.
//
// This package is internal to the transcoder.
package types
