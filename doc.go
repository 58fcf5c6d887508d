// Package scriptvalue converts between typed Go values and the dynamic values
// of an embedded script engine.
//
// # Architecture Overview
//
//	scriptvalue/         Root package with the engine Boundary interfaces
//	├── transcoder/      Encoder, Decoder, containers and type bridges
//	├── value/           In-process value tree and its Boundary
//	├── engine/          goja Boundary and script helpers
//	├── keycase/         Key naming transforms (snake case, lowerCamel)
//	└── errors/          Structured error types with coding paths
//
// # Quick Start
//
// Encode into a goja runtime and decode the script's result:
//
//	vm := goja.New()
//	g := engine.NewGoja(vm)
//	if err := g.Set("order", order); err != nil {
//	    log.Fatal(err)
//	}
//	v, err := g.Run(`({total: order.items.length, rush: order.priority > 2})`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := engine.Export[Summary](g, v)
//
// Or stay in process with the value tree:
//
//	tree, err := transcoder.EncodeTree(order)
//	back, err := transcoder.DecodeTree[Order](tree)
//
// # Value Model
//
// Six kinds cross the boundary: null, bool, number (float64), string, array
// and object. See the transcoder package for how Go types map onto them.
//
// # Implementing a Boundary
//
// A Boundary creates engine values (Constructor) and reads them back
// (Inspector). Handles are opaque to the codec; an Inspector must keep an
// absent key distinct from a key holding null.
package scriptvalue
