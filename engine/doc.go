// Package engine adapts the goja JavaScript runtime to the codec boundary.
//
// Goja implements scriptvalue.Boundary over a *goja.Runtime. Handles are
// goja.Value; objects and arrays are *goja.Object.
//
//	JS value            Kind
//	─────────────────────────────
//	null, undefined     null
//	true, false         bool
//	number              number
//	string              string
//	Array               array
//	any other object    object
//
// An undefined property counts as absent, matching how scripts test for a
// missing key. Array holes read as undefined and therefore as null.
//
// # Usage
//
//	vm := goja.New()
//	g := engine.NewGoja(vm)
//	if err := g.Set("config", cfg); err != nil {
//	    return err
//	}
//	out, err := g.Run(`config.retries * 2`)
//
// # Thread Safety
//
// A goja runtime is single-goroutine, and so is a Goja bound to it.
package engine
