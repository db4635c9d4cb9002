// Package liquidsoap models a generated Liquidsoap script as a sequence of
// typed blocks and renders it to text.
//
// # Blocks
//
// A Document is an ordered list of blocks:
//   - Comment: free comment lines (the header)
//   - Setting: set("key", value)
//   - Declaration: one playlist source
//   - Combinator: random, time-of-day rotation or fallback over all sources
//   - Stage: one processing step rebinding the main source
//   - Callback: a function definition plus the call that registers it
//   - Sink: an output
//
// Expressions inside blocks are built from Value types (String, Int,
// Float, Bool, Ident, List, Call, Encoder, ...), so every interpolation
// point is explicit and quoted the same way.
//
// # Rendering
//
//	doc := &liquidsoap.Document{}
//	doc.Add(liquidsoap.Setting{Key: "log.stdout", Value: liquidsoap.Bool(true)})
//	text := liquidsoap.NewFormatter().Format(doc)
//
// Rendering is pure: no file system access, same input, same bytes.
package liquidsoap
