// Package generate turns a directory of playlists into a Liquidsoap script.
//
// # Generator
//
// The Generator coordinates a run:
//
//  1. Find playlist files under the configured directory
//  2. Assign one identifier per playlist
//  3. Inspect playlists concurrently for declaration comments (optional)
//  4. Assemble the document (see Build)
//  5. Render and write it to the output file
//
// # Basic Usage
//
//	gen := generate.NewGenerator(settings, func(event generate.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := gen.Initialize(ctx); errors.Is(err, generate.ErrNoPlaylists) {
//	    fmt.Println("nothing to do")
//	    return
//	}
//
//	n, err := gen.Write(ctx)
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// The callback may be invoked from several goroutines during inspection.
package generate
