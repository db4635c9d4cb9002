// Package ioutils provides the file system side of the generator.
//
// This package contains functions for:
//   - Finding playlist files under a directory tree
//   - Writing the generated script
//   - Directory creation
//
// # Discovery
//
//	paths, err := ioutils.FindPlaylists(ctx, "/music/playlists", ".m3u")
//	// paths are absolute, use forward slashes and are sorted
//
// # Output
//
//	err := ioutils.WriteFile(ctx, "out/radio.liq", []byte(script))
//	// creates "out" if needed, truncates an existing file
package ioutils
