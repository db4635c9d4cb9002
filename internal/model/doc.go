// Package model defines the core data structures shared by the
// generator, the block renderer and the front ends.
//
// # Playlist
//
// Playlist is one discovered playlist file plus the identifier it is
// declared under in the generated script:
//
//	pl := model.NewPlaylist("/music/playlists/Jazz Classics.m3u")
//	fmt.Println(pl.Name) // "Jazz Classics"
//
// Identifiers are assigned for a whole run at once so that collisions
// can be detected:
//
//	renames := model.AssignIDs(playlists, model.IDPolicyName)
//	// playlists[i].ID == "playlist_Jazz_Classics"
//
// # Params
//
// Params is the immutable set of generation parameters (sink, server,
// sources and processing chain). It is built once by the config package
// and passed by value into document assembly.
package model
