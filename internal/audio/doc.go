// Package audio reads playlist and track metadata so the generator can
// annotate each playlist declaration.
//
// # Playlists
//
// ParseM3U understands plain and extended M3U:
//
//	list, err := audio.ReadM3U("/music/playlists/Rock.m3u")
//	fmt.Println(len(list.Entries), list.TotalDuration())
//
// # ID3 Tags
//
// TagReader reads artist and title from MP3 files:
//
//	tags, err := audio.NewTagReader().ReadTags("/music/track.mp3")
//
// # Inspection
//
// Inspector combines both into a one-line Summary:
//
//	summary, err := audio.NewInspector(nil).Inspect(ctx, path)
//	fmt.Println(summary) // "12 tracks, 48m0s, first: AC/DC - Thunderstruck"
package audio
