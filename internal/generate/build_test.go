package generate

import (
	"strings"
	"testing"

	"github.com/handiism/liquidsoap-conf-gen/internal/config"
	"github.com/handiism/liquidsoap-conf-gen/internal/liquidsoap"
	"github.com/handiism/liquidsoap-conf-gen/internal/model"
)

func testPlaylists(paths ...string) []*model.Playlist {
	playlists := make([]*model.Playlist, len(paths))
	for i, p := range paths {
		playlists[i] = model.NewPlaylist(p)
	}
	model.AssignIDs(playlists, model.IDPolicyName)
	return playlists
}

func render(doc *liquidsoap.Document) string {
	return liquidsoap.NewFormatter().Format(doc)
}

func TestBuild_BlockOrder(t *testing.T) {
	p := config.DefaultSettings().ToParams()
	doc, warnings := Build(p, testPlaylists("/m/Jazz Classics.m3u", "/m/Rock.m3u"))
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	var kinds []string
	for _, b := range doc.Blocks {
		var kind string
		switch b.(type) {
		case liquidsoap.Comment:
			kind = "comment"
		case liquidsoap.Setting:
			kind = "setting"
		case liquidsoap.Declaration:
			kind = "declaration"
		case liquidsoap.Combinator:
			kind = "combinator"
		case liquidsoap.Stage:
			kind = "stage"
		case liquidsoap.Callback:
			kind = "callback"
		case liquidsoap.Sink:
			kind = "sink"
		}
		if len(kinds) == 0 || kinds[len(kinds)-1] != kind {
			kinds = append(kinds, kind)
		}
	}

	want := []string{"comment", "setting", "declaration", "combinator", "stage", "callback", "sink"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("block order = %v, want %v", kinds, want)
	}
}

func TestBuild_OneDeclarationPerPlaylist(t *testing.T) {
	p := config.DefaultSettings().ToParams()
	playlists := testPlaylists("/m/a.m3u", "/m/b.m3u", "/m/c.m3u", "/m/d.m3u")

	doc, _ := Build(p, playlists)

	decls := doc.Declarations()
	if len(decls) != len(playlists) {
		t.Fatalf("got %d declarations, want %d", len(decls), len(playlists))
	}
	for i, d := range decls {
		if d.ID != playlists[i].ID || d.Path != playlists[i].Path {
			t.Errorf("declaration %d = %+v, want %s / %s", i, d, playlists[i].ID, playlists[i].Path)
		}
	}
}

func TestBuild_CombinatorReferencesEveryIDOnce(t *testing.T) {
	for _, mode := range []model.Mode{model.ModeRandom, model.ModeRotation, model.ModeFallback} {
		t.Run(mode.String(), func(t *testing.T) {
			p := config.DefaultSettings().ToParams()
			p.Sources.Mode = mode
			playlists := testPlaylists("/m/a.m3u", "/m/b.m3u", "/m/c.m3u", "/m/d.m3u", "/m/e.m3u")

			doc, _ := Build(p, playlists)
			combs := doc.Combinators()
			if len(combs) != 1 {
				t.Fatalf("got %d combinators, want 1", len(combs))
			}

			counts := make(map[string]int)
			for _, ref := range combs[0].References() {
				counts[ref]++
			}
			for _, pl := range playlists {
				if counts[pl.ID] != 1 {
					t.Errorf("%s referenced %d times, want 1", pl.ID, counts[pl.ID])
				}
			}
			if len(counts) != len(playlists) {
				t.Errorf("combinator references %d ids, want %d", len(counts), len(playlists))
			}
		})
	}
}

func TestBuild_RockAndJazzScenario(t *testing.T) {
	p := config.DefaultSettings().ToParams()
	doc, _ := Build(p, testPlaylists("/m/Jazz Classics.m3u", "/m/Rock.m3u"))
	script := render(doc)

	for _, want := range []string{
		`playlist_Jazz_Classics = playlist(reload_mode="watch", reload=300, "/m/Jazz Classics.m3u")`,
		`playlist_Rock = playlist(reload_mode="watch", reload=300, "/m/Rock.m3u")`,
		"random_source = random(weights=[1, 1], [playlist_Jazz_Classics, playlist_Rock])",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}
}

func TestBuild_RotationSplitsOddCount(t *testing.T) {
	p := config.DefaultSettings().ToParams()
	p.Sources.Mode = model.ModeRotation

	doc, warnings := Build(p, testPlaylists("/m/a.m3u", "/m/b.m3u", "/m/c.m3u"))
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	script := render(doc)

	for _, want := range []string{
		"day_source = random(weights=[1], [playlist_a])",
		"night_source = random(weights=[1, 1], [playlist_b, playlist_c])",
		"random_source = switch(track_sensitive=true, [({6h-18h}, day_source), ({18h-6h}, night_source)])",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}
}

func TestBuild_RotationWithOnePlaylistFallsBackToRandom(t *testing.T) {
	p := config.DefaultSettings().ToParams()
	p.Sources.Mode = model.ModeRotation

	doc, warnings := Build(p, testPlaylists("/m/only.m3u"))
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if mode := doc.Combinators()[0].Mode; mode != model.ModeRandom {
		t.Errorf("Mode = %v, want random", mode)
	}
	if !strings.Contains(render(doc), "random_source = random(weights=[1], [playlist_only])") {
		t.Error("expected random combinator over the single playlist")
	}
}

func TestBuild_FallbackChain(t *testing.T) {
	p := config.DefaultSettings().ToParams()
	p.Sources.Mode = model.ModeFallback

	doc, _ := Build(p, testPlaylists("/m/a.m3u", "/m/b.m3u"))
	if !strings.Contains(render(doc), "random_source = fallback(track_sensitive=true, [playlist_a, playlist_b])") {
		t.Errorf("missing fallback chain:\n%s", render(doc))
	}
}

func TestBuild_ProcessingChainOrder(t *testing.T) {
	s := config.DefaultSettings()
	s.Normalize = true
	s.Filter = true
	s.Compress = true
	s.Limit = true
	s.Crossfade = true
	s.EmergencyFile = "/srv/jingles/offline.mp3"
	p := s.ToParams()

	doc, _ := Build(p, testPlaylists("/m/a.m3u"))

	var lines []string
	for _, line := range strings.Split(render(doc), "\n") {
		if strings.HasPrefix(line, MainVar+" = ") {
			lines = append(lines, line)
		}
	}

	wantPrefixes := []string{
		"main_source = normalize(target=-12., random_source)",
		"main_source = filter.iir.butterworth.high(frequency=30., order=4, main_source)",
		"main_source = compress(attack=50., release=400., threshold=-18., ratio=3., gain=2., main_source)",
		"main_source = limit(threshold=-1., main_source)",
		"main_source = crossfade(duration=3., main_source)",
		`main_source = fallback(track_sensitive=false, [main_source, single("/srv/jingles/offline.mp3")])`,
		"main_source = mksafe(main_source)",
	}
	if len(lines) != len(wantPrefixes) {
		t.Fatalf("got %d stages, want %d:\n%s", len(lines), len(wantPrefixes), strings.Join(lines, "\n"))
	}
	for i := range wantPrefixes {
		if lines[i] != wantPrefixes[i] {
			t.Errorf("stage %d = %q, want %q", i, lines[i], wantPrefixes[i])
		}
	}
}

func TestBuild_NoStagesStillMksafe(t *testing.T) {
	s := config.DefaultSettings()
	s.Normalize = false
	s.Crossfade = false

	doc, _ := Build(s.ToParams(), testPlaylists("/m/a.m3u"))
	if !strings.Contains(render(doc), "main_source = mksafe(random_source)") {
		t.Errorf("mksafe should wrap the combined source directly:\n%s", render(doc))
	}
}

func TestBuild_ParameterSubstitution(t *testing.T) {
	s := config.DefaultSettings()
	s.Bitrate = "128k"
	s.Host = "stream.example.org"
	s.Port = 8443
	s.Mount = "night"
	s.Password = `pa"ss`
	s.RecordPath = "/srv/archive/%Y-%m-%d.mp3"

	doc, _ := Build(s.ToParams(), testPlaylists("/m/a.m3u"))
	script := render(doc)

	if strings.Contains(script, "192k") {
		t.Error("stale default bitrate 192k in output")
	}
	if n := strings.Count(script, `b="128k"`); n != 2 {
		t.Errorf("bitrate appears %d times, want 2 (icecast and file sinks)", n)
	}
	for _, want := range []string{
		`host="stream.example.org"`,
		"port=8443",
		`mount="night"`,
		`password="pa\"ss"`,
		`"/srv/archive/%Y-%m-%d.mp3"`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
	if n := len(doc.Sinks()); n != 2 {
		t.Errorf("got %d sinks, want 2", n)
	}
}

func TestBuild_TelnetAndMetadataCallbacks(t *testing.T) {
	s := config.DefaultSettings()
	s.Telnet = true
	s.TelnetPort = 5555
	s.MetadataLog = true
	s.MetadataLogFile = "/var/log/radio/now_playing.log"

	script := render(mustBuild(t, s))

	for _, want := range []string{
		`set("server.telnet", true)`,
		`set("server.telnet.port", 5555)`,
		"def log_metadata(m) =",
		"main_source.on_metadata(log_metadata)",
		`"/var/log/radio/now_playing.log"`,
		`server.register(namespace="radio", description="Skip the current track", usage="skip", "skip", skip_track)`,
		`"remaining", remaining_time)`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestBuild_TelnetDisabled(t *testing.T) {
	s := config.DefaultSettings()
	s.Telnet = false

	script := render(mustBuild(t, s))

	if !strings.Contains(script, `set("server.telnet", false)`) {
		t.Error("telnet should be explicitly disabled")
	}
	if strings.Contains(script, "server.telnet.port") || strings.Contains(script, "server.register") {
		t.Errorf("telnet port and commands should be omitted:\n%s", script)
	}
}

func mustBuild(t *testing.T, s *config.Settings) *liquidsoap.Document {
	t.Helper()
	doc, warnings := Build(s.ToParams(), testPlaylists("/m/a.m3u", "/m/b.m3u"))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	return doc
}
