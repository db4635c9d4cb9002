package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/handiism/liquidsoap-conf-gen/internal/config"
	"github.com/handiism/liquidsoap-conf-gen/internal/generate"
)

// options holds the parsed command line flags.
type options struct {
	dir         string
	output      string
	config      string
	saveConfig  string
	host        string
	port        int
	mount       string
	password    string
	bitrate     string
	telnet      bool
	telnetPort  int
	mode        string
	ids         string
	metadataLog string
	record      string
	inspect     bool
	workers     int
	verbose     bool
	dryRun      bool
}

// registerFlags defines the command line flags on fs, using defaults for
// the values shown in the help text.
func registerFlags(fs *flag.FlagSet, defaults *config.Settings) *options {
	o := &options{}
	fs.StringVar(&o.dir, "dir", defaults.PlaylistDir, "Directory to scan for playlists")
	fs.StringVar(&o.output, "output", defaults.OutputFile, "Output Liquidsoap script")
	fs.StringVar(&o.config, "config", "", "Path to config file (JSON or YAML)")
	fs.StringVar(&o.saveConfig, "save-config", "", "Write the effective settings to this file")
	fs.StringVar(&o.host, "host", defaults.Host, "Icecast host")
	fs.IntVar(&o.port, "port", defaults.Port, "Icecast port")
	fs.StringVar(&o.mount, "mount", defaults.Mount, "Icecast mount point")
	fs.StringVar(&o.password, "password", defaults.Password, "Icecast source password")
	fs.StringVar(&o.bitrate, "bitrate", defaults.Bitrate, "MP3 bitrate, e.g. 128k")
	fs.BoolVar(&o.telnet, "telnet", defaults.Telnet, "Enable the telnet server and radio.* commands")
	fs.IntVar(&o.telnetPort, "telnet-port", defaults.TelnetPort, "Telnet port")
	fs.StringVar(&o.mode, "mode", defaults.Mode, "Combination mode: random, rotation or fallback")
	fs.StringVar(&o.ids, "ids", defaults.IDPolicy, "Identifier policy: name or index")
	fs.StringVar(&o.metadataLog, "metadata-log", "", "Append now-playing lines to this file")
	fs.StringVar(&o.record, "record", "", "Also record the stream to this file")
	fs.BoolVar(&o.inspect, "inspect", defaults.Inspect, "Annotate declarations with playlist contents")
	fs.IntVar(&o.workers, "workers", defaults.Workers, "Concurrent playlist inspections")
	fs.BoolVar(&o.verbose, "verbose", false, "Show verbose output")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Print the script instead of writing it")
	return o
}

// loadSettings resolves the effective settings for a parsed fs:
// defaults, then the config file, then LIQGEN_* variables, then only the
// flags that were given on the command line.
func loadSettings(fs *flag.FlagSet, o *options) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if o.config != "" {
		var err error
		settings, err = config.Load(o.config)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	settings.ApplyEnv()

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			settings.PlaylistDir = o.dir
		case "output":
			settings.OutputFile = o.output
		case "host":
			settings.Host = o.host
		case "port":
			settings.Port = o.port
		case "mount":
			settings.Mount = o.mount
		case "password":
			settings.Password = o.password
		case "bitrate":
			settings.Bitrate = o.bitrate
		case "telnet":
			settings.Telnet = o.telnet
		case "telnet-port":
			settings.TelnetPort = o.telnetPort
		case "mode":
			settings.Mode = o.mode
		case "ids":
			settings.IDPolicy = o.ids
		case "metadata-log":
			settings.MetadataLog = o.metadataLog != ""
			settings.MetadataLogFile = o.metadataLog
		case "record":
			settings.RecordPath = o.record
		case "inspect":
			settings.Inspect = o.inspect
		case "workers":
			settings.Workers = o.workers
		}
	})

	return settings, nil
}

func main() {
	opts := registerFlags(flag.CommandLine, config.DefaultSettings())

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "liqgen - Generate a Liquidsoap radio script from a playlist folder")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  liqgen [options]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "For interactive mode, use: liqgen-tui")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}

	flag.Parse()

	settings, err := loadSettings(flag.CommandLine, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opts.saveConfig != "" {
		if err := settings.Save(opts.saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cancelling...")
		cancel()
	}()

	// In dry-run mode stdout carries the script, so events go to stderr
	out := os.Stdout
	if opts.dryRun {
		out = os.Stderr
	}

	// Create generator with progress callback
	generator := generate.NewGenerator(settings, func(event generate.ProgressEvent) {
		if event.Level == generate.LevelVerbose && !opts.verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case generate.LevelError:
			prefix = "❌ "
		case generate.LevelWarning:
			prefix = "⚠️  "
		case generate.LevelSuccess:
			prefix = "✅ "
		case generate.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Fprintln(out, prefix+event.Message)
	})

	fmt.Fprintln(out, "📻 Liquidsoap Config Generator")
	fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(out)

	if err := generator.Initialize(ctx); err != nil {
		if errors.Is(err, generate.ErrNoPlaylists) {
			fmt.Fprintf(out, "No %s playlists found in %s\n", settings.Extension, settings.PlaylistDir)
			return
		}
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Generation cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	if opts.dryRun {
		fmt.Print(generator.Script())
		return
	}

	written, err := generator.Write(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing script: %v\n", err)
		os.Exit(1)
	}

	p := generator.Params()
	telnet := "off"
	if p.Server.Telnet {
		telnet = fmt.Sprintf("port %d", p.Server.TelnetPort)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Processed %d playlist(s)\n", len(generator.Playlists()))
	fmt.Printf("   Output:  %s (%s)\n", settings.OutputFile, humanize.Bytes(uint64(written)))
	fmt.Printf("   Stream:  http://%s:%d/%s at %s\n", p.Sink.Host, p.Sink.Port, p.Sink.Mount, p.Sink.Bitrate)
	fmt.Printf("   Mode:    %s\n", generator.Mode())
	fmt.Printf("   Telnet:  %s\n", telnet)
	fmt.Println()
	fmt.Printf("Start the station with: liquidsoap %s\n", settings.OutputFile)
}
