// cmd/padlink/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/padlink/internal/config"
	"github.com/tamzrod/padlink/internal/controller"
	"github.com/tamzrod/padlink/internal/mirror"
	"github.com/tamzrod/padlink/internal/tui"
)

func main() {
	cfgPath := flag.String("config", "", "path to config.yaml (defaults apply when empty)")
	headless := flag.Bool("headless", false, "run without the terminal UI")
	listPorts := flag.Bool("list", false, "print serial ports and exit")
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fatalf("config load failed: %v", err)
		}
		if err := config.Validate(loaded); err != nil {
			fatalf("config validation failed: %v", err)
		}
		config.Normalize(loaded)
		cfg = loaded
	}

	log, closeLog, err := buildLogger(cfg.Log, *headless)
	if err != nil {
		fatalf("log setup failed: %v", err)
	}
	defer closeLog()

	// --------------------
	// Build pipeline
	// --------------------

	ctl := controller.Build(cfg, log)
	defer ctl.Close()

	if *listPorts {
		ports, err := ctl.ListPorts()
		if err != nil {
			fatalf("port enumeration failed: %v", err)
		}
		for _, p := range ports {
			fmt.Printf("%s\t%s\n", p.Path, p.Description)
		}
		return
	}

	pub, closeMirror, err := mirror.Build(cfg.Mirror, log.With().Str("component", "mirror").Logger())
	if err != nil {
		fatalf("status mirror build failed (endpoint=%s): %v", cfg.Mirror.Endpoint, err)
	}
	defer closeMirror()

	var observers []func(controller.Snapshot)
	if pub != nil {
		observers = append(observers, pub.Observe)
	}

	if cfg.Serial.Port != "" {
		// A failure here is logged by the controller; auto-reconnect retries later.
		_ = ctl.Connect(cfg.Serial.Port, cfg.Serial.Baud)
	}

	interval := time.Duration(cfg.Tick.IntervalMs) * time.Millisecond

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info().
			Dur("interval", interval).
			Str("port", cfg.Serial.Port).
			Msg("running headless")
		ctl.Run(ctx, interval, observers...)
		log.Info().Msg("shutting down")
		return
	}

	if err := tui.Run(tui.New(ctl, interval, cfg.Serial.Baud, observers...)); err != nil {
		log.Error().Err(err).Msg("terminal ui failed")
	}
}

// buildLogger writes to stderr in headless mode. With the terminal UI active,
// output goes to log.file or is discarded so it cannot corrupt the screen.
func buildLogger(c config.LogConfig, headless bool) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case c.File != "":
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case !headless:
		out = io.Discard
	}

	if c.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), closeFn, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "padlink: "+format+"\n", args...)
	os.Exit(1)
}
