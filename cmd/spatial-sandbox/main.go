// Command spatial-sandbox drives the spatial core from a terminal: the keyboard stands in for head
// and controller tracking, pulses are voiced through the speaker
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spatial-shell/config"
	"github.com/lixenwraith/spatial-shell/haptics"
	"github.com/lixenwraith/spatial-shell/parameter"
	"github.com/lixenwraith/spatial-shell/service"
)

var (
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/spatial-sandbox.log")
	configFlag = flag.String("config", "", "Additional TOML config file, applied last")
	audioFlag  = flag.Bool("audio", false, "Voice haptic pulses through the speaker (overrides haptics.muted)")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}
	log := slog.Default()

	var extra []string
	if *configFlag != "" {
		extra = append(extra, *configFlag)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	muted := cfg.Haptics.Muted && !*audioFlag

	audio := haptics.NewAudioSink(log)
	term := newTerminal(nil)

	hub := service.NewHub(log)
	for _, svc := range []service.Service{audio, term} {
		if err := hub.Register(svc); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register %s: %v\n", svc.Name(), err)
			os.Exit(1)
		}
	}
	if err := hub.InitAll(muted); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := hub.StartAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	// Panic recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			hub.StopAll()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSPATIAL-SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	s := newSandbox(cfg, audio, log)
	run(s, term.Screen(), cfg.Engine.TickInterval)

	s.close()
	hub.StopAll()
	log.Info("sandbox exited", "metrics", s.reg.String())
}

// run multiplexes terminal events with the frame and render tickers on one goroutine
func run(s *sandbox, screen tcell.Screen, tick time.Duration) {
	frameTicker := time.NewTicker(tick)
	defer frameTicker.Stop()
	renderTicker := time.NewTicker(parameter.SandboxRenderInterval)
	defer renderTicker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	s.draw(screen)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !s.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-frameTicker.C:
			s.step()

		case <-renderTicker.C:
			s.draw(screen)
		}
	}
}
