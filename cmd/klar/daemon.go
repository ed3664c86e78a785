package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/samsten/klar/internal/display"
	"github.com/samsten/klar/internal/monitor"
	"github.com/samsten/klar/internal/osd"
	"github.com/samsten/klar/internal/theme"
)

const appID = "se.samsten.klar"

// runDaemon loads configuration, starts the device monitors and runs the
// GTK application until a termination signal arrives.
func runDaemon() error {
	// Configuration errors are fatal before any window exists; a daemon
	// that silently ignores its config is worse than one that refuses to
	// start.
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Info("starting klar", "version", version)

	app := adw.NewApplication(appID, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitors := monitor.FromConfig(cfg.Monitor, logger)
	if len(monitors) == 0 {
		logger.Warn("no monitors enabled; the overlay will never appear")
	}

	// Shared between the activate handler and shutdown paths. Only touched
	// from the GTK main loop.
	var (
		started []monitor.Monitor
		window  *display.Window
	)

	app.ConnectActivate(func() {
		themes := theme.NewManager(cfg.Appearance.SystemTheme, logger)
		themes.Apply(nil)

		// A monitor that cannot start (no such device, no audio server)
		// is skipped; the rest keep working.
		kinds := make([]monitor.Kind, 0, len(monitors))
		for _, m := range monitors {
			if err := m.Start(ctx); err != nil {
				logger.Warn("monitor unavailable",
					"kind", m.Kind().String(),
					"error", err,
				)
				continue
			}
			started = append(started, m)
			kinds = append(kinds, m.Kind())
		}

		window = display.NewWindow(&app.Application, kinds, display.Options{
			IconSize: cfg.Appearance.IconSize,
			Reveal:   cfg.Appearance.Animation.Reveal.Duration.Duration(),
			Hide:     cfg.Appearance.Animation.Hide.Duration.Duration(),
			Logger:   logger,
		})

		controller := osd.NewController(window, osd.GLibScheduler{}, osd.DefaultHold, logger)

		// Readings arrive on monitor goroutines; marshal each onto the
		// GTK main loop before it touches the controller.
		readings := fanIn(ctx, started)
		go func() {
			for r := range readings {
				r := r
				glib.IdleAdd(func() {
					controller.HandleReading(r)
				})
			}
		}()

		logger.Info("klar ready", "monitors", len(started))
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		for _, m := range started {
			m.Stop()
		}
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
		glib.IdleAdd(func() {
			if window != nil {
				window.Close()
			}
			app.Quit()
		})
	}()

	// GTK gets no CLI args; cobra already consumed them.
	if status := app.Run(nil); status != 0 {
		return fmt.Errorf("application exited with status %d", status)
	}
	return nil
}

// fanIn merges the monitors' reading channels into one. The output channel
// closes once the context is cancelled and all inputs drain.
func fanIn(ctx context.Context, monitors []monitor.Monitor) <-chan monitor.Reading {
	out := make(chan monitor.Reading, 16)

	var wg sync.WaitGroup
	for _, m := range monitors {
		wg.Add(1)
		go func(ch <-chan monitor.Reading) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case r, ok := <-ch:
					if !ok {
						return
					}
					select {
					case out <- r:
					case <-ctx.Done():
						return
					}
				}
			}
		}(m.Readings())
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
