package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cminus/internal/driver"
	"cminus/internal/source"
	"cminus/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI picks the live progress view. Auto mode only uses it for
// interactive, non-quiet pretty output.
func shouldUseTUI(mode uiMode, sess *session, out io.Writer) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !sess.quiet && sess.cfg.Check.Format == "pretty" && isTerminal(out)
	}
}

type checkOutcome struct {
	results []driver.FileResult
	stats   driver.Stats
	err     error
}

// runCheckWithUI runs CheckFiles in the background while the progress view
// renders its events; the view exits when the check closes the channel.
func runCheckWithUI(ctx context.Context, out io.Writer, fileSet *source.FileSet, files []string, opts driver.Options) ([]driver.FileResult, driver.Stats, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Sink = driver.ChannelSink{Ch: events}
		results, stats, err := driver.CheckFiles(ctx, fileSet, files, opts)
		outcomeCh <- checkOutcome{results: results, stats: stats, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking", files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep draining so the check is never blocked on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, outcome.stats, uiErr
	}
	return outcome.results, outcome.stats, outcome.err
}
