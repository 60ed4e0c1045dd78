package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"codex/internal/diag"
	"codex/internal/driver"
	"codex/internal/pipeline"
	"codex/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI drives the progress model while the driver runs in the
// background. Every event also reaches extra.
func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.Options, rep diag.Reporter, extra pipeline.ProgressSink) (*driver.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		sink := pipeline.ChannelSink{Ch: events}
		opts.Progress = pipeline.SinkFunc(func(evt pipeline.Event) {
			if extra != nil {
				extra.OnEvent(evt)
			}
			sink.OnEvent(evt)
		})
		res, err := driver.Run(ctx, files, opts, rep)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
