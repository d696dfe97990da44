package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// StepFunc reports progress of one step from inside an operation.
type StepFunc func(number int, status StepStatus, message string)

// Operation is the work a Runner executes. It returns the details shown in
// the success box.
type Operation func(ctx context.Context, step StepFunc) ([]Field, error)

// RunnerConfig describes a multi-step command.
type RunnerConfig struct {
	Title   string
	Command string
	Params  []Field
	Steps   []string
	Hints   func(error) []string // Troubleshooting tips for a failure
	Output  io.Writer            // Default: os.Stdout
	Width   int                  // Default: terminal width
}

// Runner prints a header, then one line per finished step, then a result box.
type Runner struct {
	cfg      RunnerConfig
	header   *Header
	progress *Progress
	out      io.Writer
	width    int
	now      func() time.Time
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg RunnerConfig) *Runner {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	width := cfg.Width
	if width == 0 {
		width = GetTerminalWidth()
	}
	return &Runner{
		cfg:      cfg,
		header:   NewHeader(cfg.Title, cfg.Command, cfg.Params...).SetWidth(width),
		progress: NewProgress(cfg.Steps...).SetWidth(width),
		out:      out,
		width:    width,
		now:      time.Now,
	}
}

// Progress returns the step tracker.
func (r *Runner) Progress() *Progress {
	return r.progress
}

// Run executes op and renders its progress. The error of op is returned
// unchanged after the failure box is printed.
func (r *Runner) Run(ctx context.Context, op Operation) error {
	start := r.now()
	_, _ = fmt.Fprintln(r.out, r.header.Render())
	_, _ = fmt.Fprintln(r.out)

	details, err := op(ctx, r.step)
	elapsed := r.now().Sub(start).Round(time.Millisecond)
	_, _ = fmt.Fprintln(r.out)

	if err != nil {
		var hints []string
		if r.cfg.Hints != nil {
			hints = r.cfg.Hints(err)
		}
		_, _ = fmt.Fprintln(r.out, NewFailureResult(r.cfg.Title+" failed", err, hints...).SetWidth(r.width).Render())
		return err
	}

	details = append(details, F("Duration", elapsed.String()))
	_, _ = fmt.Fprintln(r.out, NewSuccessResult(r.cfg.Title+" complete", details...).SetWidth(r.width).Render())
	return nil
}

func (r *Runner) step(number int, status StepStatus, message string) {
	r.progress.UpdateStep(number, status, message)
	if number < 1 || number > r.progress.Total() {
		return
	}
	line := r.progress.renderStepLine(r.progress.Steps[number-1])
	switch status {
	case StepComplete, StepFailed, StepSkipped:
		_, _ = fmt.Fprintln(r.out, line)
	case StepRunning:
		// Overwritten by the finished line.
		_, _ = fmt.Fprint(r.out, line+"\r")
	}
}
