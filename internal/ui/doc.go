// Package ui renders terminal output for the charmer-cfg CLI.
//
// Commands print once and exit; the interactive control panel lives in
// package panel. The components are:
//
//   - Header: command banner with the operation name and its parameters
//   - Progress and Runner: step list with a bar for multi-step commands
//   - Result: success, failure and warning boxes with ordered details
//   - Table: aligned columns for list output
//   - Confirmation: warning box that asks the user to type a phrase
//
// Printer ties them together and also writes JSON when --format json is set.
//
// Example:
//
//	r := ui.NewRunner(ui.RunnerConfig{
//	    Title:   "WiFi connect",
//	    Command: "charmer-cfg wifi connect",
//	    Params:  []ui.Field{ui.F("Device", host)},
//	    Steps:   []string{"Save credentials", "Wait for device"},
//	})
//	err := r.Run(ctx, func(ctx context.Context, step ui.StepFunc) ([]ui.Field, error) {
//	    step(1, ui.StepRunning, "")
//	    // ...
//	    step(1, ui.StepComplete, "")
//	    return nil, nil
//	})
//
// Logging stays silent unless CHARMER_LOG_LEVEL or --log-level is set, so
// zap output does not interleave with these boxes.
package ui
