package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dial-a-charmer/charmer/internal/logging"
)

// VerifyOptions controls how SaveAndVerify reads settings back.
type VerifyOptions struct {
	// Retries is the number of extra reads after the first mismatch.
	Retries int
	// Delay is the wait before the first read and between reads. It doubles
	// after every read, up to MaxDelay.
	Delay    time.Duration
	MaxDelay time.Duration
}

// DefaultVerifyOptions gives the firmware half a second to persist, then
// retries twice.
func DefaultVerifyOptions() VerifyOptions {
	return VerifyOptions{Retries: 2, Delay: 500 * time.Millisecond, MaxDelay: 2 * time.Second}
}

// Verification is the outcome of reading saved settings back.
type Verification struct {
	Attempts   int
	Mismatches []string
	Settings   *Settings
}

// OK reports whether the device reported every saved value.
func (v *Verification) OK() bool {
	return v != nil && v.Settings != nil && len(v.Mismatches) == 0
}

// Summary joins the mismatches into one line.
func (v *Verification) Summary() string {
	if len(v.Mismatches) == 0 {
		return "none"
	}
	return strings.Join(v.Mismatches, "; ")
}

// SaveAndVerify saves p and then reads the settings back until the device
// reports every patched value or the retries run out. A failed save is
// returned as the error; a read-back that never matches is not an error and
// shows in the Verification.
func (c *Client) SaveAndVerify(ctx context.Context, p SettingsPatch, opts VerifyOptions) (*Verification, error) {
	if err := c.SaveSettings(ctx, p); err != nil {
		return nil, err
	}

	v := &Verification{}
	delay := opts.Delay
	var lastErr error
	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if err := sleepCtx(ctx, delay); err != nil {
			return v, err
		}
		delay *= 2
		if opts.MaxDelay > 0 && delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}

		v.Attempts++
		got, err := c.GetSettings(ctx)
		if err != nil {
			lastErr = err
			logging.Debug("Settings read-back failed", zap.Int("attempt", v.Attempts), zap.Error(err))
			continue
		}
		v.Settings = got
		v.Mismatches = Mismatches(p, got)
		if len(v.Mismatches) == 0 {
			return v, nil
		}
		logging.Debug("Settings read-back differs",
			zap.Int("attempt", v.Attempts),
			zap.Strings("mismatches", v.Mismatches))
	}
	if v.Settings == nil {
		return v, lastErr
	}
	return v, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Mismatches compares the fields present in p with what got reports. The
// WiFi password is skipped; alarm rules are compared per day since the
// device merges them into its week.
func Mismatches(p SettingsPatch, got *Settings) []string {
	want := got.Clone()
	want.Apply(p)

	wantFields, err := wireFields(want)
	if err != nil {
		return []string{err.Error()}
	}
	gotFields, err := wireFields(got)
	if err != nil {
		return []string{err.Error()}
	}

	var out []string
	for _, f := range p.Fields() {
		switch f {
		case FieldWifiPass:
			continue
		case FieldAlarms:
			for _, rule := range p.Alarms {
				have, ok := got.AlarmFor(rule.Day)
				switch {
				case !ok:
					out = append(out, fmt.Sprintf("alarm day %d: missing", rule.Day))
				case have != rule:
					out = append(out, fmt.Sprintf("alarm day %d: expected %s, got %s", rule.Day, describeRule(rule), describeRule(have)))
				}
			}
		default:
			if !bytes.Equal(wantFields[f], gotFields[f]) {
				out = append(out, fmt.Sprintf("%s: expected %s, got %s", f, wantFields[f], gotFields[f]))
			}
		}
	}
	return out
}

func wireFields(s *Settings) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	return m, json.Unmarshal(data, &m)
}

func describeRule(r AlarmRule) string {
	state := "off"
	if r.Enabled {
		state = "on"
	}
	return fmt.Sprintf("%s %s %s", r.Clock(), state, r.SoundOrDefault())
}
