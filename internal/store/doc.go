// Package store is the typed client for the Dial-A-Charmer device HTTP API.
//
// The device is the single source of truth for settings, alarms, the
// phonebook, ringtones, the log tail and the clock. Every Client method issues
// exactly one request and returns parsed data or a *TransportError. The client
// never retries and never caches; callers decide what to do with a failure.
//
// # Settings
//
// GET /api/settings is decoded into a typed Settings value. Missing or
// malformed fields fall back to firmware defaults and are recorded as gaps
// (see Settings.Gaps) rather than reported as errors. Fields the client does
// not know are kept in Settings.Extra for display and are never sent back.
//
// Saves are partial: a SettingsPatch carries only the fields that changed, so
// the device applies last-writer-wins per field.
//
//	client := store.NewClient("dial-a-charmer.local", 80)
//	vol := 75
//	err := client.SaveSettings(ctx, store.SettingsPatch{Volume: &vol})
//
// # Error Handling
//
// Network failures are classified (timeout, connection refused, DNS) the same
// way for every operation. Non-2xx responses become KindHTTP errors and bodies
// that do not decode become KindParse errors. Use ShortMessage and
// TroubleshootingHint to present them.
package store
