// Package config manages the client configuration file of the Dial-A-Charmer
// tools.
//
// The YAML file remembers the devices the tools talked to (keyed by host,
// with nickname, last address and mode) and the preferences the control
// panel starts with: default device, language, preview debounce, poll
// intervals and log tail length. Command line flags override preferences.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/dial-a-charmer/config.yaml or $HOME/.config/dial-a-charmer/config.yaml
//   - macOS: $HOME/.config/dial-a-charmer/config.yaml
//   - Windows: %LOCALAPPDATA%\dial-a-charmer\config.yaml
//
// CHARMER_CONFIG overrides the location.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//	host := registry.ResolveDevice(flagDevice, "dial-a-charmer.local")
//	registry.UpdateDeviceLastSeen(host, "", "sta")
//	if err := registry.Save(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File writes are serialized by a mutex and replace the file atomically.
package config
