// Package provisioning decides at startup whether the device still needs its
// WiFi setup, and drives the scan, select and connect steps of the setup page.
//
// Evaluate runs once per panel start. A device in access-point mode, a panel
// talking to the hotspot address, or a settings snapshot without a network
// name all mean NeedsSetup; StartupRoute then replaces the current location
// with the setup page so that going back never lands on a stale page.
//
// The setup flow allows a single scan per panel run. A failed scan is
// terminal: the only way out is restarting the panel.
package provisioning
