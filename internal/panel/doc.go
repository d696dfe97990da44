// Package panel is the terminal control panel of a Dial-A-Charmer device.
//
// The panel is a Bubble Tea program. AppModel.Update is the reducer: every
// key press, timer tick and device response arrives as a message, changes
// the client state and ends with a reconcile pass. Effects maps the current
// page and state to the side effects that pass performs (log and clock
// polling, the phonebook fetch, the WiFi scan), so rendering itself never
// touches the network. View is a pure function of the model.
//
// Requests are tagged with the page visit that issued them. A response that
// arrives after the user navigated away is discarded.
package panel
