// Package simulator runs an in-memory Dial-A-Charmer that answers the
// device HTTP API.
//
// The simulator keeps settings, phonebook, ringtones and a 20 line log ring
// in memory and behaves like the firmware where clients can tell: alarm
// rules are merged by day, an empty SSID is ignored, saving a network moves
// the device from access-point to station mode, and preview requests for
// anything but a bare .wav name get a 404.
//
// Every handled API request is published on the websocket feed at
// /sim/events; Watch consumes it. Fail injects HTTP errors per path so
// clients can exercise their failure handling.
package simulator
