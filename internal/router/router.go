// Package router maps panel locations to pages and keeps the navigation
// history.
package router

import "strings"

// PageID identifies one page of the panel.
type PageID string

const (
	Home          PageID = "home"
	Alarms        PageID = "alarms"
	Phonebook     PageID = "phonebook"
	Configuration PageID = "configuration"
	Setup         PageID = "setup"
	Unknown       PageID = "unknown"
)

// Canonical paths of each page.
const (
	PathHome          = "/"
	PathAlarms        = "/alarm"
	PathPhonebook     = "/phonebook"
	PathConfiguration = "/configuration"
	PathSetup         = "/setup"
)

var routes = map[string]PageID{
	PathHome:          Home,
	"/index.html":     Home,
	PathAlarms:        Alarms,
	"/settings":       Alarms,
	PathPhonebook:     Phonebook,
	PathConfiguration: Configuration,
	"/advanced":       Configuration,
	PathSetup:         Setup,
}

// Pages lists the navigable pages in menu order.
var Pages = []PageID{Home, Alarms, Phonebook, Configuration, Setup}

// Resolve maps a location path to a page. Query strings, fragments and a
// trailing slash are ignored. Unrecognized paths resolve to Unknown.
func Resolve(path string) PageID {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = PathHome
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if id, ok := routes[path]; ok {
		return id
	}
	return Unknown
}

// Page is Resolve with Unknown folded into Home.
func Page(path string) PageID {
	if id := Resolve(path); id != Unknown {
		return id
	}
	return Home
}

// Path returns the canonical path of a page.
func (p PageID) Path() string {
	switch p {
	case Alarms:
		return PathAlarms
	case Phonebook:
		return PathPhonebook
	case Configuration:
		return PathConfiguration
	case Setup:
		return PathSetup
	default:
		return PathHome
	}
}

// String returns the page id.
func (p PageID) String() string {
	return string(p)
}
