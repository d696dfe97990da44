package store

// Timezone is a named POSIX TZ string the device accepts.
type Timezone struct {
	Name  string
	Value string
}

var timezones = []Timezone{
	{Name: "Europe/Berlin", Value: "CET-1CEST,M3.5.0,M10.5.0/3"},
	{Name: "Europe/London", Value: "GMT0BST,M3.5.0/1,M10.5.0"},
	{Name: "Europe/Paris", Value: "CET-1CEST,M3.5.0,M10.5.0/3"},
	{Name: "US/Eastern (New York)", Value: "EST5EDT,M3.2.0,M11.1.0"},
	{Name: "US/Pacific (California)", Value: "PST8PDT,M3.2.0,M11.1.0"},
	{Name: "US/Central", Value: "CST6CDT,M3.2.0,M11.1.0"},
	{Name: "UTC", Value: "UTC0"},
	{Name: "Asia/Tokyo", Value: "JST-9"},
	{Name: "Australia/Sydney", Value: "AEST-10AEDT,M10.1.0,M4.1.0/3"},
}

// Timezones returns the selectable timezones in menu order.
func Timezones() []Timezone {
	out := make([]Timezone, len(timezones))
	copy(out, timezones)
	return out
}

// TimezoneIndex returns the first catalog index whose TZ string is value, or -1.
func TimezoneIndex(value string) int {
	for i, tz := range timezones {
		if tz.Value == value {
			return i
		}
	}
	return -1
}

// LookupTimezone resolves a catalog name (case-sensitive) or a raw TZ
// string from the catalog.
func LookupTimezone(nameOrValue string) (Timezone, bool) {
	for _, tz := range timezones {
		if tz.Name == nameOrValue || tz.Value == nameOrValue {
			return tz, true
		}
	}
	return Timezone{}, false
}
