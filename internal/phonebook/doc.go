// Package phonebook maps the panel's fixed catalog of system functions onto
// the device's dial-code phonebook.
//
// The device stores its phonebook as a JSON object keyed by dial code. Most
// entries are created by the user (or by firmware defaults), but a fixed set
// of logical functions (persona announcements, time announcement, AI chat,
// voice admin menu, alarm toggles, reboot) are owned by the panel: each one is
// a SystemSlot identified by its (type, value, parameter) signature.
//
// # Display
//
// Display walks the catalog in order and, for each slot, scans the book in
// insertion order for the first entry with the slot's signature. Found
// entries contribute their dial code and, unless empty or "Unknown", their
// name. Unmatched slots show the slot's default dial code and name.
//
// First match wins. If several entries carry the same signature only the
// first is shown; the others stay invisible until the next Save drops them.
//
// # Save
//
// Save drops every entry that matches any slot signature, keeps every other
// entry untouched, then inserts one entry per slot whose input dial code is
// non-empty. Slots are inserted in catalog order with insert-or-overwrite
// semantics, so when two slots are given the same code the later slot wins.
//
// # Ordering
//
// Book preserves the key order of the JSON object it was decoded from and
// appends new keys at the end. Overwriting an existing key keeps its position.
package phonebook
