package phonebook

import "strings"

// Row is one line of the reconciled phonebook table.
type Row struct {
	Slot SystemSlot

	// Key is the dial code shown for the slot: the matched entry's key,
	// or the slot's default key when nothing matches.
	Key string

	// Name is the matched entry's name, or the slot default.
	Name string

	// Assigned is true when an entry in the book matched the slot.
	Assigned bool

	// AssignedKey is the matched key, empty when unassigned.
	AssignedKey string
}

// Critical reports whether the row needs distinct presentation.
func (r Row) Critical() bool {
	return r.Slot.Critical
}

// Lookup returns the first entry in book, in insertion order, matching slot.
func Lookup(book *Book, slot SystemSlot) (key string, e Entry, ok bool) {
	book.Each(func(k string, candidate Entry) bool {
		if slot.Matches(candidate) {
			key, e, ok = k, candidate, true
			return false
		}
		return true
	})
	return key, e, ok
}

// ResolveName returns the display name for slot: the first matching entry's
// name when usable, otherwise the slot's default name.
func ResolveName(book *Book, slot SystemSlot) string {
	if _, e, ok := Lookup(book, slot); ok && e.HasName() {
		return e.Name
	}
	return slot.DefaultName
}

// Display produces exactly one row per slot, in catalog order.
func Display(slots []SystemSlot, book *Book) []Row {
	rows := make([]Row, 0, len(slots))
	for _, slot := range slots {
		row := Row{Slot: slot, Key: slot.DefaultKey, Name: slot.DefaultName}
		if key, e, ok := Lookup(book, slot); ok {
			row.Key = key
			row.Assigned = true
			row.AssignedKey = key
			if e.HasName() {
				row.Name = e.Name
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// IsSystemEntry reports whether e matches any slot signature.
func IsSystemEntry(slots []SystemSlot, e Entry) bool {
	for _, slot := range slots {
		if slot.Matches(e) {
			return true
		}
	}
	return false
}

// Save merges the slot assignments in inputs (slot id -> dial code) into a
// copy of book and returns the payload to send to the device. book itself is
// not modified.
//
// Entries matching any slot are dropped. Every other entry is kept as is.
// Then, in catalog order, each slot with a non-empty trimmed input is
// inserted under that code; a later slot overwrites an earlier one given
// the same code.
func Save(slots []SystemSlot, book *Book, inputs map[string]string) *Book {
	out := Custom(slots, book)
	for _, slot := range slots {
		newKey := strings.TrimSpace(inputs[slot.ID])
		if newKey == "" {
			continue
		}
		out.Set(newKey, slot.Entry(ResolveName(book, slot)))
	}
	return out
}

// Inputs returns the current assignment of every slot as a Save input map:
// the matched key for assigned slots and "" for unassigned ones.
func Inputs(slots []SystemSlot, book *Book) map[string]string {
	inputs := make(map[string]string, len(slots))
	for _, row := range Display(slots, book) {
		inputs[row.Slot.ID] = row.AssignedKey
	}
	return inputs
}

// Custom returns the entries that do not belong to any slot, in order.
func Custom(slots []SystemSlot, book *Book) *Book {
	out := NewBook()
	book.Each(func(k string, e Entry) bool {
		if !IsSystemEntry(slots, e) {
			out.Set(k, e)
		}
		return true
	})
	return out
}
