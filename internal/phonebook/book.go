package phonebook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry types known to the firmware.
const (
	TypeFunction = "FUNCTION"
	TypeTTS      = "TTS"
	TypeAudio    = "AUDIO"
)

// UnknownName is the placeholder name the firmware writes for unnamed entries.
const UnknownName = "Unknown"

// Entry is one dialable phonebook record.
type Entry struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Parameter string `json:"parameter"`
}

// HasName reports whether the entry carries a usable display name.
func (e Entry) HasName() bool {
	return e.Name != "" && e.Name != UnknownName
}

// Book is an insertion-ordered mapping from dial code to Entry.
// The zero value is an empty book ready to use.
type Book struct {
	keys    []string
	entries map[string]Entry
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{entries: make(map[string]Entry)}
}

// Len returns the number of entries.
func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// IsEmpty reports whether the book has no entries. A nil book is empty.
func (b *Book) IsEmpty() bool {
	return b.Len() == 0
}

// Keys returns the dial codes in insertion order.
func (b *Book) Keys() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Get returns the entry stored under key.
func (b *Book) Get(key string) (Entry, bool) {
	if b == nil {
		return Entry{}, false
	}
	e, ok := b.entries[key]
	return e, ok
}

// Set inserts or overwrites the entry under key. New keys are appended;
// existing keys keep their position.
func (b *Book) Set(key string, e Entry) {
	if b.entries == nil {
		b.entries = make(map[string]Entry)
	}
	if _, exists := b.entries[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.entries[key] = e
}

// Delete removes key from the book.
func (b *Book) Delete(key string) {
	if b == nil {
		return
	}
	if _, exists := b.entries[key]; !exists {
		return
	}
	delete(b.entries, key)
	for i, k := range b.keys {
		if k == key {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
}

// Each calls fn for every entry in insertion order until fn returns false.
func (b *Book) Each(fn func(key string, e Entry) bool) {
	if b == nil {
		return
	}
	for _, k := range b.keys {
		if !fn(k, b.entries[k]) {
			return
		}
	}
}

// Clone returns an independent copy of the book.
func (b *Book) Clone() *Book {
	out := NewBook()
	b.Each(func(k string, e Entry) bool {
		out.Set(k, e)
		return true
	})
	return out
}

// Equal reports whether both books hold the same set of entries,
// ignoring order.
func (b *Book) Equal(other *Book) bool {
	if b.Len() != other.Len() {
		return false
	}
	equal := true
	b.Each(func(k string, e Entry) bool {
		o, ok := other.Get(k)
		equal = ok && o == e
		return equal
	})
	return equal
}

// MarshalJSON encodes the book as a JSON object in insertion order.
func (b *Book) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b.entries[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping its key order. A JSON null
// decodes to an empty book. Duplicate keys keep the first position and the
// last value, like a JavaScript object literal.
func (b *Book) UnmarshalJSON(data []byte) error {
	*b = Book{entries: make(map[string]Entry)}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("phonebook: expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("phonebook: expected string key, got %v", tok)
		}
		var e Entry
		if err := dec.Decode(&e); err != nil {
			return fmt.Errorf("phonebook: entry %q: %w", key, err)
		}
		b.Set(key, e)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
