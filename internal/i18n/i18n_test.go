package i18n

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		code string
		want Language
	}{
		{"de", German},
		{"en", English},
		{"en-US", English},
		{"de-AT", German},
		{"", German},
		{"not a tag!", German},
		{"fr", German},
	}

	for _, tt := range tests {
		if got := Parse(tt.code); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestT(t *testing.T) {
	if got := T(English, "pb"); got != "Phonebook" {
		t.Errorf("T(en, pb) = %q, want Phonebook", got)
	}
	if got := T(German, "pb"); got != "Telefonbuch" {
		t.Errorf("T(de, pb) = %q, want Telefonbuch", got)
	}
	if got := T(English, "no_such_key"); got != "no_such_key" {
		t.Errorf("T(en, no_such_key) = %q, want the key back", got)
	}
}

func TestTablesHaveSameKeys(t *testing.T) {
	for key := range german {
		if _, ok := english[key]; !ok {
			t.Errorf("key %q missing from english table", key)
		}
	}
	for key := range english {
		if _, ok := german[key]; !ok {
			t.Errorf("key %q missing from german table", key)
		}
	}
}

func TestDayName(t *testing.T) {
	if got := DayName(English, 0); got != "Sunday" {
		t.Errorf("DayName(en, 0) = %q, want Sunday", got)
	}
	if got := DayName(German, 1); got != "Montag" {
		t.Errorf("DayName(de, 1) = %q, want Montag", got)
	}
}

func TestOther(t *testing.T) {
	if German.Other() != English || English.Other() != German {
		t.Error("Other() should toggle between the two languages")
	}
}
