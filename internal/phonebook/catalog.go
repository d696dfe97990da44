package phonebook

import "github.com/dial-a-charmer/charmer/internal/i18n"

// SystemSlot is a panel-owned logical function that can be assigned a dial code.
type SystemSlot struct {
	ID          string
	Type        string
	Value       string
	Parameter   string
	DefaultName string
	DefaultKey  string
	Critical    bool
}

// Matches reports whether e carries the slot's signature. Parameters are
// compared after treating a missing parameter as the empty string.
func (s SystemSlot) Matches(e Entry) bool {
	return e.Type == s.Type && e.Value == s.Value && e.Parameter == s.Parameter
}

// Entry builds the phonebook entry for the slot with the given name.
func (s SystemSlot) Entry(name string) Entry {
	return Entry{Name: name, Type: s.Type, Value: s.Value, Parameter: s.Parameter}
}

// Catalog returns the fixed, ordered list of system slots with default names
// in lang.
func Catalog(lang i18n.Language) []SystemSlot {
	return []SystemSlot{
		{ID: "p1", Type: TypeFunction, Value: "COMPLIMENT_CAT", Parameter: "1", DefaultName: "Persona 1 (Default)", DefaultKey: "1"},
		{ID: "p2", Type: TypeFunction, Value: "COMPLIMENT_CAT", Parameter: "2", DefaultName: "Persona 2 (Joke)", DefaultKey: "2"},
		{ID: "p3", Type: TypeFunction, Value: "COMPLIMENT_CAT", Parameter: "3", DefaultName: "Persona 3 (SciFi)", DefaultKey: "3"},
		{ID: "p4", Type: TypeFunction, Value: "COMPLIMENT_CAT", Parameter: "4", DefaultName: "Persona 4 (Captain)", DefaultKey: "4"},
		{ID: "p5", Type: TypeFunction, Value: "COMPLIMENT_CAT", Parameter: "5", DefaultName: "Persona 5", DefaultKey: "5"},
		{ID: "p6", Type: TypeFunction, Value: "COMPLIMENT_MIX", Parameter: "0", DefaultName: "Random Mix (Surprise)", DefaultKey: "11"},
		{ID: "time", Type: TypeFunction, Value: "ANNOUNCE_TIME", DefaultName: i18n.T(lang, "slot_time"), DefaultKey: "110"},
		{ID: "gem", Type: TypeFunction, Value: "GEMINI_CHAT", DefaultName: "Gemini AI", DefaultKey: "000"},
		{ID: "menu", Type: TypeFunction, Value: "VOICE_MENU", DefaultName: i18n.T(lang, "slot_menu"), DefaultKey: "900"},
		{ID: "tog", Type: TypeFunction, Value: "TOGGLE_ALARMS", DefaultName: i18n.T(lang, "slot_toggle"), DefaultKey: "910"},
		{ID: "skip", Type: TypeFunction, Value: "SKIP_NEXT_ALARM", DefaultName: i18n.T(lang, "slot_skip"), DefaultKey: "911"},
		{ID: "reboot", Type: TypeFunction, Value: "REBOOT", DefaultName: i18n.T(lang, "slot_reboot"), DefaultKey: "999", Critical: true},
	}
}

// FindSlot returns the slot with the given id.
func FindSlot(slots []SystemSlot, id string) (SystemSlot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return SystemSlot{}, false
}
