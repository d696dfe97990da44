package state

import (
	"fmt"
	"testing"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/phonebook"
	"github.com/dial-a-charmer/charmer/internal/store"
)

func TestNew_Defaults(t *testing.T) {
	s := New(DefaultOptions())

	if !s.Loading || s.FatalErr != nil {
		t.Error("new state should be loading without error")
	}
	if s.Language != i18n.German {
		t.Errorf("Language = %s", s.Language)
	}
	if !s.Phonebook.IsEmpty() || s.Settings == nil {
		t.Error("new state should have an empty book and default settings")
	}
	if s.LogPoller.Running() || s.ClockPoller.Running() {
		t.Error("pollers should start stopped")
	}
	if s.LogLimit() != 10 {
		t.Errorf("LogLimit() = %d", s.LogLimit())
	}
}

func TestVisits(t *testing.T) {
	s := New(DefaultOptions())
	old := s.Visit()
	next := s.BeginVisit()

	if old == next {
		t.Fatal("BeginVisit should produce a fresh id")
	}
	if s.IsCurrent(old) || !s.IsCurrent(next) {
		t.Error("IsCurrent mismatch")
	}
}

func TestPhonebookFetchGuard(t *testing.T) {
	s := New(DefaultOptions())
	s.BeginVisit()

	if !s.NeedsPhonebook() {
		t.Fatal("empty book should need a fetch")
	}
	visit := s.BeginPhonebookFetch()
	if s.NeedsPhonebook() {
		t.Error("fetch in flight: no second fetch in the same visit")
	}
	if s.PhonebookLoaded() {
		t.Error("book reported loaded while the fetch is in flight")
	}

	book := phonebook.NewBook()
	if !s.ApplyPhonebook(visit, book) {
		t.Error("current result should apply")
	}
	if !s.PhonebookLoaded() {
		t.Error("applied book not reported loaded")
	}
	if s.NeedsPhonebook() {
		t.Error("device returned an empty book: no refetch in the same visit")
	}

	s.BeginVisit()
	if !s.NeedsPhonebook() {
		t.Error("a new visit with an empty book should fetch again")
	}
}

func TestApplyPhonebook_StaleDiscarded(t *testing.T) {
	s := New(DefaultOptions())
	visit := s.BeginPhonebookFetch()
	s.BeginVisit()

	book := phonebook.NewBook()
	book.Set("1", phonebook.Entry{Name: "x"})
	if s.ApplyPhonebook(visit, book) {
		t.Error("stale result must not apply")
	}
	if !s.Phonebook.IsEmpty() {
		t.Error("stale result changed the book")
	}
}

func TestApplyLogLines_KeepsTail(t *testing.T) {
	s := New(Options{LogTailLines: 3})
	var lines []string
	for i := 0; i < 8; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}

	s.ApplyLogLines(lines)
	if len(s.LogLines) != 3 || s.LogLines[0] != "line 5" || s.LogLines[2] != "line 7" {
		t.Errorf("LogLines = %v", s.LogLines)
	}

	lines[7] = "mutated"
	if s.LogLines[2] != "line 7" {
		t.Error("LogLines shares memory with the response")
	}

	s.ApplyLogLines(nil)
	if len(s.LogLines) != 0 {
		t.Errorf("empty response should clear the buffer, got %v", s.LogLines)
	}
}

func TestApplySettingsPatch(t *testing.T) {
	s := New(DefaultOptions())
	s.ApplySettingsPatch(store.SettingsPatch{Language: store.Ptr("en"), Volume: store.Ptr(80)})

	if s.Language != i18n.English || s.Settings.Language != "en" || s.Settings.Volume != 80 {
		t.Errorf("patch not applied: lang=%s settings=%v", s.Language, s.Settings)
	}
}

func TestNotice(t *testing.T) {
	s := New(DefaultOptions())
	s.SetNotice(NoticeError, "save failed")
	if s.Notice == nil || s.Notice.Level != NoticeError {
		t.Fatalf("Notice = %+v", s.Notice)
	}
	s.DismissNotice()
	if s.Notice != nil {
		t.Error("DismissNotice should clear the notice")
	}
}

func TestStopTimers(t *testing.T) {
	s := New(DefaultOptions())
	_ = s.LogPoller.Start()
	_ = s.ClockPoller.Start()
	_ = s.Preview.Request("a.wav")

	s.StopTimers()
	if s.LogPoller.Running() || s.ClockPoller.Running() || s.Preview.Pending() {
		t.Error("StopTimers left something running")
	}
}
