// Package state holds the panel's client state: the last known device data,
// the transient UI flags and the timers that belong to the running panel.
//
// A ClientState is owned by the Bubble Tea model and is only touched from its
// Update method, so it needs no locking. Async results carry the visit id that
// was current when their request was issued; IsCurrent tells the caller
// whether the result still applies.
package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/phonebook"
	"github.com/dial-a-charmer/charmer/internal/provisioning"
	"github.com/dial-a-charmer/charmer/internal/store"
	"github.com/dial-a-charmer/charmer/internal/timers"
)

// Poller ids.
const (
	LogPollerID   = "logs"
	ClockPollerID = "clock"
	PreviewID     = "preview"
)

// Options tunes the timers and buffers.
type Options struct {
	Language     i18n.Language
	LogPoll      time.Duration
	ClockPoll    time.Duration
	PreviewQuiet time.Duration
	LogTailLines int
}

// DefaultOptions matches the device web UI.
func DefaultOptions() Options {
	return Options{
		Language:     i18n.Default,
		LogPoll:      1500 * time.Millisecond,
		ClockPoll:    time.Second,
		PreviewQuiet: timers.DefaultQuiet,
		LogTailLines: 10,
	}
}

// NoticeLevel is the severity of a Notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// Notice is a dismissible message shown above the page.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// ClientState is the single in-memory state of a running panel.
type ClientState struct {
	Language  i18n.Language
	Status    *store.Status
	Settings  *store.Settings
	Phonebook *phonebook.Book
	Ringtones []string
	LogLines  []string
	ClockText string
	Setup     provisioning.Flow

	// Loading is true until the startup fetches completed.
	Loading bool
	// FatalErr is a startup failure; the panel shows only the error.
	FatalErr error
	Notice   *Notice

	LogPoller   *timers.Poller
	ClockPoller *timers.Poller
	Preview     *timers.Debouncer[string]

	logLimit        int
	visit           string
	phonebookVisit  string
	phonebookLoaded bool
}

// New creates the startup state.
func New(opts Options) *ClientState {
	if opts.LogTailLines <= 0 {
		opts.LogTailLines = 10
	}
	return &ClientState{
		Language:    opts.Language,
		Settings:    store.DefaultSettings(),
		Phonebook:   phonebook.NewBook(),
		Loading:     true,
		LogPoller:   timers.NewPoller(LogPollerID, opts.LogPoll),
		ClockPoller: timers.NewPoller(ClockPollerID, opts.ClockPoll),
		Preview:     timers.NewDebouncer[string](PreviewID, opts.PreviewQuiet),
		logLimit:    opts.LogTailLines,
		visit:       uuid.NewString(),
	}
}

// BeginVisit starts a new page visit and returns its id. Results tagged with
// an earlier visit are stale from now on.
func (s *ClientState) BeginVisit() string {
	s.visit = uuid.NewString()
	return s.visit
}

// Visit returns the current visit id.
func (s *ClientState) Visit() string {
	return s.visit
}

// IsCurrent reports whether visit is the current page visit.
func (s *ClientState) IsCurrent(visit string) bool {
	return visit == s.visit
}

// NeedsPhonebook reports whether the phonebook page should fetch: the book
// is empty and no fetch was issued during this visit.
func (s *ClientState) NeedsPhonebook() bool {
	return s.Phonebook.IsEmpty() && s.phonebookVisit != s.visit
}

// BeginPhonebookFetch marks a fetch as issued for the current visit and
// returns the visit id to tag it with. The book counts as not loaded until
// the result is applied.
func (s *ClientState) BeginPhonebookFetch() string {
	s.phonebookVisit = s.visit
	s.phonebookLoaded = false
	return s.visit
}

// PhonebookLoaded reports whether Phonebook holds what the device returned.
// A book that is still being fetched, or whose fetch failed, must not be
// saved: the save replaces the whole mapping on the device.
func (s *ClientState) PhonebookLoaded() bool {
	return s.phonebookLoaded
}

// ApplyPhonebook stores a fetched book if visit is still current.
func (s *ClientState) ApplyPhonebook(visit string, book *phonebook.Book) bool {
	if !s.IsCurrent(visit) {
		return false
	}
	if book == nil {
		book = phonebook.NewBook()
	}
	s.Phonebook = book
	s.phonebookLoaded = true
	return true
}

// ApplyLogLines replaces the log buffer with the last lines of a response.
func (s *ClientState) ApplyLogLines(lines []string) {
	if len(lines) > s.logLimit {
		lines = lines[len(lines)-s.logLimit:]
	}
	s.LogLines = append([]string(nil), lines...)
}

// LogLimit returns the log buffer capacity.
func (s *ClientState) LogLimit() int {
	return s.logLimit
}

// ApplySettingsPatch applies a save optimistically, before the device confirms.
func (s *ClientState) ApplySettingsPatch(p store.SettingsPatch) {
	s.Settings.Apply(p)
	if p.Language != nil {
		s.Language = i18n.Parse(*p.Language)
	}
}

// SetNotice shows a notice, replacing any current one.
func (s *ClientState) SetNotice(level NoticeLevel, text string) {
	s.Notice = &Notice{Level: level, Text: text}
}

// DismissNotice hides the current notice.
func (s *ClientState) DismissNotice() {
	s.Notice = nil
}

// StopTimers stops both pollers and drops a pending preview.
func (s *ClientState) StopTimers() {
	s.LogPoller.Stop()
	s.ClockPoller.Stop()
	s.Preview.Cancel()
}

// T translates key in the current language.
func (s *ClientState) T(key string) string {
	return i18n.T(s.Language, key)
}
