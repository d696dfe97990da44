package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/phonebook"
	"github.com/dial-a-charmer/charmer/internal/state"
)

const dialCodeLimit = 8

// phonebookPage is the slot table with one dial code input per slot. The
// inputs start with the slot's current assignment; an empty input leaves the
// slot unassigned on save.
type phonebookPage struct {
	slots   []phonebook.SystemSlot
	rows    []phonebook.Row
	inputs  []textinput.Model
	cursor  int
	editing bool
}

func newPhonebookPage(lang i18n.Language, book *phonebook.Book) phonebookPage {
	slots := phonebook.Catalog(lang)
	rows := phonebook.Display(slots, book)

	inputs := make([]textinput.Model, len(rows))
	for i, row := range rows {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = row.Slot.DefaultKey
		ti.CharLimit = dialCodeLimit
		ti.Width = dialCodeLimit
		ti.SetValue(row.AssignedKey)
		inputs[i] = ti
	}

	return phonebookPage{slots: slots, rows: rows, inputs: inputs}
}

// values returns the inputs keyed by slot id.
func (p phonebookPage) values() map[string]string {
	out := make(map[string]string, len(p.slots))
	for i, slot := range p.slots {
		out[slot.ID] = p.inputs[i].Value()
	}
	return out
}

func (m AppModel) updatePhonebook(msg tea.KeyMsg) (AppModel, tea.Cmd) {
	k := m.keys.Phonebook
	p := &m.book
	if len(p.inputs) == 0 {
		return m, nil
	}
	if !m.state.PhonebookLoaded() && (key.Matches(msg, k.Save) || key.Matches(msg, k.Edit)) {
		m.state.SetNotice(state.NoticeError, m.state.T("book_not_loaded"))
		return m, nil
	}

	if key.Matches(msg, k.Save) {
		p.inputs[p.cursor].Blur()
		p.editing = false
		return m, m.savePhonebook()
	}

	if p.editing {
		if key.Matches(msg, k.Done) {
			p.inputs[p.cursor].Blur()
			p.editing = false
			return m, nil
		}
		var cmd tea.Cmd
		p.inputs[p.cursor], cmd = p.inputs[p.cursor].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, k.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, k.Down):
		if p.cursor < len(p.inputs)-1 {
			p.cursor++
		}
	case key.Matches(msg, k.Edit):
		p.editing = true
		return m, p.inputs[p.cursor].Focus()
	}
	return m, nil
}

// savePhonebook merges the slot inputs into the book the form was built
// from and sends the result.
func (m AppModel) savePhonebook() tea.Cmd {
	book := phonebook.Save(m.book.slots, m.state.Phonebook, m.book.values())
	m.state.SetNotice(state.NoticeInfo, m.state.T("saving"))
	return savePhonebookCmd(m.api, book)
}

func (m AppModel) viewPhonebook() string {
	var b strings.Builder
	p := m.book

	header := fmt.Sprintf("  %-*s  %s", dialCodeLimit+1, "☎ "+m.state.T("number"), m.state.T("name"))
	b.WriteString(LabelStyle.Render(header))
	b.WriteString("\n")

	for i, row := range p.rows {
		code := p.inputs[i].View()
		name := row.Name
		if row.Critical() {
			name = CriticalStyle.Render(name)
		}
		if !row.Assigned {
			name += " " + DisabledStyle.Render("("+m.state.T("unassigned")+")")
		}
		cell := lipgloss.NewStyle().Width(dialCodeLimit + 1).Render(code)
		b.WriteString(RenderMenuItem(cell+"  "+name, i == p.cursor))
		b.WriteString("\n")
	}

	if custom := phonebook.Custom(p.slots, m.state.Phonebook); custom.Len() > 0 {
		b.WriteString("\n")
		custom.Each(func(k string, e phonebook.Entry) bool {
			b.WriteString(MenuItemStyle.Render(DisabledStyle.Render(fmt.Sprintf("  %-*s  %s", dialCodeLimit+1, k, e.Name))))
			b.WriteString("\n")
			return true
		})
	}
	return b.String()
}
