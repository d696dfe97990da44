package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/phonebook"
	"github.com/dial-a-charmer/charmer/internal/ui"
)

var phonebookCmd = &cobra.Command{
	Use:   "phonebook",
	Short: "Show or change the dial codes of phone functions",
}

var phonebookShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show system functions and their dial codes",
	RunE:  runPhonebookShow,
}

var phonebookAssignCmd = &cobra.Command{
	Use:   "assign <function> <code>",
	Short: "Give a system function a new dial code",
	Long: `Give a system function a new dial code. Functions are named by the ids
shown in 'phonebook show' (p1..p6, time, gem, menu, tog, skip, reboot).

Entries you added yourself are kept. A code already used by another entry
is taken over by the function.`,
	Example: `  charmer-cfg phonebook assign reboot 998
  charmer-cfg phonebook assign time 8`,
	Args: cobra.ExactArgs(2),
	RunE: runPhonebookAssign,
}

var forceUnassign bool

var phonebookUnassignCmd = &cobra.Command{
	Use:   "unassign <function>",
	Short: "Remove the dial code of a system function",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhonebookUnassign,
}

func init() {
	phonebookUnassignCmd.Flags().BoolVar(&forceUnassign, "force", false, "Allow removing the reboot code")
	phonebookCmd.AddCommand(phonebookShowCmd, phonebookAssignCmd, phonebookUnassignCmd)
	rootCmd.AddCommand(phonebookCmd)
}

// loadBook fetches the phonebook and the language its default names use.
func loadBook(cmd *cobra.Command, s *session) (*phonebook.Book, i18n.Language, error) {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	settings, err := s.client.GetSettings(ctx)
	if err != nil {
		return nil, "", err
	}
	book, err := s.client.GetPhonebook(ctx)
	if err != nil {
		return nil, "", err
	}
	return book, displayLanguage(settings), nil
}

func runPhonebookShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	book, lang, err := loadBook(cmd, s)
	if err != nil {
		return err
	}
	if printer.JSON() {
		return printer.PrintJSON(book)
	}

	slots := phonebook.Catalog(lang)
	rows := phonebook.Display(slots, book)
	t := ui.NewTable("CODE", "ID", "NAME", "STATE")
	for _, r := range rows {
		state := "assigned"
		if !r.Assigned {
			state = "default"
		}
		t.AddRow(r.Key, r.Slot.ID, r.Name, state)
	}
	t.RowStyle = func(i int) lipgloss.Style {
		switch {
		case rows[i].Critical():
			return ui.TableCriticalStyle
		case !rows[i].Assigned:
			return ui.TableMutedStyle
		}
		return ui.TableCellStyle
	}
	printer.PrintTable(t)

	custom := phonebook.Custom(slots, book)
	if custom.IsEmpty() {
		return nil
	}
	printer.Newline()
	ct := ui.NewTable("CODE", "NAME", "TYPE", "VALUE")
	custom.Each(func(key string, e phonebook.Entry) bool {
		value := e.Value
		if e.Parameter != "" {
			value += " (" + e.Parameter + ")"
		}
		ct.AddRow(key, e.Name, e.Type, value)
		return true
	})
	printer.PrintTable(ct)
	return nil
}

func runPhonebookAssign(cmd *cobra.Command, args []string) error {
	code := strings.TrimSpace(args[1])
	if code == "" {
		return fmt.Errorf("dial code is empty, use 'phonebook unassign' to remove one")
	}
	return changeAssignment(cmd, args[0], code)
}

func runPhonebookUnassign(cmd *cobra.Command, args []string) error {
	return changeAssignment(cmd, args[0], "")
}

// changeAssignment sets the dial code of one slot and saves the book. The
// other slots keep their current codes.
func changeAssignment(cmd *cobra.Command, id, code string) error {
	if code != "" && !isDialCode(code) {
		return fmt.Errorf("dial code %q must be digits only", code)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	book, lang, err := loadBook(cmd, s)
	if err != nil {
		return err
	}

	slots := phonebook.Catalog(lang)
	slot, ok := phonebook.FindSlot(slots, id)
	if !ok {
		ids := make([]string, len(slots))
		for i, sl := range slots {
			ids[i] = sl.ID
		}
		return fmt.Errorf("unknown function %q (one of %s)", id, strings.Join(ids, ", "))
	}
	if code == "" && slot.Critical && !forceUnassign {
		return fmt.Errorf("%s keeps the phone recoverable, pass --force to remove its code", slot.DefaultName)
	}

	inputs := phonebook.Inputs(slots, book)
	inputs[slot.ID] = code
	updated := phonebook.Save(slots, book, inputs)

	ctx, cancel := requestContext(cmd)
	defer cancel()
	if err := s.client.SavePhonebook(ctx, updated); err != nil {
		return err
	}

	if printer.JSON() {
		return printer.PrintJSON(updated)
	}
	if code == "" {
		printer.PrintSuccess("Dial code removed", ui.F("Function", phonebook.ResolveName(book, slot)))
		return nil
	}
	printer.PrintSuccess("Dial code saved",
		ui.F("Function", phonebook.ResolveName(book, slot)),
		ui.F("Code", code),
	)
	return nil
}

func isDialCode(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
