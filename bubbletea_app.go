// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"github.com/patrickmn/go-cache"

	"github.com/cybrota/ipdir/directory"
)

// BubbleTeaMode selects what the query box searches
type BubbleTeaMode int

const (
	ModeAlias BubbleTeaMode = iota
	ModeLocation
)

type formKind int

const (
	formNone formKind = iota
	formAdd
	formUpdate
	formDelete
)

// Model represents the Bubble Tea application state
type Model struct {
	mode  BubbleTeaMode
	ready bool

	queryInput     textinput.Model
	entriesList    list.Model
	detailViewport viewport.Model

	// Edit form shown over the query box
	form       formKind
	formInputs []textinput.Model
	formFocus  int
	formAlias  string

	// Data
	dir          *directory.Directory
	lookups      *cache.Cache
	mirror       EntryMirror
	errorLogPath string
	logger       hclog.Logger

	// State
	focusIndex    int // 0: query, 1: entries, 2: detail
	entries       []directory.Entry
	lastQuery     string
	status        string
	statusIsError bool
	showingLog    bool

	// Styling
	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	// Dimensions
	width  int
	height int
}

// Styles holds all the styling for the application
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	InputPrompt    lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// entryItem is one directory pair in the entries list
type entryItem struct {
	entry directory.Entry
}

func (i entryItem) FilterValue() string { return i.entry.Alias }
func (i entryItem) Title() string       { return i.entry.Alias }
func (i entryItem) Description() string { return i.entry.Address }

// mirrorResultMsg reports the outcome of a background PutEntry
type mirrorResultMsg struct {
	alias string
	err   error
}

// InitialModel creates the initial model
func InitialModel(d *directory.Directory, lookups *cache.Cache, errorLogPath string, logger hclog.Logger) Model {
	qi := textinput.New()
	qi.Placeholder = "Type an alias to search..."
	qi.Focus()
	qi.CharLimit = 64
	qi.Width = 40

	entriesList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	entriesList.SetShowTitle(false)
	entriesList.SetShowHelp(false)
	entriesList.SetFilteringEnabled(false)

	detailViewport := viewport.New(0, 0)
	detailViewport.SetContent("Select an alias to see its details...")

	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	m := Model{
		mode:            ModeAlias,
		queryInput:      qi,
		entriesList:     entriesList,
		detailViewport:  detailViewport,
		dir:             d,
		lookups:         lookups,
		errorLogPath:    errorLogPath,
		logger:          logger,
		styles:          NewStyles(),
		glamourRenderer: glamourRenderer,
	}
	m.refreshEntries()
	return m
}

// WithMirror mirrors pairs added from the form
func (m Model) WithMirror(mirror EntryMirror) Model {
	m.mirror = mirror
	return m
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all the I/O
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form != formNone {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)

	case mirrorResultMsg:
		if msg.err != nil {
			m.logger.Error("mirror failed", "alias", msg.alias, "error", msg.err)
			m.setStatus(fmt.Sprintf("Failed to mirror '%s': %v", msg.alias, msg.err), true)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
	}

	return m, nil
}

// updateBrowse handles keys while searching and navigating
func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "f2":
		m.toggleMode()
		return m, nil
	case "tab":
		m.focusIndex = (m.focusIndex + 1) % 3
		if m.focusIndex == 0 {
			m.queryInput.Focus()
		} else {
			m.queryInput.Blur()
		}
		return m, nil
	case "enter":
		if e, ok := m.selectedEntry(); ok {
			address := e.Address
			return m, func() tea.Msg {
				if err := copyToClipboard(address); err != nil {
					fmt.Fprintf(os.Stderr, "Failed to copy address: %v\n", err)
				}
				return tea.Quit()
			}
		}
		return m, nil
	case "ctrl+n":
		m.openForm(formAdd, "")
		return m, textinput.Blink
	case "ctrl+u":
		if e, ok := m.selectedEntry(); ok {
			m.openForm(formUpdate, e.Alias)
			return m, textinput.Blink
		}
		return m, nil
	case "ctrl+d":
		if e, ok := m.selectedEntry(); ok {
			m.openForm(formDelete, e.Alias)
		}
		return m, nil
	case "ctrl+l":
		m.toggleErrorLog()
		return m, nil
	case "up", "down", "pgup", "pgdown", "home", "end":
		if m.focusIndex == 2 {
			m.detailViewport, cmd = m.detailViewport.Update(msg)
			return m, cmd
		}
		if m.focusIndex == 1 {
			m.entriesList, cmd = m.entriesList.Update(msg)
			m.updateDetail()
			return m, cmd
		}
	}

	if m.focusIndex == 0 {
		m.queryInput, cmd = m.queryInput.Update(msg)
		if q := m.queryInput.Value(); q != m.lastQuery {
			m.lastQuery = q
			m.refreshEntries()
		}
	}
	return m, cmd
}

func (m *Model) toggleMode() {
	if m.mode == ModeAlias {
		m.mode = ModeLocation
		m.queryInput.Placeholder = "First two octets, e.g. 192.168"
	} else {
		m.mode = ModeAlias
		m.queryInput.Placeholder = "Type an alias to search..."
	}
	m.queryInput.SetValue("")
	m.lastQuery = ""
	m.refreshEntries()
}

func (m *Model) toggleErrorLog() {
	m.showingLog = !m.showingLog
	if !m.showingLog {
		m.updateDetail()
		return
	}

	var b strings.Builder
	if err := readErrorLog(m.errorLogPath, &b); err != nil {
		m.detailViewport.SetContent(err.Error())
		return
	}
	m.renderDetail("```\n" + b.String() + "```\n")
}

// refreshEntries reruns the query against the directory
func (m *Model) refreshEntries() {
	query := strings.TrimSpace(m.queryInput.Value())

	var entries []directory.Entry
	switch m.mode {
	case ModeAlias:
		query = directory.NormalizeAlias(query)
		m.dir.Traverse(func(e directory.Entry) bool {
			if strings.HasPrefix(e.Alias, query) {
				entries = append(entries, e)
			}
			return true
		})
	case ModeLocation:
		if query != "" {
			found, err := m.dir.RangeQuery(query)
			if err != nil {
				m.setStatus("Enter the first two octets of an IPv4 address (e.g., '192.168')", true)
			} else {
				m.setStatus(fmt.Sprintf("%d aliases for IPs starting with '%s'", len(found), query), false)
			}
			entries = found
		}
	}

	m.entries = entries
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	m.entriesList.SetItems(items)
	m.entriesList.Select(0)
	m.updateDetail()
}

func (m Model) selectedEntry() (directory.Entry, bool) {
	i := m.entriesList.Index()
	if i < 0 || i >= len(m.entries) {
		return directory.Entry{}, false
	}
	return m.entries[i], true
}

// updateDetail shows the selected entry, read through the lookup cache
func (m *Model) updateDetail() {
	if m.showingLog {
		return
	}
	selected, ok := m.selectedEntry()
	if !ok {
		m.detailViewport.SetContent("No matching aliases found.")
		return
	}
	e, ok := lookupAlias(m.lookups, m.dir, selected.Alias)
	if !ok {
		m.detailViewport.SetContent(fmt.Sprintf("Alias '%s' not found.", selected.Alias))
		return
	}
	m.renderDetail(entryMarkdown(e))
}

func (m *Model) renderDetail(md string) {
	if m.glamourRenderer != nil {
		if rendered, err := m.glamourRenderer.Render(md); err == nil {
			m.detailViewport.SetContent(rendered)
			return
		}
	}
	m.detailViewport.SetContent(md)
}

func entryMarkdown(e directory.Entry) string {
	parent := e.Parent
	if e.IsRoot() {
		parent = "None (Root Node)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Alias)
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| IP | `%s` |\n", e.Address)
	fmt.Fprintf(&b, "| Height | %d |\n", e.Height)
	fmt.Fprintf(&b, "| Depth | %d |\n", e.Depth)
	fmt.Fprintf(&b, "| Balance Factor | %d |\n", e.Balance)
	fmt.Fprintf(&b, "| Parent | %s |\n", parent)
	return b.String()
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusIsError = isError
}

// openForm swaps the query box for an edit form
func (m *Model) openForm(kind formKind, alias string) {
	m.form = kind
	m.formAlias = alias
	m.formFocus = 0
	m.queryInput.Blur()

	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 32
		ti.Width = 30
		return ti
	}

	switch kind {
	case formAdd:
		m.formInputs = []textinput.Model{
			newInput("IP address"),
			newInput(fmt.Sprintf("alias (max %d characters)", directory.MaxAliasLength)),
		}
	case formUpdate:
		m.formInputs = []textinput.Model{newInput("new IP address")}
	case formDelete:
		m.formInputs = nil
		return
	}
	m.formInputs[0].Focus()
}

func (m *Model) closeForm() {
	m.form = formNone
	m.formInputs = nil
	m.formAlias = ""
	m.focusIndex = 0
	m.queryInput.Focus()
}

// updateForm handles keys while an edit form is open
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		m.closeForm()
		m.setStatus("Canceled.", false)
		return m, nil
	}

	if m.form == formDelete {
		switch key {
		case "y", "Y":
			return m, m.submitForm()
		case "n", "N":
			m.closeForm()
			m.setStatus("Deletion canceled.", false)
		}
		return m, nil
	}

	switch key {
	case "tab", "down":
		m.focusFormInput(m.formFocus + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusFormInput(m.formFocus - 1)
		return m, nil
	case "enter":
		if m.formFocus < len(m.formInputs)-1 {
			m.focusFormInput(m.formFocus + 1)
			return m, nil
		}
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func (m *Model) focusFormInput(i int) {
	n := len(m.formInputs)
	m.formFocus = ((i % n) + n) % n
	for j := range m.formInputs {
		if j == m.formFocus {
			m.formInputs[j].Focus()
		} else {
			m.formInputs[j].Blur()
		}
	}
}

// submitForm applies the open form to the directory. A validation failure
// keeps the form open so the value can be corrected.
func (m *Model) submitForm() tea.Cmd {
	var cmd tea.Cmd
	var done string

	switch m.form {
	case formAdd:
		address := strings.TrimSpace(m.formInputs[0].Value())
		alias := directory.NormalizeAlias(strings.TrimSpace(m.formInputs[1].Value()))
		if err := m.dir.Add(address, alias); err != nil {
			m.setStatus(err.Error(), true)
			return nil
		}
		InvalidateEntry(m.lookups, alias)
		done = "Address added successfully."
		if m.mirror != nil {
			canonical, _ := directory.ParseAddress(address)
			mirror := m.mirror
			cmd = func() tea.Msg {
				return mirrorResultMsg{alias: alias, err: mirror.PutEntry(context.Background(), canonical, alias)}
			}
		}

	case formUpdate:
		address, err := directory.ParseAddress(strings.TrimSpace(m.formInputs[0].Value()))
		if err != nil {
			m.setStatus("Invalid IP address format. Please re-enter.", true)
			return nil
		}
		if err := m.dir.Update(m.formAlias, address); err != nil {
			m.setStatus(err.Error(), true)
			return nil
		}
		InvalidateEntry(m.lookups, m.formAlias)
		done = "IP address updated successfully."

	case formDelete:
		if err := m.dir.Delete(m.formAlias); err != nil {
			m.closeForm()
			m.setStatus(err.Error(), true)
			return nil
		}
		InvalidateEntry(m.lookups, m.formAlias)
		done = fmt.Sprintf("Alias '%s' deleted successfully.", m.formAlias)
	}

	m.closeForm()
	m.refreshEntries()
	m.setStatus(done, false)
	return cmd
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 30 || m.height < 10 {
		return "Terminal too small. Please resize your terminal."
	}

	inputHeight := 3
	listHeight := m.height - inputHeight - 8
	leftWidth := (m.width * 4 / 10) - 1
	rightWidth := m.width - leftWidth - 3

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderTopBox(leftWidth, inputHeight),
			m.renderEntriesBox(leftWidth, listHeight),
		),
		m.renderDetailBox(rightWidth, inputHeight+listHeight+2),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.renderStatus(),
		m.renderHelp(),
	)
}

func (m Model) borderFor(focused bool) lipgloss.Style {
	if focused {
		return m.styles.BorderFocused
	}
	return m.styles.BorderBlurred
}

func (m Model) renderTopBox(width, height int) string {
	if m.form != formNone {
		return m.renderFormBox(width, height)
	}

	title := " 🔍 Search Aliases "
	if m.mode == ModeLocation {
		title = " 📍 Aliases for Location "
	}
	return m.borderFor(m.focusIndex == 0).
		Width(width).
		Height(height).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(width-4).Render(title),
			m.queryInput.View(),
		))
}

func (m Model) renderFormBox(width, height int) string {
	var title string
	var rows []string
	switch m.form {
	case formAdd:
		title = " ➕ Add Address "
	case formUpdate:
		title = fmt.Sprintf(" ✏️  Update '%s' ", m.formAlias)
	case formDelete:
		title = " 🗑  Delete Address "
		rows = append(rows, m.styles.InputPrompt.Render(
			fmt.Sprintf("Are you sure you want to delete alias '%s'? (y/n)", m.formAlias)))
	}
	for _, in := range m.formInputs {
		rows = append(rows, in.View())
	}

	return m.styles.BorderFocused.
		Width(width).
		Height(height + len(m.formInputs) - 1).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			append([]string{m.styles.Title.Width(width - 4).Render(title)}, rows...)...,
		))
}

func (m Model) renderEntriesBox(width, height int) string {
	title := fmt.Sprintf(" 📋 Directory (%d of %d) ", len(m.entries), m.dir.Len())
	return m.borderFor(m.focusIndex == 1).
		Width(width).
		Height(height).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(width-4).Render(title),
			m.entriesList.View(),
		))
}

func (m Model) renderDetailBox(width, height int) string {
	title := " 📖 Details "
	if m.showingLog {
		title = " 🧾 Error Log "
	}
	return m.borderFor(m.focusIndex == 2).
		Width(width).
		Height(height).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(width-4).Render(title),
			m.detailViewport.View(),
		))
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	style := m.styles.SuccessMessage
	if m.statusIsError {
		style = m.styles.ErrorMessage
	}
	return lipgloss.NewStyle().Padding(0, 0, 0, 2).Render(style.Render(m.status))
}

// renderHelp renders the key help footer
func (m Model) renderHelp() string {
	keys := []string{"enter", "tab", "ctrl+n", "ctrl+u", "ctrl+d", "ctrl+l", "f2", "esc"}
	descs := []string{"copy IP", "switch focus", "add", "update", "delete", "error log", "location mode", "quit"}
	if m.mode == ModeLocation {
		descs[6] = "alias mode"
	}
	if m.form != formNone {
		keys = []string{"enter", "tab", "esc"}
		descs = []string{"submit", "next field", "cancel"}
		if m.form == formDelete {
			keys = []string{"y", "n"}
			descs = []string{"delete", "keep"}
		}
	}

	var helpEntries []string
	for i, key := range keys {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				m.styles.HelpKey.Render(key),
				m.styles.HelpDesc.Render(descs[i])))
	}

	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(strings.Join(helpEntries, " • "))
}

// updateLayout updates component dimensions
func (m *Model) updateLayout() {
	inputHeight := 3
	listHeight := m.height - inputHeight - 8
	leftWidth := (m.width * 4 / 10) - 1
	rightWidth := m.width - leftWidth - 3

	m.queryInput.Width = leftWidth - 4
	m.entriesList.SetSize(leftWidth-2, listHeight-2)
	m.detailViewport.Width = rightWidth - 2
	m.detailViewport.Height = inputHeight + listHeight
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "📋 Copied %s%s%s to clipboard.\n", Green, text, Reset)
	return nil
}

// runBubbleTeaApp starts the Bubble Tea application
func runBubbleTeaApp(model Model) error {
	InitializeColors()

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := program.Run()
	return err
}
