package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/meur/cs2hub/internal/admin"
	"github.com/meur/cs2hub/internal/browser"
	"github.com/meur/cs2hub/internal/catalogue"
	"github.com/meur/cs2hub/internal/models"
)

// toastFadeDelay is how long a toast stays in the status bar.
const toastFadeDelay = 4 * time.Second

// loadedMsg is sent when a catalogue refresh completes. On failure the
// manager has already raised a toast and items is nil.
type loadedMsg struct {
	items []models.Skin
	err   error
}

// submitResultMsg is sent when the dialog's create or update completes.
type submitResultMsg struct {
	err error
}

// deleteResultMsg is sent when a delete completes or is declined.
type deleteResultMsg struct {
	err error
}

// toastFadeMsg clears the toast it was scheduled for. A newer toast
// carries a newer sequence number and survives older fade ticks.
type toastFadeMsg struct {
	sequence int
}

// Model is the top-level bubbletea model for the admin screen.
type Model struct {
	session *admin.Session
	bridge  *Bridge
	keys    KeyMap
	theme   Theme

	width  int
	height int

	// Mirror snapshot and the rows currently shown after filtering.
	items   []models.Skin
	visible []models.Skin
	cursor  int
	loading bool

	// Filter input (activated by /).
	filtering bool
	filter    []rune

	// Dialog buffer. Meaningful only while the session is not Closed.
	form form

	// Pending confirmation raised by the manager, nil when none.
	prompt *confirmMsg
	// deleting is set while a delete command is running.
	deleting bool

	toast         *catalogue.Toast
	toastSequence int
}

// NewModel creates the admin screen. bridge must be the Notifier and
// Confirmer of the catalogue behind session.
func NewModel(session *admin.Session, bridge *Bridge) Model {
	return Model{
		session: session,
		bridge:  bridge,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
		loading: true,
	}
}

// Init loads the catalogue and starts listening to the bridge.
func (model Model) Init() tea.Cmd {
	return tea.Batch(model.load(), model.bridge.wait())
}

func (model Model) load() tea.Cmd {
	session := model.session
	return func() tea.Msg {
		items, err := session.Refresh(context.Background())
		return loadedMsg{items: items, err: err}
	}
}

// Update handles messages from the bubbletea runtime.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height

	case loadedMsg:
		model.loading = false
		if message.err == nil {
			model.setItems(message.items)
		}

	case submitResultMsg:
		model.session.Finish(message.err)
		if message.err != nil {
			log.Debug().Err(message.err).Msg("tui: submit failed")
		}
		model.setItems(model.session.Items())

	case deleteResultMsg:
		model.deleting = false
		if message.err != nil && !errors.Is(message.err, catalogue.ErrDeclined) {
			log.Debug().Err(message.err).Msg("tui: delete failed")
		}
		model.setItems(model.session.Items())

	case toastMsg:
		return model.showToast(message.toast, model.bridge.wait())

	case confirmMsg:
		if model.prompt != nil {
			model.prompt.answer <- false
		}
		model.prompt = &message
		return model, model.bridge.wait()

	case toastFadeMsg:
		if message.sequence == model.toastSequence {
			model.toast = nil
		}
	}
	return model, nil
}

func (model Model) showToast(toast catalogue.Toast, next tea.Cmd) (tea.Model, tea.Cmd) {
	model.toastSequence++
	model.toast = &toast
	sequence := model.toastSequence
	fade := tea.Tick(toastFadeDelay, func(time.Time) tea.Msg {
		return toastFadeMsg{sequence: sequence}
	})
	return model, tea.Batch(next, fade)
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}
	if model.prompt != nil {
		return model.handlePromptKeys(message)
	}

	state, _ := model.session.State()
	switch {
	case state == admin.Submitting:
		return model, nil
	case state == admin.Editing:
		return model.handleFormKeys(message)
	case model.filtering:
		return model.handleFilterKeys(message)
	default:
		return model.handleListKeys(message)
	}
}

// handlePromptKeys answers the pending confirmation. Any key other
// than yes or no is ignored so a stray keystroke cannot delete.
func (model Model) handlePromptKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Yes):
		model.prompt.answer <- true
		model.prompt = nil
	case key.Matches(message, model.keys.No):
		model.prompt.answer <- false
		model.prompt = nil
	}
	return model, nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.visible)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.Add):
		if err := model.session.OpenAdd(); err == nil {
			model.form = newForm(model.session.Draft())
		}

	case key.Matches(message, model.keys.Edit):
		selected, ok := model.selected()
		if !ok {
			return model, nil
		}
		if err := model.session.OpenEdit(selected.ID); err == nil {
			model.form = newForm(model.session.Draft())
		}

	case key.Matches(message, model.keys.Delete):
		selected, ok := model.selected()
		if !ok || model.deleting {
			return model, nil
		}
		model.deleting = true
		session, id := model.session, selected.ID
		return model, func() tea.Msg {
			return deleteResultMsg{err: session.Delete(context.Background(), id)}
		}

	case key.Matches(message, model.keys.Refresh):
		model.loading = true
		return model, model.load()

	case key.Matches(message, model.keys.Filter):
		model.filtering = true
	}
	return model, nil
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyEsc:
		model.filtering = false
		model.filter = nil
	case message.Type == tea.KeyEnter:
		model.filtering = false
	case message.Type == tea.KeyBackspace:
		if len(model.filter) > 0 {
			model.filter = model.filter[:len(model.filter)-1]
		}
	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		model.filter = append(model.filter, message.Runes...)
	}
	model.applyFilter()
	return model, nil
}

// handleFormKeys edits the dialog. Printable keys go into the focused
// field, so q types a q here rather than quitting.
func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		if err := model.session.Cancel(); err == nil {
			model.form = form{}
		}

	case key.Matches(message, model.keys.Submit):
		return model.submit()

	case key.Matches(message, model.keys.NextField):
		model.form.next()

	case key.Matches(message, model.keys.PrevField):
		model.form.prev()

	case model.form.onChoice() && key.Matches(message, model.keys.CycleValue):
		model.form.cycle()

	case message.Type == tea.KeyBackspace:
		model.form.backspace()

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		model.form.insert(message.Runes)
	}
	return model, nil
}

// submit copies the form into the session draft and starts the request.
// A form that does not parse never leaves Editing.
func (model Model) submit() (tea.Model, tea.Cmd) {
	draft, err := model.form.draft()
	if err != nil {
		return model.showToast(catalogue.Toast{
			Title:       "Error",
			Description: err.Error(),
			Destructive: true,
		}, nil)
	}
	if err := model.session.SetDraft(func(d *models.SkinDraft) { *d = draft }); err != nil {
		return model, nil
	}
	operation, err := model.session.Begin()
	if err != nil {
		return model, nil
	}
	return model, func() tea.Msg {
		return submitResultMsg{err: operation(context.Background())}
	}
}

func (model *Model) setItems(items []models.Skin) {
	model.items = items
	model.applyFilter()
}

func (model *Model) applyFilter() {
	model.visible = browser.SearchSkins(model.items, string(model.filter))
	if model.cursor >= len(model.visible) {
		model.cursor = len(model.visible) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

func (model Model) selected() (models.Skin, bool) {
	if model.cursor < 0 || model.cursor >= len(model.visible) {
		return models.Skin{}, false
	}
	return model.visible[model.cursor], true
}

// View renders the screen.
func (model Model) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	b.WriteString(header.Render("CS2 Hub · Skin catalogue"))
	b.WriteString("\n")
	if model.filtering || len(model.filter) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).
			Render("filter: " + string(model.filter)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(model.renderList())

	if state, mode := model.session.State(); state != admin.Closed {
		b.WriteString("\n")
		b.WriteString(model.renderForm(state, mode))
	}

	b.WriteString("\n")
	b.WriteString(model.renderStatusBar())
	return b.String()
}

func (model Model) renderList() string {
	if model.loading && len(model.items) == 0 {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Loading skins...") + "\n"
	}
	if len(model.visible) == 0 {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No skins found") + "\n"
	}

	var b strings.Builder
	for i, skin := range model.visible {
		rarity := lipgloss.NewStyle().Foreground(model.theme.RarityColor(skin.Rarity)).
			Render(fmt.Sprintf("%-11s", skin.Rarity))
		row := fmt.Sprintf("%-32s %-10s %s %10d  %s", skin.Name, skin.Weapon, rarity, skin.Price, skin.OwnerName)

		style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		if i == model.cursor {
			style = style.Background(model.theme.SelectedBackground).Foreground(model.theme.SelectedForeground)
			row = "> " + row
		} else {
			row = "  " + row
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}

func (model Model) renderForm(state admin.State, mode admin.Mode) string {
	title := "Add skin"
	if mode == admin.Edit {
		title = "Edit skin"
	}
	if state == admin.Submitting {
		title += " (saving...)"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n")
	for i := 0; i < fieldCount; i++ {
		label := fmt.Sprintf("%-10s", fieldLabels[i])
		value := model.form.value(i)
		if i == fieldRarity && model.form.rarity != "" {
			value = lipgloss.NewStyle().Foreground(model.theme.RarityColor(model.form.rarity)).Render(value)
		}
		line := label + " " + value
		if i == model.form.focus {
			line = lipgloss.NewStyle().Foreground(model.theme.SelectedForeground).Bold(true).Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Render(strings.TrimRight(b.String(), "\n"))
}

// renderStatusBar shows, in priority order, a pending confirmation, the
// current toast or the key help for the active mode.
func (model Model) renderStatusBar() string {
	if model.prompt != nil {
		return lipgloss.NewStyle().Bold(true).Foreground(model.theme.ToastDestructive).
			Render(model.prompt.prompt + " [y/n]")
	}
	if model.toast != nil {
		color := model.theme.ToastNormal
		if model.toast.Destructive {
			color = model.theme.ToastDestructive
		}
		return lipgloss.NewStyle().Foreground(color).
			Render(model.toast.Title + ": " + model.toast.Description)
	}

	bindings := model.keys.listHelp()
	if state, _ := model.session.State(); state != admin.Closed {
		bindings = model.keys.formHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(strings.Join(parts, " · "))
}
