package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/cs2hub/internal/admin"
	"github.com/meur/cs2hub/internal/catalogue"
	"github.com/meur/cs2hub/internal/models"
)

// memBackend is an in-memory skins resource.
type memBackend struct {
	mu      sync.Mutex
	skins   []models.Skin
	fail    bool
	nextID  int
	deletes int
}

var errUnavailable = errors.New("backend unavailable")

func (backend *memBackend) List(context.Context, catalogue.Query) ([]models.Skin, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	return append([]models.Skin{}, backend.skins...), nil
}

func (backend *memBackend) Create(_ context.Context, draft models.SkinDraft) (string, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	if backend.fail {
		return "", errUnavailable
	}
	backend.nextID++
	id := string(rune('a' + backend.nextID))
	backend.skins = append(backend.skins, draft.Skin(id))
	return id, nil
}

func (backend *memBackend) Update(_ context.Context, skin models.Skin) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	if backend.fail {
		return errUnavailable
	}
	for i := range backend.skins {
		if backend.skins[i].ID == skin.ID {
			backend.skins[i] = skin
		}
	}
	return nil
}

func (backend *memBackend) Delete(_ context.Context, id string) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.deletes++
	kept := backend.skins[:0]
	for _, skin := range backend.skins {
		if skin.ID != id {
			kept = append(kept, skin)
		}
	}
	backend.skins = kept
	return nil
}

func testSkins() []models.Skin {
	return []models.Skin{
		{ID: "1", Name: "AK-47 | Redline", Weapon: "AK-47", Rarity: models.RarityClassified, Price: 15420, FloatValue: 0.28, OwnerName: "Admin", IsAvailable: true},
		{ID: "2", Name: "AWP | Asiimov", Weapon: "AWP", Rarity: models.RarityCovert, Price: 9800, OwnerName: "niko", IsAvailable: true},
	}
}

// loadedModel returns a model that has completed its first load.
func loadedModel(t *testing.T, backend *memBackend) (Model, *admin.Session, *Bridge) {
	t.Helper()
	bridge := NewBridge()
	manager := catalogue.NewManager(backend, bridge, bridge)
	session := admin.NewSession(manager)
	model := NewModel(session, bridge)

	updated, _ := model.Update(model.load()())
	return updated.(Model), session, bridge
}

func press(t *testing.T, model Model, messages ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var command tea.Cmd
	for _, message := range messages {
		var updated tea.Model
		updated, command = model.Update(message)
		model = updated.(Model)
	}
	return model, command
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

// drainToasts collects the toasts the manager has queued so far.
func drainToasts(bridge *Bridge) []catalogue.Toast {
	var toasts []catalogue.Toast
	for {
		select {
		case message := <-bridge.messages:
			if toast, ok := message.(toastMsg); ok {
				toasts = append(toasts, toast.toast)
			}
		default:
			return toasts
		}
	}
}

func TestModelLoad(t *testing.T) {
	model, _, _ := loadedModel(t, &memBackend{skins: testSkins()})

	view := model.View()
	assert.Contains(t, view, "AK-47 | Redline")
	assert.Contains(t, view, "AWP | Asiimov")
	assert.NotContains(t, view, "Loading skins")
}

func TestModelEmptyState(t *testing.T) {
	model, _, _ := loadedModel(t, &memBackend{})
	assert.Contains(t, model.View(), "No skins found")
}

func TestModelAddFlow(t *testing.T) {
	backend := &memBackend{skins: testSkins()}
	model, session, bridge := loadedModel(t, backend)

	model, _ = press(t, model, runes("a"))
	state, mode := session.State()
	require.Equal(t, admin.Editing, state)
	assert.Equal(t, admin.Add, mode)

	model, _ = press(t, model, runes("M4A4 | Asiimov"), keyTab, runes("M4A4"), keyTab)
	for i := 0; i < 6; i++ {
		model, _ = press(t, model, keySpace)
	}
	assert.Equal(t, models.RarityCovert, model.form.rarity)

	model, command := press(t, model, keyTab, keyTab, runes("45890"), keySave)
	require.NotNil(t, command)
	state, _ = session.State()
	assert.Equal(t, admin.Submitting, state)

	updated, _ := model.Update(command())
	model = updated.(Model)

	state, _ = session.State()
	assert.Equal(t, admin.Closed, state)
	require.Len(t, model.items, 3)
	assert.Contains(t, model.View(), "M4A4 | Asiimov")
	assert.Contains(t, drainToasts(bridge), catalogue.Toast{Title: "Success", Description: "Skin added"})
}

func TestModelFailedSubmitKeepsDialog(t *testing.T) {
	backend := &memBackend{skins: testSkins(), fail: true}
	model, session, bridge := loadedModel(t, backend)

	model, _ = press(t, model, runes("e"))
	state, mode := session.State()
	require.Equal(t, admin.Editing, state)
	require.Equal(t, admin.Edit, mode)
	assert.Equal(t, "AK-47 | Redline", model.form.value(fieldName))

	model.form.values[fieldPrice] = []rune("16000")
	model, command := press(t, model, keySave)
	require.NotNil(t, command)
	updated, _ := model.Update(command())
	model = updated.(Model)

	state, _ = session.State()
	assert.Equal(t, admin.Editing, state)
	assert.Equal(t, "16000", model.form.value(fieldPrice))
	assert.Equal(t, int64(15420), model.items[0].Price)
	assert.Contains(t, drainToasts(bridge), catalogue.Toast{Title: "Error", Description: "Failed to update skin", Destructive: true})

	model, _ = press(t, model, keyEsc)
	state, _ = session.State()
	assert.Equal(t, admin.Closed, state)
}

func TestModelUnparsableFormStaysEditing(t *testing.T) {
	model, session, _ := loadedModel(t, &memBackend{})

	model, _ = press(t, model, runes("a"))
	model.form.values[fieldPrice] = []rune("lots")
	model, command := press(t, model, keySave)

	state, _ := session.State()
	assert.Equal(t, admin.Editing, state)
	require.NotNil(t, model.toast)
	assert.True(t, model.toast.Destructive)
	assert.Contains(t, model.toast.Description, "price must be a whole number")
	assert.NotNil(t, command, "fade tick is scheduled")
}

func TestModelDeleteConfirmation(t *testing.T) {
	for _, tt := range []struct {
		answer      string
		wantDeletes int
		wantItems   int
	}{
		{answer: "n", wantDeletes: 0, wantItems: 2},
		{answer: "y", wantDeletes: 1, wantItems: 1},
	} {
		t.Run(tt.answer, func(t *testing.T) {
			backend := &memBackend{skins: testSkins()}
			model, _, bridge := loadedModel(t, backend)

			model, command := press(t, model, runes("d"))
			require.NotNil(t, command)

			results := make(chan tea.Msg, 1)
			go func() { results <- command() }()

			updated, _ := model.Update(bridge.wait()())
			model = updated.(Model)
			assert.Contains(t, model.View(), catalogue.DeletePrompt+" [y/n]")

			// Unrelated keys do not answer the prompt.
			model, _ = press(t, model, runes("x"))
			require.NotNil(t, model.prompt)

			model, _ = press(t, model, runes(tt.answer))
			assert.Nil(t, model.prompt)

			updated, _ = model.Update(<-results)
			model = updated.(Model)
			assert.Equal(t, tt.wantDeletes, backend.deletes)
			assert.Len(t, model.items, tt.wantItems)
		})
	}
}

func TestModelDeleteInFlight(t *testing.T) {
	backend := &memBackend{skins: testSkins()}
	model, _, bridge := loadedModel(t, backend)

	model, first := press(t, model, runes("d"))
	require.NotNil(t, first)
	model, second := press(t, model, runes("d"))
	assert.Nil(t, second)

	results := make(chan tea.Msg, 1)
	go func() { results <- first() }()

	updated, _ := model.Update(bridge.wait()())
	model = updated.(Model)
	model, _ = press(t, model, runes("y"))

	select {
	case message := <-results:
		updated, _ = model.Update(message)
		model = updated.(Model)
	case <-time.After(time.Second):
		t.Fatal("delete did not finish")
	}
	assert.Equal(t, 1, backend.deletes)
	assert.False(t, model.deleting)

	_, again := press(t, model, runes("d"))
	assert.NotNil(t, again)
}

func TestModelReplacedPromptIsDeclined(t *testing.T) {
	model, _, _ := loadedModel(t, &memBackend{skins: testSkins()})

	older := make(chan bool, 1)
	newer := make(chan bool, 1)
	updated, _ := model.Update(confirmMsg{prompt: catalogue.DeletePrompt, answer: older})
	updated, _ = updated.(Model).Update(confirmMsg{prompt: catalogue.DeletePrompt, answer: newer})
	model = updated.(Model)

	assert.False(t, <-older)
	model, _ = press(t, model, runes("y"))
	assert.True(t, <-newer)
	assert.Nil(t, model.prompt)
}

func TestModelFilter(t *testing.T) {
	model, _, _ := loadedModel(t, &memBackend{skins: testSkins()})

	model, _ = press(t, model, runes("/"), runes("awp"))
	require.Len(t, model.visible, 1)
	assert.Equal(t, "2", model.visible[0].ID)
	assert.Contains(t, model.View(), "filter: awp")

	model, _ = press(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, model.filtering)
	assert.Len(t, model.visible, 1)

	model, _ = press(t, model, runes("/"), keyEsc)
	assert.Len(t, model.visible, 2)
}

func TestModelToastFade(t *testing.T) {
	model, _, _ := loadedModel(t, &memBackend{})

	updated, _ := model.Update(toastMsg{toast: catalogue.Toast{Title: "Success", Description: "Skin added"}})
	model = updated.(Model)
	assert.Contains(t, model.View(), "Success: Skin added")

	updated, _ = model.Update(toastMsg{toast: catalogue.Toast{Title: "Error", Description: "Failed to load skins", Destructive: true}})
	model = updated.(Model)

	// The first toast's fade must not clear the second.
	updated, _ = model.Update(toastFadeMsg{sequence: 1})
	model = updated.(Model)
	assert.Contains(t, model.View(), "Failed to load skins")

	updated, _ = model.Update(toastFadeMsg{sequence: 2})
	model = updated.(Model)
	assert.Nil(t, model.toast)
	assert.False(t, strings.Contains(model.View(), "Failed to load skins"))
}

func TestModelQuit(t *testing.T) {
	model, session, _ := loadedModel(t, &memBackend{})

	_, command := press(t, model, runes("q"))
	require.NotNil(t, command)
	_, isQuit := command().(tea.QuitMsg)
	assert.True(t, isQuit)

	// In the dialog q is text.
	model, _ = press(t, model, runes("a"), runes("q"))
	assert.Equal(t, "q", model.form.value(fieldName))
	state, _ := session.State()
	assert.Equal(t, admin.Editing, state)
}

func TestFormRoundTrip(t *testing.T) {
	draft := models.SkinDraft{
		Name: "AK-47 | Redline", Weapon: "AK-47", Rarity: models.RarityClassified,
		Wear: "Field-Tested", Price: 15420, FloatValue: 0.28, OwnerName: "Admin",
		Stickers: []string{"Katowice 2014", "Crown (Foil)"},
	}
	got, err := newForm(draft).draft()
	require.NoError(t, err)
	assert.Equal(t, draft, got)

	f := newForm(models.SkinDraft{})
	f.values[fieldFloat] = []rune("abc")
	_, err = f.draft()
	assert.Error(t, err)
}
