package catalogue

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/meur/cs2hub/internal/models"
)

// Backend is the remote skins resource
type Backend interface {
	List(ctx context.Context, q Query) ([]models.Skin, error)
	Create(ctx context.Context, d models.SkinDraft) (string, error)
	Update(ctx context.Context, s models.Skin) error
	Delete(ctx context.Context, id string) error
}

// Manager keeps an in-memory mirror of the catalogue in step with the backend.
// The mirror is never patched locally: it only changes when a refresh succeeds,
// and every successful mutation is followed by one.
type Manager struct {
	backend   Backend
	notifier  Notifier
	confirmer Confirmer

	mu    sync.RWMutex
	items []models.Skin

	locks idLocks
}

// NewManager creates a manager with an empty mirror. Call Refresh to populate it.
// A nil confirmer declines every delete.
func NewManager(backend Backend, notifier Notifier, confirmer Confirmer) *Manager {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	if confirmer == nil {
		confirmer = NeverConfirm
	}
	return &Manager{
		backend:   backend,
		notifier:  notifier,
		confirmer: confirmer,
		items:     []models.Skin{},
		locks:     idLocks{held: map[string]*idLock{}},
	}
}

// Items returns a copy of the mirror in backend order
func (m *Manager) Items() []models.Skin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Skin(nil), m.items...)
}

// Find returns the mirrored skin with id
func (m *Manager) Find(id string) (models.Skin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lo.Find(m.items, func(s models.Skin) bool { return s.ID == id })
}

// Refresh replaces the mirror with the backend's collection. On failure the mirror
// is left as it was and a load-failure toast is shown.
func (m *Manager) Refresh(ctx context.Context) ([]models.Skin, error) {
	skins, err := m.backend.List(ctx, Query{})
	if err != nil {
		log.Debug().Err(err).Msg("catalogue: refresh failed")
		m.notifier.Notify(failureToast("Failed to load skins"))
		return nil, err
	}

	m.mu.Lock()
	m.items = skins
	m.mu.Unlock()

	return append([]models.Skin(nil), skins...), nil
}

// Create validates and submits a new skin, then refreshes
func (m *Manager) Create(ctx context.Context, d models.SkinDraft) error {
	err := d.Validate()
	if err != nil {
		err = invalidDraft(err)
	} else {
		_, err = m.backend.Create(ctx, d)
	}
	return m.settle(ctx, "create", err, "Skin added", "Failed to add skin")
}

// Update validates and submits a full replacement for s.ID, then refreshes
func (m *Manager) Update(ctx context.Context, s models.Skin) error {
	unlock := m.locks.lock(s.ID)
	defer unlock()

	err := s.Draft().Validate()
	if err != nil {
		err = invalidDraft(err)
	} else {
		err = m.backend.Update(ctx, s)
	}
	return m.settle(ctx, "update", err, "Skin updated", "Failed to update skin")
}

// Delete asks for confirmation, removes id, then refreshes. A declined prompt
// returns ErrDeclined without contacting the backend or showing a toast.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if !m.confirmer.Confirm(DeletePrompt) {
		return ErrDeclined
	}

	unlock := m.locks.lock(id)
	defer unlock()

	err := m.backend.Delete(ctx, id)
	return m.settle(ctx, "delete", err, "Skin deleted", "Failed to delete skin")
}

// settle reports the outcome of a mutation and refreshes after a success.
// A failed refresh has its own toast and does not turn the mutation into a failure.
func (m *Manager) settle(ctx context.Context, op string, err error, success, failure string) error {
	if err != nil {
		log.Debug().Err(err).Str("op", op).Msg("catalogue: mutation failed")
		m.notifier.Notify(failureToast(failure))
		return err
	}
	m.notifier.Notify(successToast(success))
	_, _ = m.Refresh(ctx)
	return nil
}

// idLocks serialises mutations that target the same skin
type idLocks struct {
	mu   sync.Mutex
	held map[string]*idLock
}

type idLock struct {
	sync.Mutex
	refs int
}

func (l *idLocks) lock(id string) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.held[id]
	if !ok {
		entry = &idLock{}
		l.held[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.held, id)
		}
		l.mu.Unlock()
	}
}
