// Package admin holds the state of the catalogue admin screen: the mirrored list
// and the add/edit dialog.
package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/meur/cs2hub/internal/models"
)

// Catalogue is the synchronised skin collection the screen edits
type Catalogue interface {
	Refresh(ctx context.Context) ([]models.Skin, error)
	Create(ctx context.Context, d models.SkinDraft) error
	Update(ctx context.Context, s models.Skin) error
	Delete(ctx context.Context, id string) error
	Items() []models.Skin
	Find(id string) (models.Skin, bool)
}

// State is the dialog state
type State int

const (
	Closed State = iota
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Mode tells whether the dialog creates a skin or edits one
type Mode int

const (
	Add Mode = iota
	Edit
)

// ErrBadTransition is returned when a dialog action is not allowed in the current state
var ErrBadTransition = errors.New("admin: action not allowed in current dialog state")

// Session is the admin screen state. Safe for concurrent use.
type Session struct {
	catalogue Catalogue

	mu     sync.Mutex
	state  State
	mode   Mode
	editID string
	draft  models.SkinDraft
}

// NewSession creates a session with the dialog closed
func NewSession(c Catalogue) *Session {
	return &Session{catalogue: c}
}

// Load fetches the catalogue for the first time
func (s *Session) Load(ctx context.Context) ([]models.Skin, error) {
	return s.catalogue.Refresh(ctx)
}

// Refresh refetches the catalogue
func (s *Session) Refresh(ctx context.Context) ([]models.Skin, error) {
	return s.catalogue.Refresh(ctx)
}

// Items returns the mirrored catalogue
func (s *Session) Items() []models.Skin {
	return s.catalogue.Items()
}

// State returns the dialog state and mode
func (s *Session) State() (State, Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.mode
}

// EditingID returns the ID of the skin being edited, empty in Add mode
func (s *Session) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editID
}

// OpenAdd opens the dialog with an empty draft
func (s *Session) OpenAdd() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Closed {
		return ErrBadTransition
	}
	s.state, s.mode, s.editID = Editing, Add, ""
	s.draft = models.SkinDraft{}
	return nil
}

// OpenEdit opens the dialog with a draft copied from the mirrored skin id
func (s *Session) OpenEdit(id string) error {
	skin, ok := s.catalogue.Find(id)
	if !ok {
		return errors.Errorf("admin: no skin with id %q", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Closed {
		return ErrBadTransition
	}
	s.state, s.mode, s.editID = Editing, Edit, id
	s.draft = skin.Draft()
	return nil
}

// Draft returns a copy of the working buffer
func (s *Session) Draft() models.SkinDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	d.Stickers = append([]string(nil), s.draft.Stickers...)
	return d
}

// SetDraft edits the working buffer in place. Only allowed while Editing.
func (s *Session) SetDraft(fn func(d *models.SkinDraft)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing {
		return ErrBadTransition
	}
	fn(&s.draft)
	return nil
}

// Cancel closes the dialog and discards the draft
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing {
		return ErrBadTransition
	}
	s.close()
	return nil
}

// Operation is a submission captured by Begin, to be run outside the session lock
type Operation func(ctx context.Context) error

// Begin moves Editing to Submitting and returns the request to run
func (s *Session) Begin() (Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing {
		return nil, ErrBadTransition
	}
	s.state = Submitting

	draft := s.draft
	draft.Stickers = append([]string(nil), s.draft.Stickers...)
	if s.mode == Add {
		return func(ctx context.Context) error {
			return s.catalogue.Create(ctx, draft)
		}, nil
	}

	skin := draft.Skin(s.editID)
	if current, ok := s.catalogue.Find(s.editID); ok {
		skin.IsAvailable = current.IsAvailable
	}
	return func(ctx context.Context) error {
		return s.catalogue.Update(ctx, skin)
	}, nil
}

// Finish leaves Submitting: success closes the dialog, failure returns to Editing
// with the draft intact.
func (s *Session) Finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Submitting {
		return
	}
	if err != nil {
		s.state = Editing
		return
	}
	s.close()
}

// Submit runs the dialog's pending create or update to completion
func (s *Session) Submit(ctx context.Context) error {
	op, err := s.Begin()
	if err != nil {
		return err
	}
	err = op(ctx)
	s.Finish(err)
	return err
}

// Delete removes a skin after confirmation. The dialog is not affected.
func (s *Session) Delete(ctx context.Context, id string) error {
	return s.catalogue.Delete(ctx, id)
}

func (s *Session) close() {
	s.state, s.mode, s.editID = Closed, Add, ""
	s.draft = models.SkinDraft{}
}
