package catalogue

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Toast is a transient user-facing notification
type Toast struct {
	Title       string
	Description string
	Destructive bool
}

// Notifier shows toasts to the user
type Notifier interface {
	Notify(Toast)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

// LogNotifier writes toasts to the global logger
type LogNotifier struct{}

func (LogNotifier) Notify(t Toast) {
	ev := log.Info()
	if t.Destructive {
		ev = log.Warn()
	}
	ev.Str("title", t.Title).Msg(t.Description)
}

// Recorder keeps every toast it receives. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Toasts returns a copy of the recorded toasts, oldest first
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast and whether there was one
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

func successToast(description string) Toast {
	return Toast{Title: "Success", Description: description}
}

func failureToast(description string) Toast {
	return Toast{Title: "Error", Description: description, Destructive: true}
}
