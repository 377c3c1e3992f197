package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meur/cs2hub/internal/catalogue"
)

// toastMsg carries a notification raised by the catalogue manager.
type toastMsg struct {
	toast catalogue.Toast
}

// confirmMsg asks the user a yes/no question on behalf of a blocked
// goroutine. Exactly one value must be sent on answer.
type confirmMsg struct {
	prompt string
	answer chan<- bool
}

// Bridge implements catalogue.Notifier and catalogue.Confirmer for a
// bubbletea program. The manager calls it from the goroutines that run
// tea.Cmds; the model receives the calls as messages by keeping one
// wait command outstanding at all times.
type Bridge struct {
	messages chan tea.Msg
}

// NewBridge creates a bridge with room for a few undelivered toasts.
func NewBridge() *Bridge {
	return &Bridge{messages: make(chan tea.Msg, 16)}
}

// Notify queues a toast for the model.
func (bridge *Bridge) Notify(toast catalogue.Toast) {
	bridge.messages <- toastMsg{toast: toast}
}

// Confirm shows prompt in the status bar and blocks until the user answers.
func (bridge *Bridge) Confirm(prompt string) bool {
	answer := make(chan bool, 1)
	bridge.messages <- confirmMsg{prompt: prompt, answer: answer}
	return <-answer
}

// wait returns a command that delivers the next queued message.
func (bridge *Bridge) wait() tea.Cmd {
	return func() tea.Msg {
		return <-bridge.messages
	}
}
