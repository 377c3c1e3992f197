// Package tui implements the terminal admin screen for the skin catalogue.
//
// The screen is a bubbletea program over an [admin.Session]. Network calls
// never run inside Update: every load, submit and delete is returned as a
// tea.Cmd and its outcome comes back as a message. Toasts and delete
// confirmations raised by the catalogue manager from those background
// goroutines are funnelled into the message loop through a [Bridge].
package tui
