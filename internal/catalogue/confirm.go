package catalogue

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to Confirmer
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every prompt. Used by non-interactive callers.
var AlwaysConfirm Confirmer = ConfirmerFunc(func(string) bool { return true })

// NeverConfirm declines every prompt
var NeverConfirm Confirmer = ConfirmerFunc(func(string) bool { return false })

// DeletePrompt is shown before a skin is deleted
const DeletePrompt = "Delete this skin?"
