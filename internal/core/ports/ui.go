package ports

// Notifier surfaces transient, auto-dismissing notifications (the console
// equivalent of a toast).
type Notifier interface {
	Notify(message string, isError bool)
}

// Prompter collects a single line of user input for a labelled field.
// Implementations return the raw entry; empty means the field was skipped.
type Prompter interface {
	Ask(label string) (string, error)
}
