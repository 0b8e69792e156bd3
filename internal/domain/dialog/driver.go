package dialog

// Callback receives the user's answer. ok is false when the dialog was
// cancelled or could not be shown.
type Callback func(path string, ok bool)

// Options configures a single dialog.
type Options struct {
	Title       string
	Filters     FilterSet
	DefaultName string // save dialogs only; empty means no pre-filled name
}

// Driver presents dialogs. Implementations must call the callback exactly once,
// and may call it from any goroutine.
type Driver interface {
	PickFile(opts Options, done Callback)
	SaveFile(opts Options, done Callback)
}

// Kind distinguishes open and save requests.
type Kind string

const (
	KindOpen Kind = "open"
	KindSave Kind = "save"
)
