package bridge

import (
	"context"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/dialog"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
)

const (
	openDialogTitle = "Open File"
	saveDialogTitle = "Save File"
)

// FileStore reads and writes whole text files.
type FileStore interface {
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, content string) error
}

// Bridge executes front-end commands against dialogs and the filesystem.
// It holds no per-call state and is safe for concurrent use.
type Bridge struct {
	dialogs  dialog.Driver
	files    FileStore
	filters  dialog.FilterSet
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	commands map[string]command
}

// New creates a bridge using the default file filters.
func New(dialogs dialog.Driver, files FileStore, logger *logging.Logger) *Bridge {
	b := &Bridge{
		dialogs: dialogs,
		files:   files,
		filters: dialog.DefaultFilters(),
		logger:  logger.Named("bridge"),
	}
	b.commands = b.commandTable()
	return b
}

// WithFilters replaces the filters shown by both dialogs.
func (b *Bridge) WithFilters(filters dialog.FilterSet) *Bridge {
	b.filters = filters
	return b
}

// WithMetrics enables invocation metrics.
func (b *Bridge) WithMetrics(metrics *monitoring.Metrics) *Bridge {
	b.metrics = metrics
	return b
}

// Filters returns the filters shown by both dialogs.
func (b *Bridge) Filters() dialog.FilterSet {
	return b.filters
}

// OpenFileDialog shows an open dialog and returns the chosen path, or nil if
// the user cancelled. It returns only once the user has answered.
func (b *Bridge) OpenFileDialog(ctx context.Context) (*string, error) {
	opts := dialog.Options{
		Title:   openDialogTitle,
		Filters: b.filters,
	}
	return b.awaitDialog(ctx, b.dialogs.PickFile, opts)
}

// SaveFileDialog shows a save dialog, pre-filled with defaultName when given,
// and returns the chosen path, or nil if the user cancelled.
func (b *Bridge) SaveFileDialog(ctx context.Context, defaultName *string) (*string, error) {
	opts := dialog.Options{
		Title:   saveDialogTitle,
		Filters: b.filters,
	}
	if defaultName != nil {
		opts.DefaultName = *defaultName
	}
	return b.awaitDialog(ctx, b.dialogs.SaveFile, opts)
}

// ReadFileContent returns the text content of the file at path.
func (b *Bridge) ReadFileContent(ctx context.Context, path string) (string, error) {
	return b.files.Read(ctx, path)
}

// WriteFileContent replaces the file at path with content.
func (b *Bridge) WriteFileContent(ctx context.Context, path, content string) error {
	return b.files.Write(ctx, path, content)
}

func (b *Bridge) awaitDialog(ctx context.Context, show func(dialog.Options, dialog.Callback), opts dialog.Options) (*string, error) {
	result := newHandoff[*string]()
	show(opts, func(path string, ok bool) {
		var chosen *string
		if ok {
			chosen = &path
		}
		if !result.resolve(chosen) {
			b.logger.Warn("Dialog answered twice, ignoring", zap.String("title", opts.Title))
		}
	})

	chosen, err := result.wait(ctx)
	if err != nil {
		b.logger.Debug("Stopped waiting for dialog", zap.String("title", opts.Title), zap.Error(err))
		return nil, err
	}
	return chosen, nil
}
