package dialog

import (
	"errors"
	"sync"
	"time"

	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/resilience"
)

// Native shows OS file dialogs. Dialogs are modal, so at most one is on
// screen at a time; later requests wait their turn on their own goroutine.
// When the toolkit keeps failing the breaker opens and dialogs resolve with
// no path until a probe succeeds.
type Native struct {
	logger  *logging.Logger
	modal   sync.Mutex
	breaker *resilience.Breaker
	show    func(kind Kind, opts Options) (string, error)
}

// NewNative creates a driver backed by the platform dialog toolkit.
func NewNative(logger *logging.Logger) *Native {
	logger = logger.Named("dialog.native")
	return &Native{
		logger: logger,
		breaker: resilience.New("dialog.native", resilience.Settings{
			Threshold: 3,
			Cooldown:  30 * time.Second,
			OnStateChange: func(name string, from, to resilience.State) {
				logger.Warn("Dialog backend breaker changed state",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		}),
		show: showZenity,
	}
}

// PickFile shows an open dialog.
func (n *Native) PickFile(opts Options, done Callback) {
	go n.run(KindOpen, opts, done)
}

// SaveFile shows a save dialog.
func (n *Native) SaveFile(opts Options, done Callback) {
	go n.run(KindSave, opts, done)
}

func (n *Native) run(kind Kind, opts Options, done Callback) {
	var path string
	n.modal.Lock()
	err := n.breaker.Execute(func() error {
		var err error
		path, err = n.show(kind, opts)
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	})
	n.modal.Unlock()

	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		n.logger.Warn("Dialog backend unavailable", zap.String("kind", string(kind)))
		done("", false)
	case err != nil:
		n.logger.Warn("Dialog failed", zap.String("kind", string(kind)), zap.Error(err))
		done("", false)
	case path == "":
		n.logger.Debug("Dialog cancelled", zap.String("kind", string(kind)))
		done("", false)
	default:
		done(path, true)
	}
}

func showZenity(kind Kind, opts Options) (string, error) {
	zopts := []zenity.Option{zenity.Title(opts.Title)}
	if filters := zenityFilters(opts.Filters); len(filters) > 0 {
		zopts = append(zopts, filters)
	}

	if kind == KindSave {
		zopts = append(zopts, zenity.ConfirmOverwrite())
		if opts.DefaultName != "" {
			zopts = append(zopts, zenity.Filename(opts.DefaultName))
		}
		return zenity.SelectFileSave(zopts...)
	}
	return zenity.SelectFile(zopts...)
}

func zenityFilters(set FilterSet) zenity.FileFilters {
	filters := make(zenity.FileFilters, 0, len(set))
	for _, f := range set {
		filters = append(filters, zenity.FileFilter{
			Name:     f.Name,
			Patterns: f.Patterns(),
			CaseFold: true,
		})
	}
	return filters
}
