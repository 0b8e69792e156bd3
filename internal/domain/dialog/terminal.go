package dialog

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
)

// Terminal asks for paths on a text stream when no display is available.
// An empty answer or end of input cancels.
type Terminal struct {
	mu      sync.Mutex
	in      *bufio.Reader
	out     io.Writer
	fs      afero.Fs
	workDir string
	logger  *logging.Logger
}

// NewTerminal creates a terminal driver. Relative answers resolve against workDir.
func NewTerminal(in io.Reader, out io.Writer, fs afero.Fs, workDir string, logger *logging.Logger) *Terminal {
	return &Terminal{
		in:      bufio.NewReader(in),
		out:     out,
		fs:      fs,
		workDir: workDir,
		logger:  logger.Named("dialog.terminal"),
	}
}

// PickFile prompts for an existing file that passes the filters.
func (t *Terminal) PickFile(opts Options, done Callback) {
	go func() {
		path, ok := t.pick(opts)
		done(path, ok)
	}()
}

// SaveFile prompts for a destination path.
func (t *Terminal) SaveFile(opts Options, done Callback) {
	go func() {
		path, ok := t.save(opts)
		done(path, ok)
	}()
}

func (t *Terminal) pick(opts Options) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "%s\n%s", opts.Title, describeFilters(opts.Filters))
	answer, eof := t.readAnswer()
	if answer == "" {
		if eof {
			t.logger.Debug("Input closed, cancelling open dialog")
		}
		return "", false
	}

	path := t.resolve(answer)
	info, err := t.fs.Stat(path)
	if err != nil {
		fmt.Fprintf(t.out, "cannot open %s: %v\n", path, err)
		t.logger.Debug("Rejected answer", zap.String("path", path), zap.Error(err))
		return "", false
	}
	if info.IsDir() {
		fmt.Fprintf(t.out, "%s is a directory\n", path)
		return "", false
	}
	if !opts.Filters.Allows(path) {
		fmt.Fprintf(t.out, "%s does not match the file filters\n", path)
		return "", false
	}
	return path, true
}

func (t *Terminal) save(opts Options) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "%s\n", opts.Title)
	if opts.DefaultName != "" {
		fmt.Fprintf(t.out, "default: %s\n", opts.DefaultName)
	}
	answer, eof := t.readAnswer()
	if answer == "" {
		if eof || opts.DefaultName == "" {
			return "", false
		}
		answer = opts.DefaultName
	}

	path := t.resolve(answer)
	if info, err := t.fs.Stat(path); err == nil && info.IsDir() {
		if opts.DefaultName == "" {
			fmt.Fprintf(t.out, "%s is a directory\n", path)
			return "", false
		}
		path = filepath.Join(path, opts.DefaultName)
	}
	return path, true
}

// readAnswer reads one trimmed line. eof is true when the input has ended.
func (t *Terminal) readAnswer() (answer string, eof bool) {
	fmt.Fprint(t.out, "path> ")
	line, err := t.in.ReadString('\n')
	return strings.TrimSpace(line), err != nil
}

func (t *Terminal) resolve(answer string) string {
	if filepath.IsAbs(answer) {
		return filepath.Clean(answer)
	}
	return filepath.Join(t.workDir, answer)
}

func describeFilters(set FilterSet) string {
	if len(set) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, f := range set {
		fmt.Fprintf(&sb, "  %s: %s\n", f.Name, strings.Join(f.Patterns(), " "))
	}
	return sb.String()
}
