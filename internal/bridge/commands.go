package bridge

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/utils"
)

// Command names understood by Invoke
const (
	CmdOpenFileDialog   = "open_file_dialog"
	CmdSaveFileDialog   = "save_file_dialog"
	CmdReadFileContent  = "read_file_content"
	CmdWriteFileContent = "write_file_content"
)

var (
	// ErrUnknownCommand is returned by Invoke for names not in the command table.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidArgs is returned by Invoke when arguments are missing or mistyped.
	ErrInvalidArgs = errors.New("invalid arguments")
)

// Parameter describes a command argument
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Command describes a command the front-end can invoke
type Command struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Args holds decoded command arguments. Keys may be snake_case or the
// camelCase form a JavaScript front-end sends.
type Args map[string]any

// argValidators check string arguments beyond their type.
var argValidators = map[string]func(value, fieldName string) error{
	"file_path":    utils.ValidatePath,
	"default_name": utils.ValidateFileName,
	"content":      utils.ValidateContent,
}

type command struct {
	def Command
	run func(ctx context.Context, args Args) (any, error)
}

func (b *Bridge) commandTable() map[string]command {
	return map[string]command{
		CmdOpenFileDialog: {
			def: Command{
				Name:        CmdOpenFileDialog,
				Description: "Show a native open dialog filtered to text files",
				Parameters:  []Parameter{},
				Returns:     "string|null",
			},
			run: func(ctx context.Context, _ Args) (any, error) {
				return b.OpenFileDialog(ctx)
			},
		},
		CmdSaveFileDialog: {
			def: Command{
				Name:        CmdSaveFileDialog,
				Description: "Show a native save dialog, optionally pre-filled with a file name",
				Parameters: []Parameter{
					{Name: "default_name", Type: "string", Description: "File name to pre-fill", Required: false},
				},
				Returns: "string|null",
			},
			run: func(ctx context.Context, args Args) (any, error) {
				name, ok := args.lookup("default_name")
				if !ok {
					return b.SaveFileDialog(ctx, nil)
				}
				s, _ := name.(string)
				return b.SaveFileDialog(ctx, &s)
			},
		},
		CmdReadFileContent: {
			def: Command{
				Name:        CmdReadFileContent,
				Description: "Read an entire file as UTF-8 text",
				Parameters: []Parameter{
					{Name: "file_path", Type: "string", Description: "Absolute file path", Required: true},
				},
				Returns: "string",
			},
			run: func(ctx context.Context, args Args) (any, error) {
				path, _ := args.String("file_path")
				return b.ReadFileContent(ctx, path)
			},
		},
		CmdWriteFileContent: {
			def: Command{
				Name:        CmdWriteFileContent,
				Description: "Create or overwrite a file with text content",
				Parameters: []Parameter{
					{Name: "file_path", Type: "string", Description: "Absolute file path", Required: true},
					{Name: "content", Type: "string", Description: "Text to write", Required: true},
				},
				Returns: "null",
			},
			run: func(ctx context.Context, args Args) (any, error) {
				path, _ := args.String("file_path")
				content, _ := args.String("content")
				return nil, b.WriteFileContent(ctx, path, content)
			},
		},
	}
}

// Commands returns the command table sorted by name.
func (b *Bridge) Commands() []Command {
	defs := make([]Command, 0, len(b.commands))
	for _, cmd := range b.commands {
		defs = append(defs, cmd.def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Lookup returns the definition of a command.
func (b *Bridge) Lookup(name string) (Command, bool) {
	cmd, ok := b.commands[name]
	return cmd.def, ok
}

// Invoke runs a command by name. Failures of the command itself are returned
// as errors whose text is meant to be shown to the user verbatim.
func (b *Bridge) Invoke(ctx context.Context, name string, args Args) (any, error) {
	cmd, ok := b.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if err := args.check(cmd.def.Parameters); err != nil {
		b.recordError(name, "invalid_args")
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	start := time.Now()
	result, err := cmd.run(ctx, args)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		b.recordError(name, errorKind(err))
		b.logger.Warn("Command failed",
			zap.String("cmd", name),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	} else {
		b.logger.Debug("Command finished", zap.String("cmd", name), zap.Duration("duration", duration))
	}
	if b.metrics != nil {
		b.metrics.RecordCommand(name, status, duration)
	}
	return result, err
}

func (b *Bridge) recordError(name, kind string) {
	if b.metrics != nil {
		b.metrics.RecordCommandError(name, kind)
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, ErrInvalidArgs):
		return "invalid_args"
	default:
		return "io"
	}
}

// lookup finds an argument by its snake_case name or camelCase alias.
func (a Args) lookup(name string) (any, bool) {
	if v, ok := a[name]; ok && v != nil {
		return v, true
	}
	if v, ok := a[camelCase(name)]; ok && v != nil {
		return v, true
	}
	return nil, false
}

// String returns a string argument.
func (a Args) String(name string) (string, bool) {
	v, ok := a.lookup(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (a Args) check(params []Parameter) error {
	for _, p := range params {
		v, ok := a.lookup(p.Name)
		if !ok {
			if p.Required {
				return fmt.Errorf("%w: missing %s", ErrInvalidArgs, p.Name)
			}
			continue
		}
		if p.Type != "string" {
			continue
		}
		s, isString := v.(string)
		if !isString {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidArgs, p.Name)
		}
		if validate, ok := argValidators[p.Name]; ok {
			if err := validate(s, p.Name); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
			}
		}
	}
	return nil
}

func camelCase(snake string) string {
	parts := strings.Split(snake, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
