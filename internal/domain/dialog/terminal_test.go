package dialog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
)

func newTestTerminal(t *testing.T, input string) (*Terminal, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work/docs", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/work/notes.md", []byte("# notes"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/work/tool.exe", []byte{0x4d, 0x5a}, 0o755))

	var out bytes.Buffer
	return NewTerminal(strings.NewReader(input), &out, fs, "/work", logging.NewNop()), &out
}

func openOpts() Options {
	return Options{Title: "Open File", Filters: FilterSet{DefaultFilters()[0]}}
}

func TestTerminalPickFile(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
		wantOK   bool
	}{
		{"relative path", "notes.md\n", "/work/notes.md", true},
		{"absolute path", "/work/notes.md\n", "/work/notes.md", true},
		{"answer without newline", "notes.md", "/work/notes.md", true},
		{"empty line cancels", "\n", "", false},
		{"eof cancels", "", "", false},
		{"missing file", "absent.txt\n", "", false},
		{"directory", "docs\n", "", false},
		{"filtered out", "tool.exe\n", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTestTerminal(t, tt.input)

			path, ok := await(t, func(cb Callback) { term.PickFile(openOpts(), cb) })

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestTerminalPickFilePrompt(t *testing.T) {
	term, out := newTestTerminal(t, "\n")

	await(t, func(cb Callback) { term.PickFile(openOpts(), cb) })

	assert.Contains(t, out.String(), "Open File")
	assert.Contains(t, out.String(), "Text Files: *.txt *.md")
	assert.Contains(t, out.String(), "path> ")
}

func TestTerminalSaveFile(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		defaultName string
		wantPath    string
		wantOK      bool
	}{
		{"typed path", "out/new.txt\n", "", "/work/out/new.txt", true},
		{"empty accepts default", "\n", "draft.md", "/work/draft.md", true},
		{"empty without default cancels", "\n", "", "", false},
		{"eof cancels even with default", "", "draft.md", "", false},
		{"directory gets default name", "docs\n", "draft.md", "/work/docs/draft.md", true},
		{"directory without default cancels", "docs\n", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, out := newTestTerminal(t, tt.input)
			opts := Options{Title: "Save File", Filters: DefaultFilters(), DefaultName: tt.defaultName}

			path, ok := await(t, func(cb Callback) { term.SaveFile(opts, cb) })

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPath, path)
			if tt.defaultName != "" {
				assert.Contains(t, out.String(), "default: "+tt.defaultName)
			} else {
				assert.NotContains(t, out.String(), "default:")
			}
		})
	}
}
