package dialog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilters(t *testing.T) {
	filters := DefaultFilters()

	require.Len(t, filters, 2)
	assert.Equal(t, "Text Files", filters[0].Name)
	assert.Equal(t, TextExtensions, filters[0].Extensions)
	assert.Equal(t, "All Files", filters[1].Name)
	assert.Equal(t, []string{"*"}, filters[1].Patterns())
	assert.NoError(t, filters.Validate())

	// Mutating the returned set must not leak into the next call.
	filters[0].Extensions[0] = "exe"
	assert.Equal(t, "txt", DefaultFilters()[0].Extensions[0])
}

func TestFilterPatterns(t *testing.T) {
	f := Filter{Name: "Mixed", Extensions: []string{"go", ".md", " rs ", "*"}}
	assert.Equal(t, []string{"*.go", "*.md", "*.rs", "*"}, f.Patterns())
}

func TestFilterMatch(t *testing.T) {
	text := DefaultFilters()[0]

	tests := []struct {
		path string
		want bool
	}{
		{"/home/u/notes.txt", true},
		{"/home/u/README.MD", true},
		{"main.go", true},
		{"/src/app/component.tsx", true},
		{"/bin/tool.exe", false},
		{"/home/u/Makefile", false},
		{"/home/u/archive.tar.gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, text.Match(tt.path))
		})
	}
}

func TestFilterSetAllows(t *testing.T) {
	assert.True(t, DefaultFilters().Allows("/bin/tool.exe"), "All Files admits anything")
	assert.False(t, FilterSet{DefaultFilters()[0]}.Allows("/bin/tool.exe"))
	assert.True(t, FilterSet{}.Allows("/anything"))
}

func TestFilterSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     FilterSet
		wantErr bool
	}{
		{"valid", FilterSet{{Name: "Go", Extensions: []string{"go"}}}, false},
		{"missing name", FilterSet{{Extensions: []string{"go"}}}, true},
		{"no extensions", FilterSet{{Name: "Empty"}}, true},
		{"bad pattern", FilterSet{{Name: "Broken", Extensions: []string{"[go"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseFilters(t *testing.T) {
	yamlDoc := []byte(`
filters:
  - name: Markdown
    extensions: [md, markdown]
  - name: All Files
    extensions: ["*"]
`)
	tomlDoc := []byte(`
[[filters]]
name = "Markdown"
extensions = ["md", "markdown"]

[[filters]]
name = "All Files"
extensions = ["*"]
`)
	want := FilterSet{
		{Name: "Markdown", Extensions: []string{"md", "markdown"}},
		{Name: "All Files", Extensions: []string{"*"}},
	}

	got, err := ParseFilters(".yaml", yamlDoc)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseFilters(".TOML", tomlDoc)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseFiltersErrors(t *testing.T) {
	_, err := ParseFilters(".json", []byte(`{}`))
	assert.Error(t, err)

	_, err = ParseFilters(".yaml", []byte("filters: []\n"))
	assert.Error(t, err)

	_, err = ParseFilters(".yml", []byte("filters: [{name: \"\", extensions: [md]}]\n"))
	assert.Error(t, err)

	_, err = ParseFilters(".toml", []byte("filters = ["))
	assert.Error(t, err)
}

func TestLoadFilters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filters.yml")
	require.NoError(t, os.WriteFile(path, []byte("filters:\n  - name: Go\n    extensions: [go]\n"), 0o644))

	got, err := LoadFilters(path)
	require.NoError(t, err)
	assert.Equal(t, FilterSet{{Name: "Go", Extensions: []string{"go"}}}, got)

	_, err = LoadFilters(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
