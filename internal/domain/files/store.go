package files

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
)

var (
	// ErrNotText is returned when a file's bytes are not valid UTF-8 text.
	ErrNotText = errors.New("not valid UTF-8 text")
	// ErrTooLarge is returned when a file exceeds the configured read limit.
	ErrTooLarge = errors.New("file exceeds read limit")
	// ErrEmptyPath is returned when no path is given.
	ErrEmptyPath = errors.New("path is empty")
)

const fileMode os.FileMode = 0o644

// Store reads and writes text files on a filesystem.
type Store struct {
	fs           afero.Fs
	maxReadBytes int64
	logger       *logging.Logger
}

// NewStore creates a store. maxReadBytes <= 0 disables the read limit.
func NewStore(fs afero.Fs, maxReadBytes int64, logger *logging.Logger) *Store {
	return &Store{
		fs:           fs,
		maxReadBytes: maxReadBytes,
		logger:       logger.Named("files"),
	}
}

// NewOSStore creates a store on the host filesystem.
func NewOSStore(maxReadBytes int64, logger *logging.Logger) *Store {
	return NewStore(afero.NewOsFs(), maxReadBytes, logger)
}

// Read returns the entire file at path as text.
func (s *Store) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("failed to read file: %w", ErrEmptyPath)
	}

	if s.maxReadBytes > 0 {
		info, err := s.fs.Stat(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		if info.Size() > s.maxReadBytes {
			return "", fmt.Errorf("failed to read file: %s is %d bytes: %w (%d bytes)",
				path, info.Size(), ErrTooLarge, s.maxReadBytes)
		}
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if !utf8.Valid(data) {
		detected := describeContent(data)
		s.logger.Debug("Rejected non-text file", zap.String("path", path), zap.String("detected", detected))
		return "", fmt.Errorf("failed to read file: %s: %w (detected %s)", path, ErrNotText, detected)
	}

	return string(data), nil
}

// Write replaces the file at path with content, creating it if needed.
func (s *Store) Write(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("failed to write file: %w", ErrEmptyPath)
	}

	if err := afero.WriteFile(s.fs, path, []byte(content), fileMode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Wrote file", zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}

// describeContent names what invalid UTF-8 bytes most likely are: a binary
// MIME type, or for text in another encoding, its charset.
func describeContent(data []byte) string {
	mtype := mimetype.Detect(data)
	if !isTextMIME(mtype) {
		return mtype.String()
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil || result.Charset == "" {
		return mtype.String()
	}
	return "charset " + strings.ToLower(result.Charset)
}

func isTextMIME(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
