// Package logging provides structured logging using uber/zap.
//
// Two output modes:
//   - Production: JSON lines for log collectors
//   - Development: coloured console output
//
// Bridge components take a *Logger and derive named children, so every line
// carries the component that wrote it ("bridge", "dialog", "ipc", ...).
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Named("bridge").Info("command finished", zap.String("cmd", "read_file_content"))
package logging
