// Package main is the entry point for the desktop bridge backend.
//
// The bridge gives a web front-end running in a desktop shell four native
// capabilities: open and save file dialogs, and reading and writing text
// files.
//
// Architecture:
//
//	Frontend (webview) → HTTP /invoke/:command → Bridge → dialog driver
//	                   → WebSocket /ipc        →        → file store
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for a loopback-only backend
//
// Usage:
//
//	# Serve the bridge
//	./server serve -port 1430 -dialog native
//
//	# Run one command in-process and print the JSON response
//	./server invoke save_file_dialog '{"defaultName":"notes.md"}'
//
//	# List commands
//	./server commands
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
