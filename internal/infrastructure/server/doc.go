// Package server assembles the desktop bridge: it selects the dialog backend,
// builds the command bridge and serves it over HTTP and WebSocket IPC.
package server
