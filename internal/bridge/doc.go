// Package bridge implements the command bridge between the web front-end and
// the operating system.
//
// Four commands are exposed:
//   - open_file_dialog: native open dialog, returns a path or null
//   - save_file_dialog: native save dialog, optional default_name, returns a path or null
//   - read_file_content: file_path → text
//   - write_file_content: file_path, content → null
//
// Dialog drivers answer through callbacks. Each dialog command creates a
// one-shot handoff, hands its resolver to the driver and blocks until the
// driver calls it. Nothing is shared between invocations.
//
// Transports (HTTP, WebSocket, CLI) call Invoke with a command name and a
// decoded argument object; they never reach into the operations directly.
package bridge
