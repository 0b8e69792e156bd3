// Package ws serves the command bridge over a WebSocket IPC channel.
//
// Each invoke frame runs on its own goroutine, so a dialog waiting for the
// user never holds up reads or writes on the same connection. Results may
// arrive out of order and are matched to requests by id.
//
// Frame flow:
//
//	client: {"type":"invoke","id":"1","cmd":"open_file_dialog"}
//	server: {"type":"result","id":"1","ok":true,"data":"/home/u/a.txt","timestamp":...}
package ws
