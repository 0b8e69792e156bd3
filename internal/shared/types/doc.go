// Package types provides the wire types shared by the bridge transports.
//
// Request Types:
//   - InvokeRequest: one command call with its arguments
//   - Frame: a message on the IPC WebSocket
//
// Response Types:
//   - InvokeResponse: the outcome of one command call
//
// Example Usage:
//
//	resp := types.Success(req.ID, path)
//	if err != nil {
//	    resp = types.Failure(req.ID, err)
//	}
package types
