// Package files reads and writes whole text files for the bridge.
//
// Reads return the file as a string and fail when the bytes are not UTF-8;
// the error names what the file looks like instead (a binary MIME type or a
// legacy charset). Writes truncate or create the target and never create
// missing parent directories.
package files
