// Package http serves the command bridge over plain HTTP: one request per
// command invocation, plus command discovery, health and front-end logs.
package http
