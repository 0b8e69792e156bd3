// Package utils provides argument validation shared by the bridge commands.
package utils
