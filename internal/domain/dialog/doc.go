// Package dialog presents file pickers to the user.
//
// Drivers are callback-driven: PickFile and SaveFile return immediately and
// invoke the supplied Callback exactly once when the user has answered. Callers
// that need a synchronous answer wait on their own completion signal.
//
// Drivers:
//   - Native: OS dialogs (Win32, Cocoa, zenity/kdialog on Linux), behind a
//     circuit breaker so a broken toolkit resolves to "no path" quickly
//   - Terminal: prompt-and-read fallback for sessions without a display
//   - Headless: scripted answers for CI and tests
//
// Filter sets restrict what the dialogs show. The default set is the text and
// source extensions an editor front-end opens, plus "All Files".
package dialog
