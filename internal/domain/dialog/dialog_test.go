package dialog

import (
	"testing"
	"time"
)

type answer struct {
	path string
	ok   bool
}

// await runs a driver call and waits for its callback.
func await(t *testing.T, call func(Callback)) (string, bool) {
	t.Helper()
	ch := make(chan answer, 1)
	call(func(path string, ok bool) { ch <- answer{path, ok} })
	select {
	case a := <-ch:
		return a.path, a.ok
	case <-time.After(2 * time.Second):
		t.Fatal("dialog callback never fired")
		return "", false
	}
}
