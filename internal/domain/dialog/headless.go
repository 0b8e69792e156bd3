package dialog

import (
	"sync"
	"time"
)

// Answer is a scripted reply for the headless driver.
type Answer struct {
	Path   string
	Cancel bool

	// Delay postpones the callback.
	Delay time.Duration
	// Release, when set, holds the callback until the channel is closed.
	Release <-chan struct{}
}

// Request records a dialog the headless driver was asked to show.
type Request struct {
	Kind    Kind
	Options Options
}

// Headless answers dialogs from a queue and cancels once the queue is empty.
// Callbacks always fire on a separate goroutine, like a real dialog toolkit.
type Headless struct {
	mu       sync.Mutex
	answers  []Answer
	requests []Request
}

// NewHeadless creates a headless driver with optional queued answers.
func NewHeadless(answers ...Answer) *Headless {
	return &Headless{answers: answers}
}

// Enqueue appends answers to the queue.
func (h *Headless) Enqueue(answers ...Answer) {
	h.mu.Lock()
	h.answers = append(h.answers, answers...)
	h.mu.Unlock()
}

// Requests returns the dialogs shown so far, oldest first.
func (h *Headless) Requests() []Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Request, len(h.requests))
	copy(out, h.requests)
	return out
}

// PickFile answers an open dialog.
func (h *Headless) PickFile(opts Options, done Callback) {
	h.reply(KindOpen, opts, done)
}

// SaveFile answers a save dialog.
func (h *Headless) SaveFile(opts Options, done Callback) {
	h.reply(KindSave, opts, done)
}

func (h *Headless) reply(kind Kind, opts Options, done Callback) {
	h.mu.Lock()
	h.requests = append(h.requests, Request{Kind: kind, Options: opts})
	answer := Answer{Cancel: true}
	if len(h.answers) > 0 {
		answer = h.answers[0]
		h.answers = h.answers[1:]
	}
	h.mu.Unlock()

	go func() {
		if answer.Release != nil {
			<-answer.Release
		}
		if answer.Delay > 0 {
			time.Sleep(answer.Delay)
		}
		if answer.Cancel || answer.Path == "" {
			done("", false)
			return
		}
		done(answer.Path, true)
	}()
}
