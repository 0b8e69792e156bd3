/*
Package resilience provides circuit breaker implementation for graceful degradation.

# Overview

This package implements the circuit breaker pattern so that a backend which keeps
failing (for example a dialog toolkit with no display to draw on) is skipped quickly
instead of being retried on every call.

# Features

- Three-state circuit breaker (Closed, Open, Half-Open)
- Consecutive-failure threshold and cooldown
- A single probe call while half-open
- State change callbacks for logging

# Usage

	// Create a circuit breaker
	breaker := resilience.New("dialog", resilience.Settings{
		Threshold: 3,
		Cooldown:  30 * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker changed state", zap.String("name", name), zap.Stringer("to", to))
		},
	})

	// Execute call through breaker
	err := breaker.Execute(func() error {
		return show()
	})

# States

- Closed: Normal operation, requests pass through
- Open: Service unavailable, requests fail immediately
- Half-Open: Testing if service recovered, limited requests allowed

# Pattern

The circuit breaker transitions between states based on success/failure rates:

	Closed --[failures]-> Open --[cooldown]-> Half-Open --[success]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
