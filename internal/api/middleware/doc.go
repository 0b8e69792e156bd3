// Package middleware holds the gin middleware in front of the bridge
// transports: CORS for the front-end origin and a per-client rate limit.
package middleware
