/*
Package tracing correlates log lines that belong to one HTTP request.

# Overview

Every request gets a request ID, taken from the X-Request-ID header when the
front-end supplies one and generated otherwise. The ID is stored in the
request context, echoed in the response header and attached to the access log
line written when the request finishes.

# Usage

	router.Use(tracing.HTTPMiddleware(logger))

	// In a handler
	logger.Debug("Invoking command", zap.String("request_id", tracing.RequestID(ctx)))

# Log Levels

- 5xx responses: Error
- 4xx responses: Info
- everything else: Debug
*/
package tracing
