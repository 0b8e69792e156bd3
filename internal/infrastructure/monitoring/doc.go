// Package monitoring exposes Prometheus metrics for the bridge backend.
//
// Metrics live on a private registry so several servers (and tests) can run in
// one process. Collected series:
//   - bridge_http_requests_total, bridge_http_request_duration_seconds
//   - bridge_command_calls_total, bridge_command_duration_seconds, bridge_command_errors_total
//   - bridge_ws_connections, bridge_ws_messages_total
//   - bridge_uptime_seconds, plus Go runtime and process collectors
//
// Example Usage:
//
//	metrics := monitoring.NewMetrics()
//	router.Use(monitoring.Middleware(metrics))
//	router.GET("/metrics", gin.WrapH(metrics.Handler()))
package monitoring
