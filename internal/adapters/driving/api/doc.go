// Package api is the HTTP driving adapter.
//
// Routes:
//
//   - POST /chat     {"query": "..."} -> {"response": "...", "prompt": "..."}
//   - GET  /healthz  liveness probe
//   - GET  /metrics  Prometheus exposition
//
// Every response carries an X-Request-ID header, echoed from the request
// when present. Error bodies are {"error": "..."} and never include internal
// details.
package api
