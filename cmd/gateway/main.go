// The gateway command runs a single-hop HTTP proxy for chat completion
// requests.
//
// It normalizes inbound requests, forwards them to a LiteLLM-compatible
// backend, and translates backend failures into stable client-facing
// error responses.
//
// Usage:
//
//	# Start server with default configuration
//	gateway run
//
//	# Start with custom configuration file
//	gateway run --config /path/to/config.yaml
//
//	# Override the backend URL
//	gateway run --backend-url http://localhost:4000
//
//	# Show version information
//	gateway version
package main

func main() {
	Execute()
}
