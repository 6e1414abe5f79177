// Package audit provides a client for the external audit service API.
//
// The audit service ingests financial documents, scores them against
// regulatory rule sets, and exposes dashboard aggregates, a compliance
// analysis, and a review queue over HTTP/JSON. This package implements
// the transport and the typed per-operation methods; it holds no state
// between calls.
//
// # Architecture
//
//   - Client: the HTTP transport plus one method per remote operation
//   - Types: wire models (documents, stats, compliance, upload outcomes)
//   - API: interface consumed by higher layers, substitutable in tests
//   - Errors: TransportError, ValidationError and DecodeError taxonomy
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := audit.NewClient(
//		"https://audit.example.com",
//		"your-api-key",
//		logger,
//		audit.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	stats, err := client.FetchStats(ctx)
//
// # Error Handling
//
// Every failure is one of three types:
//
//   - TransportError: non-2xx status or network-level failure; the
//     status code is 0 when no HTTP response was received
//   - ValidationError: malformed local input (empty flag reason,
//     unsupported file extension) rejected before any network call
//   - DecodeError: the response body was not the expected JSON
//
// No method retries automatically; each call is a single attempt and
// errors propagate unchanged to the caller.
package audit
