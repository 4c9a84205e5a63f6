// Package http is the transport behind wave: it sends a fully built request
// and hands back status, headers and body.
//
// It wraps the standard library's http package with:
//   - Configurable timeouts, redirects, TLS verification and proxy
//   - Default headers that request headers override
//   - Method parsing for the methods wave accepts
//   - A deterministic StubTransport for tests
package http
