// Package env expands ${...} placeholders in collection and command-line
// strings.
//
// It provides functionality for:
//   - Variable interpolation using ${name} against a collection's variables
//   - Environment lookups using ${env:NAME}
//   - Snapshotting the process environment once per invocation
//   - Loading .env files that sit underneath the process environment
package env
