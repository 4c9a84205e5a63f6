// Package builder merges a collection template with command-line overrides
// into one ResolvedRequest.
//
// Merge order:
//  1. Start from the template's method, URL, headers and body, if any.
//     Command-line method and URL replace the template's.
//  2. Resolve every placeholder through an env.Resolver.
//  3. Apply command-line headers (case-insensitive override or append).
//  4. Apply command-line body fields (case-sensitive override or append).
//  5. Pick the encoding (--form, then the template's, then JSON), serialize
//     the body and add a Content-Type unless one is already set.
//
// A ResolvedRequest is immutable: every accessor returns a copy.
package builder
