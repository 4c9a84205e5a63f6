// Package params classifies the free-form tokens that follow the method and
// URL on the wave command line.
//
// A token is a header when a ':' appears before any '=' (Authorization:token)
// and a body field when an '=' appears before any ':' (name=alice). Values are
// split at the first separator only, so name=a:b is a field whose value is
// "a:b".
package params
