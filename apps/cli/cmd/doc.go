// Package cmd implements the wave CLI commands using Cobra.
//
// Available commands:
//   - get, post, put, patch, delete, head, options: Send an ad hoc request
//   - collection (c), or the root -c flag: Run a request from a collection
//   - list: Show collections or the requests in one collection
//   - validate: Check collection files without sending anything
//   - init: Create .wave/example.yaml and a config file
//   - version: Show wave version information
//
// Every command returns its error to Execute, which prints it with a
// suggestion and exits with the matching code from exitcodes.go.
package cmd
