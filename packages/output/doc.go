// Package output renders responses, dry-run requests and errors for the
// terminal.
//
// JSON bodies are detected with gjson and pretty-printed with tidwall/pretty;
// everything else is printed as received. Colors come from fatih/color and
// are dropped when the formatter is built with WithNoColor or when stdout is
// not a terminal.
package output
