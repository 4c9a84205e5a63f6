// Package config loads wave's settings.
//
// Settings come from a JSON config file (an explicit path, or the first of
// ConfigFilenames found in the working directory) overlaid with WAVE_*
// environment variables. Command-line flags are merged on top by the CLI.
package config
