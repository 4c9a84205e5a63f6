package env

import (
	"fmt"

	"github.com/joho/godotenv"
)

// LoadDotEnv parses a .env file and returns its key-value pairs.
// Supports KEY=value, quoted values, export prefixes and # comments.
// Nothing is exported to the OS environment.
func LoadDotEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read env file %s: %w", path, err)
	}
	return vars, nil
}

// WithDotEnv layers the variables of a .env file underneath base, so values
// already present in base win.
func WithDotEnv(base LookupFunc, path string) (LookupFunc, error) {
	vars, err := LoadDotEnv(path)
	if err != nil {
		return nil, err
	}
	return Chain(base, MapLookup(vars)), nil
}
