package config

import (
	"fmt"
	"os"
	"strings"
)

// ValueRef is an indirection for secret-ish config values. Source selects
// how the value is resolved:
//
//	embedded - Value holds the literal
//	env      - Value names an environment variable
//	file     - Value is a path whose contents are the value
type ValueRef struct {
	Source string `yaml:"source"`
	Value  string `yaml:"value"`
}

// Resolve loads the referenced value. An empty Source means embedded.
func (r ValueRef) Resolve() (string, error) {
	switch r.Source {
	case "", "embedded":
		return r.Value, nil
	case "env":
		v, ok := os.LookupEnv(r.Value)
		if !ok {
			return "", fmt.Errorf("environment variable %q is not set", r.Value)
		}
		return v, nil
	case "file":
		data, err := os.ReadFile(r.Value)
		if err != nil {
			return "", fmt.Errorf("reading value file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	return "", fmt.Errorf("unknown value source %q", r.Source)
}
