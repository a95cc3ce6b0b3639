package cli_config

import "os"

// EnvVar is the name of an environment variable.
type EnvVar string

const (
	// RuntimeEnvVar sets the runtime used when neither the flag nor the project file do.
	RuntimeEnvVar EnvVar = "SERVGRAPH_RUNTIME"
	// ColorEnvVar sets the default of the `--color` flag.
	ColorEnvVar EnvVar = "SERVGRAPH_COLOR"
)

// GetOr returns the variable's value, or defaultValue if it is unset or empty.
func (s EnvVar) GetOr(defaultValue string) string {
	if value := os.Getenv(string(s)); value != "" {
		return value
	}
	return defaultValue
}
