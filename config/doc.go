// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the tracing configuration structure
// including the root logger name, severity level, optional log file path and
// the metrics buffer size.
package config
