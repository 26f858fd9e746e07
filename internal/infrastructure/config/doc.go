// Package config loads and validates Weathervane configuration.
//
// Configuration comes from a YAML file with defaults applied first and
// environment variables applied last. Both the store and the averages
// services share one file; each binary reads its own section.
package config
