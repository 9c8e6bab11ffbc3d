// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file, overridden from CRYPTOMORPH_* environment variables
// and validated before use. Both the CLI and the REST API build their logger, key catalog
// and RSA engine from the structures defined here.
package config
