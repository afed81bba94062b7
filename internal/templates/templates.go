// Package templates contains the files written by `dclean init`.
package templates

import (
	_ "embed"
)

//go:embed config.template

// ConfigYAML is the commented sample config.yaml.
var ConfigYAML []byte

//go:embed env.template

// EnvFile is the .env template listing the DCLEAN_ overrides.
var EnvFile []byte
