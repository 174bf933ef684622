// Package config loads the game configuration from an HCL file, applies
// defaults and validates the result. Command-line flags are layered on top by
// the cli package.
package config
