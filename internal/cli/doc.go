// Package cli parses command-line arguments into a validated config.Config
// and maps failures to process exit codes.
package cli
