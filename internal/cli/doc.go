// Package cli turns command-line arguments, TASKGRID_* environment
// variables and an optional config file into a validated app.Config.
package cli
