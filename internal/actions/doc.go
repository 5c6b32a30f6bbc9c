// Package actions turns declared tasks from the config model into runnable
// task definitions.
package actions
