// Package config defines the format-agnostic task file model and the Loader
// interface implemented by each supported file format.
//
// A config.Model is only a description of tasks. Turning it into runnable
// task definitions is the job of the actions package; format details stay in
// the loader packages (hcl, yamlconf).
package config
