// Package config defines the settings shared by diskled-sampler and
// diskled-actuator and provides helpers to load, validate and save them.
//
// Settings come from an optional YAML file and are then overridden by
// DISKLED_* environment variables.
package config
