// Package common holds helpers shared by the services.
//
// It detects other running instances of the current executable so that two
// actuators never drive the same LED.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
