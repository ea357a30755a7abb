// Package version exposes build metadata for the disk-led binaries.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags
// (-X github.com/oshokin/disk-led/internal/version.Version=...).
package version
