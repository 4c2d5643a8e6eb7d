// Package constant holds identifiers shared across clipwave.
package constant

import _ "embed"

const (
	// Clipwave names the binary, the config file, the keyring service and the env prefix.
	Clipwave = "clipwave"

	Version = "0.3.0"

	// UserAgent is sent with every request to the ClipWave backend.
	UserAgent = Clipwave + "/" + Version + " (terminal)"
)

// Roles a ClipWave account can hold.
const (
	RoleUser    = "user"
	RoleCreator = "creator"
)

// Build metadata, set with -ldflags "-X github.com/clipwave/clipwave/constant.Revision=..."
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo is printed above the root command help.
//
//go:embed ascii.txt
var AsciiArtLogo string

// GOOS values clipwave has platform specific behavior for.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
