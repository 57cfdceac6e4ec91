// Package version exposes the build version of serviceimpact.
package version

// version is set at build time with
// -ldflags "-X github.com/rshade/serviceimpact/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Overridden by the linker.
var version = "dev"

// GetVersion returns the build version, "dev" for local builds.
func GetVersion() string {
	return version
}
