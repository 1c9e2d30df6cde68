// Package version is used by the release process to add an
// informative version string to some commands.
package version

import (
	"fmt"
	"runtime"
	"time"
)

// These strings will be overwritten by the linker during the release process
// (-ldflags "-X github.com/els0r/gostream/pkg/version.GitSHA=...")
var (
	BuildTime = ""
	GitSHA    = ""
	SemVer    = "devel"
)

// Short returns the semantic version (or "devel" for local builds)
func Short() string {
	return SemVer
}

// Version returns a newline-terminated string describing the current
// version of the build.
func Version() string {
	if GitSHA == "" {
		return SemVer + "\n"
	}

	buildTime := BuildTime
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		buildTime = t.In(time.UTC).Format(time.Stamp + " 2006 UTC")
	}

	return fmt.Sprintf(`    Version:        %s
    Build time:     %s
    Git hash:       %s
    Go versions:    %s
`, SemVer,
		buildTime,
		GitSHA,
		runtime.Version(),
	)
}
