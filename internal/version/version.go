// Package version holds build information, set with -ldflags at release time:
//
//	go build -ldflags "-X github.com/justyntemme/sneaky-t/internal/version.GitRelease=v0.1.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	// GitRelease is the release tag
	GitRelease = "dev"
	// GitCommit is the commit hash
	GitCommit = "unknown"
	// GitCommitDate is the commit date
	GitCommitDate = "unknown"
	// GoInfo is the Go toolchain and platform
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)
