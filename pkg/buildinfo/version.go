// Package buildinfo exposes the version stamped into the chartnote binary.
//
// Values are injected with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/chartnote/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/chartnote/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/chartnote/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the multi-line build description.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", Version, Commit, Date)
}

// UserAgent identifies chartnote when fetching remote annotation images.
func UserAgent() string {
	return "chartnote/" + Version
}
