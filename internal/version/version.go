package version

import (
	"context"
	"strings"
	"time"

	"github.com/google/go-github/github"
)

const (
	versionLocal = "local"

	owner = "harry-hov"
	repo  = "debughover"

	lookupTimeout = 3 * time.Second
)

// Version is set at link time for release builds.
var Version = versionLocal

var latestReleaseTag = func(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	latest, _, err := github.
		NewClient(nil).
		Repositories.
		GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return "", err
	}

	if latest.TagName == nil {
		return "", nil
	}

	return *latest.TagName, nil
}

// GetVersion returns Version, or for local builds the latest release tag
// with a "-local" suffix when it can be looked up.
func GetVersion(ctx context.Context) string {
	if Version != versionLocal {
		return Version
	}

	tag, err := latestReleaseTag(ctx)
	if err != nil || tag == "" {
		return Version
	}

	parts := strings.Split(tag, "-")
	return parts[0] + "-" + versionLocal
}
