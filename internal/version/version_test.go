package version

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubRelease(t *testing.T, tag string, err error) {
	t.Helper()
	orig := latestReleaseTag
	latestReleaseTag = func(context.Context) (string, error) {
		return tag, err
	}
	t.Cleanup(func() { latestReleaseTag = orig })
}

func TestGetVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		tag     string
		err     error
		want    string
	}{
		{name: "release build", version: "v0.3.0", tag: "v0.4.0", want: "v0.3.0"},
		{name: "local build", version: versionLocal, tag: "v0.4.0", want: "v0.4.0-local"},
		{name: "local build prerelease tag", version: versionLocal, tag: "v0.4.0-rc1", want: "v0.4.0-local"},
		{name: "lookup failure", version: versionLocal, err: errors.New("offline"), want: versionLocal},
		{name: "no tag", version: versionLocal, want: versionLocal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubRelease(t, tt.tag, tt.err)
			orig := Version
			Version = tt.version
			t.Cleanup(func() { Version = orig })

			assert.Equal(t, tt.want, GetVersion(context.Background()))
		})
	}
}
