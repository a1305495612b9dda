package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "dev", GetVersion())
	assert.Equal(t, "unknown", GetGitCommit())
	assert.Equal(t, "unknown", GetBuildDate())
	assert.Equal(t, "dev (commit unknown, built unknown)", String())
}

func TestString_UsesLinkedValues(t *testing.T) {
	oldVersion, oldCommit, oldDate := version, gitCommit, buildDate
	t.Cleanup(func() { version, gitCommit, buildDate = oldVersion, oldCommit, oldDate })

	version, gitCommit, buildDate = "v1.2.3", "abc1234", "2026-01-02"
	assert.Equal(t, "v1.2.3 (commit abc1234, built 2026-01-02)", String())
}
