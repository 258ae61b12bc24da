package version

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.2.3", GitCommit: "abc123", GoVersion: "go1.24.0", Platform: "linux/amd64"}
	s := info.String()
	assert.Contains(t, s, "1.2.3")
	assert.Contains(t, s, "abc123")
	assert.Contains(t, s, "linux/amd64")
}

func TestInfoJSON(t *testing.T) {
	info := Info{Version: "1.2.3", GitCommit: "abc123", GoVersion: "go1.24.0", Platform: "linux/amd64"}
	out, err := info.JSON()
	require.NoError(t, err)

	var decoded Info
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, info, decoded)
}
