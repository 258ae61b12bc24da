package tools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStatisticsTool_Name(t *testing.T) {
	tool := &FileStatisticsTool{}
	assert.Equal(t, "file_statistics", tool.Name())
}

func TestFileStatisticsTool_ValidateInput(t *testing.T) {
	tool := &FileStatisticsTool{}
	state := NewBasicState(context.TODO())

	params, _ := json.Marshal(FileStatisticsInput{Directory: t.TempDir()})
	assert.NoError(t, tool.ValidateInput(state, string(params)))

	params, _ = json.Marshal(FileStatisticsInput{})
	assert.Error(t, tool.ValidateInput(state, string(params)))

	assert.Error(t, tool.ValidateInput(state, "not json"))
}

func TestFileStatisticsTool_Execute(t *testing.T) {
	tool := &FileStatisticsTool{}
	state := NewBasicState(context.TODO())
	root := makeTree(t)

	params, _ := json.Marshal(FileStatisticsInput{Directory: root})
	result := tool.Execute(context.Background(), state, string(params))
	require.False(t, result.IsError())

	stats := result.(*FileStatisticsToolResult).Stats()
	assert.Equal(t, uint64(3), stats.Files)
	assert.Equal(t, uint64(1), stats.Folders)
	assert.Equal(t, uint64(4127), stats.TotalSize)

	assert.Equal(t,
		"total number of files: 3\ntotal number of folders: 1\ntotal size of all files: 4127",
		result.GetResult())
}

func TestFileStatisticsTool_ExecuteEmptyDirectory(t *testing.T) {
	tool := &FileStatisticsTool{}
	state := NewBasicState(context.TODO())

	params, _ := json.Marshal(FileStatisticsInput{Directory: t.TempDir()})
	result := tool.Execute(context.Background(), state, string(params))
	require.False(t, result.IsError())
	assert.Equal(t,
		"total number of files: 0\ntotal number of folders: 0\ntotal size of all files: 0",
		result.GetResult())
}

func TestFileStatisticsTool_ExecuteInvalidDirectory(t *testing.T) {
	tool := &FileStatisticsTool{}
	state := NewBasicState(context.TODO())

	params, _ := json.Marshal(FileStatisticsInput{Directory: filepath.Join(t.TempDir(), "nope")})
	result := tool.Execute(context.Background(), state, string(params))
	assert.True(t, result.IsError())
}

func TestFileStatisticsTool_TracingKVs(t *testing.T) {
	tool := &FileStatisticsTool{}

	params, _ := json.Marshal(FileStatisticsInput{Directory: "/tmp"})
	kvs, err := tool.TracingKVs(string(params))
	assert.NoError(t, err)
	assert.Len(t, kvs, 1)
}
