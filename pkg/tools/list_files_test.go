package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for rel, size := range map[string]int{
		"a.txt":       10,
		"sub/b.txt":   20,
		".DS_Store":   4096,
		"sub/.hidden": 1,
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	}
	return root
}

func TestListFilesTool_Name(t *testing.T) {
	tool := &ListFilesTool{}
	assert.Equal(t, "list_files", tool.Name())
}

func TestListFilesTool_GenerateSchema(t *testing.T) {
	tool := &ListFilesTool{}
	assert.NotNil(t, tool.GenerateSchema())
}

func TestListFilesTool_ValidateInput(t *testing.T) {
	tool := &ListFilesTool{}
	state := NewBasicState(context.TODO())
	root := makeTree(t)

	params, _ := json.Marshal(ListFilesInput{Directory: root})
	assert.NoError(t, tool.ValidateInput(state, string(params)))

	// missing directory
	params, _ = json.Marshal(ListFilesInput{})
	assert.Error(t, tool.ValidateInput(state, string(params)))

	// non-existent directory
	params, _ = json.Marshal(ListFilesInput{Directory: filepath.Join(root, "missing")})
	assert.Error(t, tool.ValidateInput(state, string(params)))

	// file instead of directory
	params, _ = json.Marshal(ListFilesInput{Directory: filepath.Join(root, "a.txt")})
	assert.Error(t, tool.ValidateInput(state, string(params)))

	// bad pattern
	params, _ = json.Marshal(ListFilesInput{Directory: root, Pattern: "[unclosed"})
	assert.Error(t, tool.ValidateInput(state, string(params)))

	assert.Error(t, tool.ValidateInput(state, "not json"))
}

func TestListFilesTool_Execute(t *testing.T) {
	tool := &ListFilesTool{}
	state := NewBasicState(context.TODO())
	root := makeTree(t)

	params, _ := json.Marshal(ListFilesInput{Directory: root})
	result := tool.Execute(context.Background(), state, string(params))
	require.False(t, result.IsError())

	listing := result.(*ListFilesToolResult)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, listing.Files())
	assert.Equal(t, "Found 2 files:\na.txt\nsub/b.txt", result.GetResult())
}

func TestListFilesTool_ExecuteIncludeHidden(t *testing.T) {
	tool := &ListFilesTool{}
	state := NewBasicState(context.TODO())
	root := makeTree(t)

	params, _ := json.Marshal(ListFilesInput{Directory: root, IncludeHidden: true})
	result := tool.Execute(context.Background(), state, string(params))
	require.False(t, result.IsError())

	listing := result.(*ListFilesToolResult)
	assert.Equal(t, []string{".DS_Store", "a.txt", "sub/.hidden", "sub/b.txt"}, listing.Files())
}

func TestListFilesTool_ExecuteWithPattern(t *testing.T) {
	tool := &ListFilesTool{}
	state := NewBasicState(context.TODO())
	root := makeTree(t)

	params, _ := json.Marshal(ListFilesInput{Directory: root, Pattern: "sub/**"})
	result := tool.Execute(context.Background(), state, string(params))
	require.False(t, result.IsError())

	listing := result.(*ListFilesToolResult)
	assert.Equal(t, []string{"sub/b.txt"}, listing.Files())
}

func TestListFilesTool_ExecuteEmptyDirectory(t *testing.T) {
	tool := &ListFilesTool{}
	state := NewBasicState(context.TODO())

	params, _ := json.Marshal(ListFilesInput{Directory: t.TempDir()})
	result := tool.Execute(context.Background(), state, string(params))
	require.False(t, result.IsError())
	assert.Equal(t, "Found 0 files:", result.GetResult())
}

func TestListFilesTool_ExecuteInvalidDirectory(t *testing.T) {
	tool := &ListFilesTool{}
	state := NewBasicState(context.TODO())

	params, _ := json.Marshal(ListFilesInput{Directory: filepath.Join(t.TempDir(), "missing")})
	result := tool.Execute(context.Background(), state, string(params))
	assert.True(t, result.IsError())
	assert.Contains(t, result.GetError(), "does not exist")
	assert.Contains(t, result.AssistantFacing(), "<error>")
}

func TestListFilesTool_TracingKVs(t *testing.T) {
	tool := &ListFilesTool{}

	params, _ := json.Marshal(ListFilesInput{Directory: "/tmp", IncludeHidden: true})
	kvs, err := tool.TracingKVs(string(params))
	assert.NoError(t, err)
	assert.Len(t, kvs, 3)

	_, err = tool.TracingKVs("invalid json")
	assert.Error(t, err)
}
