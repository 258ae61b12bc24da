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

func TestCreateFolderTool_ValidateInput(t *testing.T) {
	tool := &CreateFolderTool{}
	state := NewBasicState(context.TODO())

	params, _ := json.Marshal(CreateFolderInput{Path: "/tmp/whatever"})
	assert.NoError(t, tool.ValidateInput(state, string(params)))

	params, _ = json.Marshal(CreateFolderInput{})
	assert.Error(t, tool.ValidateInput(state, string(params)))
}

func TestCreateFolderTool_Execute(t *testing.T) {
	tool := &CreateFolderTool{}
	state := NewBasicState(context.TODO())
	path := filepath.Join(t.TempDir(), "a", "b", "c")

	params, _ := json.Marshal(CreateFolderInput{Path: path})
	result := tool.Execute(context.Background(), state, string(params))
	require.False(t, result.IsError())
	assert.Contains(t, result.GetResult(), "has been created")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateFolderTool_ExecuteExisting(t *testing.T) {
	tool := &CreateFolderTool{}
	state := NewBasicState(context.TODO())
	path := t.TempDir()

	params, _ := json.Marshal(CreateFolderInput{Path: path})
	result := tool.Execute(context.Background(), state, string(params))
	require.False(t, result.IsError())
	assert.Contains(t, result.GetResult(), "already exists")
}

func TestCreateFolderTool_ExecutePathIsFile(t *testing.T) {
	tool := &CreateFolderTool{}
	state := NewBasicState(context.TODO())
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	params, _ := json.Marshal(CreateFolderInput{Path: path})
	result := tool.Execute(context.Background(), state, string(params))
	assert.True(t, result.IsError())
	assert.Contains(t, result.GetError(), "not a folder")
}
