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

func TestMoveFileTool_ValidateInput(t *testing.T) {
	tool := &MoveFileTool{}
	state := NewBasicState(context.TODO())

	params, _ := json.Marshal(MoveFileInput{Source: "a", Destination: "b"})
	assert.NoError(t, tool.ValidateInput(state, string(params)))

	params, _ = json.Marshal(MoveFileInput{Destination: "b"})
	assert.Error(t, tool.ValidateInput(state, string(params)))

	params, _ = json.Marshal(MoveFileInput{Source: "a"})
	assert.Error(t, tool.ValidateInput(state, string(params)))
}

func TestMoveFileTool_Execute(t *testing.T) {
	tool := &MoveFileTool{}
	state := NewBasicState(context.TODO())
	root := t.TempDir()

	source := filepath.Join(root, "src.txt")
	require.NoError(t, os.WriteFile(source, []byte("payload"), 0o644))
	destination := filepath.Join(root, "nested", "dst.txt")

	params, _ := json.Marshal(MoveFileInput{Source: source, Destination: destination})
	result := tool.Execute(context.Background(), state, string(params))
	require.False(t, result.IsError())

	content, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))

	_, err = os.Stat(source)
	assert.True(t, os.IsNotExist(err))
}

func TestMoveFileTool_ExecuteMissingSource(t *testing.T) {
	tool := &MoveFileTool{}
	state := NewBasicState(context.TODO())
	root := t.TempDir()

	params, _ := json.Marshal(MoveFileInput{
		Source:      filepath.Join(root, "missing.txt"),
		Destination: filepath.Join(root, "dst.txt"),
	})
	result := tool.Execute(context.Background(), state, string(params))
	assert.True(t, result.IsError())
	assert.Contains(t, result.GetError(), "does not exist")
}

func TestMoveFileTool_ExecuteSourceIsDirectory(t *testing.T) {
	tool := &MoveFileTool{}
	state := NewBasicState(context.TODO())
	root := t.TempDir()

	params, _ := json.Marshal(MoveFileInput{
		Source:      root,
		Destination: filepath.Join(root, "dst"),
	})
	result := tool.Execute(context.Background(), state, string(params))
	assert.True(t, result.IsError())
	assert.Contains(t, result.GetError(), "directory")
}

func TestMoveFileTool_ExecuteDestinationExists(t *testing.T) {
	tool := &MoveFileTool{}
	state := NewBasicState(context.TODO())
	root := t.TempDir()

	source := filepath.Join(root, "src.txt")
	destination := filepath.Join(root, "dst.txt")
	require.NoError(t, os.WriteFile(source, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(destination, []byte("b"), 0o644))

	params, _ := json.Marshal(MoveFileInput{Source: source, Destination: destination})
	result := tool.Execute(context.Background(), state, string(params))
	assert.True(t, result.IsError())
	assert.Contains(t, result.GetError(), "already exists")

	// destination untouched
	content, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.Equal(t, "b", string(content))
}
