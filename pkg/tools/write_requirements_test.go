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

func TestWriteRequirementsTool_ValidateInput(t *testing.T) {
	tool := &WriteRequirementsTool{}
	state := NewBasicState(context.TODO())

	params, _ := json.Marshal(WriteRequirementsInput{
		Path:     "requirements.txt",
		Packages: []string{"requests", "flask==2.3.0", "numpy==1.26.4"},
	})
	assert.NoError(t, tool.ValidateInput(state, string(params)))

	params, _ = json.Marshal(WriteRequirementsInput{Packages: []string{"requests"}})
	assert.Error(t, tool.ValidateInput(state, string(params)))

	params, _ = json.Marshal(WriteRequirementsInput{Path: "requirements.txt"})
	assert.Error(t, tool.ValidateInput(state, string(params)))
}

func TestWriteRequirementsTool_ValidateInputAggregatesErrors(t *testing.T) {
	tool := &WriteRequirementsTool{}
	state := NewBasicState(context.TODO())

	params, _ := json.Marshal(WriteRequirementsInput{
		Path:     "requirements.txt",
		Packages: []string{"good", "==bad", "also bad", "fine==1.0"},
	})
	err := tool.ValidateInput(state, string(params))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"==bad"`)
	assert.Contains(t, err.Error(), `"also bad"`)
	assert.NotContains(t, err.Error(), `"good"`)
}

func TestWriteRequirementsTool_Execute(t *testing.T) {
	tool := &WriteRequirementsTool{}
	state := NewBasicState(context.TODO())
	path := filepath.Join(t.TempDir(), "requirements.txt")

	params, _ := json.Marshal(WriteRequirementsInput{
		Path:     path,
		Packages: []string{"requests==2.31.0", "pyyaml"},
	})
	result := tool.Execute(context.Background(), state, string(params))
	require.False(t, result.IsError())
	assert.Contains(t, result.GetResult(), "wrote 2 requirements")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "requests==2.31.0\npyyaml\n", string(content))
}

func TestWriteRequirementsTool_ExecuteInvalidEntryWritesNothing(t *testing.T) {
	tool := &WriteRequirementsTool{}
	state := NewBasicState(context.TODO())
	path := filepath.Join(t.TempDir(), "requirements.txt")

	params, _ := json.Marshal(WriteRequirementsInput{
		Path:     path,
		Packages: []string{"requests", "not a package"},
	})
	result := tool.Execute(context.Background(), state, string(params))
	assert.True(t, result.IsError())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
