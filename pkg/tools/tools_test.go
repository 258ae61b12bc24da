package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
)

// memoryRecorder captures invocations for assertions
type memoryRecorder struct {
	invocations []tooltypes.Invocation
}

func (r *memoryRecorder) Record(_ context.Context, inv tooltypes.Invocation) error {
	r.invocations = append(r.invocations, inv)
	return nil
}

func TestGetMainTools(t *testing.T) {
	mainTools := GetMainTools()
	require.Len(t, mainTools, len(defaultToolNames))

	for i, tool := range mainTools {
		assert.Equal(t, defaultToolNames[i], tool.Name())
		assert.NotEmpty(t, tool.Description())
		assert.NotNil(t, tool.GenerateSchema())
	}
}

func TestValidateTools(t *testing.T) {
	assert.NoError(t, ValidateTools([]string{"list_files", "browser_navigate"}))
	assert.Error(t, ValidateTools([]string{"list_files", "no_such_tool"}))
}

func TestRunTool(t *testing.T) {
	recorder := &memoryRecorder{}
	state := NewBasicState(context.TODO(), WithRecorder(recorder))
	root := makeTree(t)

	params, _ := json.Marshal(ListFilesInput{Directory: root})
	result := RunTool(context.Background(), state, "list_files", string(params))
	require.False(t, result.IsError())

	require.Len(t, recorder.invocations, 1)
	inv := recorder.invocations[0]
	assert.Equal(t, "list_files", inv.Tool)
	assert.True(t, inv.Success)
	assert.NotEmpty(t, inv.ID)
	assert.Empty(t, inv.Error)
}

func TestRunToolUnknownTool(t *testing.T) {
	state := NewBasicState(context.TODO())

	result := RunTool(context.Background(), state, "no_such_tool", "{}")
	assert.True(t, result.IsError())
	assert.Contains(t, result.GetError(), "not found")
}

func TestRunToolInvalidInput(t *testing.T) {
	recorder := &memoryRecorder{}
	state := NewBasicState(context.TODO(), WithRecorder(recorder))

	result := RunTool(context.Background(), state, "list_files", `{"directory": ""}`)
	assert.True(t, result.IsError())
	assert.Contains(t, result.GetError(), "invalid input")

	// validation failures are not recorded as invocations
	assert.Empty(t, recorder.invocations)
}

func TestRunToolRespectsRestrictedToolset(t *testing.T) {
	state := NewBasicState(context.TODO(), WithTools([]tooltypes.Tool{&FileStatisticsTool{}}))

	result := RunTool(context.Background(), state, "list_files", "{}")
	assert.True(t, result.IsError())
	assert.Contains(t, result.GetError(), "not found")
}

func TestBasicStateDefaults(t *testing.T) {
	state := NewBasicState(context.TODO())
	assert.NotEmpty(t, state.SessionID())
	assert.Len(t, state.Tools(), len(defaultToolNames))
	assert.Nil(t, state.GetBrowserManager())
	assert.Nil(t, state.Recorder())
}
