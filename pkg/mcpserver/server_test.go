package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillet-dev/skillet/pkg/tools"
)

func TestNewPublishesAllTools(t *testing.T) {
	state := tools.NewBasicState(context.Background())

	s, err := New(state)
	require.NoError(t, err)
	assert.NotNil(t, s)
}
