package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringifyToolResult(t *testing.T) {
	out := StringifyToolResult("3 files", "")
	assert.Equal(t, "<result>\n3 files\n</result>\n", out)

	out = StringifyToolResult("", "directory does not exist")
	assert.Equal(t, "<error>\ndirectory does not exist\n</error>\n", out)

	out = StringifyToolResult("partial", "some warning")
	assert.Contains(t, out, "<error>\nsome warning\n</error>")
	assert.Contains(t, out, "<result>\npartial\n</result>")
}

func TestStringifyToolResultEmpty(t *testing.T) {
	out := StringifyToolResult("", "")
	assert.Equal(t, "<result>\n</result>\n", out)
}
