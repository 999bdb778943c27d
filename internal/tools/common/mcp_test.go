package common

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcptools/google-toolbox/internal/toolbox"
)

func textContent(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestToCallToolResultPayload(t *testing.T) {
	res := ToCallToolResult(toolbox.Result{
		OK:      true,
		Payload: map[string]string{"id": "m-1"},
	})

	assert.False(t, res.IsError)
	assert.Contains(t, textContent(t, res), `"id": "m-1"`)
}

func TestToCallToolResultString(t *testing.T) {
	res := ToCallToolResult(toolbox.Result{OK: true, Payload: "plain text"})

	assert.False(t, res.IsError)
	assert.Equal(t, "plain text", textContent(t, res))
}

func TestToCallToolResultError(t *testing.T) {
	res := ToCallToolResult(toolbox.Result{
		Err: toolbox.Errorf(toolbox.KindNotFound, "unknown tool"),
	})

	assert.True(t, res.IsError)
	assert.Contains(t, textContent(t, res), "not_found")
}

func TestToMCPTool(t *testing.T) {
	tool := ToMCPTool(toolbox.Definition{
		Name:        "list_emails",
		Description: "List emails",
		Schema: toolbox.Schema{
			{Name: "query", Type: toolbox.TypeString, Description: "Gmail query"},
			{Name: "max_results", Type: toolbox.TypeInt, Required: true},
			{Name: "include_spam", Type: toolbox.TypeBool},
		},
	})

	assert.Equal(t, "list_emails", tool.Name)
	assert.Equal(t, "List emails", tool.Description)

	props := tool.InputSchema.Properties
	require.Contains(t, props, "query")
	require.Contains(t, props, "max_results")
	require.Contains(t, props, "include_spam")
	assert.Equal(t, []string{"max_results"}, tool.InputSchema.Required)
}
