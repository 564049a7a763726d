package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// errorResult reports a tool-level failure the client can show to the model
func errorResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}
