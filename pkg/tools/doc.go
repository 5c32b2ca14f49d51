// Package tools groups tool-definition and tool-execution packages:
//   - [github.com/XXpE3/goose/pkg/tools/toolbox]: tool definitions and a call dispatcher
//   - [github.com/XXpE3/goose/pkg/tools/mcpclient]: sources tools from MCP servers
package tools
