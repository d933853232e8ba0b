// Package ytserver registers the youtube/* MCP tools, resources, and prompt
// templates on an MCP server. Handlers validate input, call into the engine,
// and shape results into the uniform {type, data} envelope.
package ytserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all six youtube tools on the given MCP server:
// get-transcript, summarize, query, search, get-comments, get-likes.
func RegisterTools(server *mcp.Server) {
	registerGetTranscript(server)
	registerSummarize(server)
	registerQuery(server)
	registerSearch(server)
	registerGetComments(server)
	registerGetLikes(server)
}
