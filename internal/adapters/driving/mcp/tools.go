package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// AskInput is the input schema for the ask_resume tool.
type AskInput struct {
	Query string `json:"query" jsonschema:"the question to answer from the resume"`
}

// AskOutput is the output schema for the ask_resume tool.
type AskOutput struct {
	Response string `json:"response"`
	Prompt   string `json:"prompt"`
}

// SearchInput is the input schema for the search_resume tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text to find similar resume passages for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default: all retrieved)"`
}

// SearchOutput is the output schema for the search_resume tool.
type SearchOutput struct {
	Results []ChunkOutput `json:"results"`
	Count   int           `json:"count"`
}

// ChunkOutput represents a single retrieved passage.
type ChunkOutput struct {
	ID    string  `json:"id"`
	Index int     `json:"index"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_resume",
		Description: "Answer a question using passages retrieved from the resume",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_resume",
		Description: "Find the resume passages most similar to a query, without generating an answer",
	}, s.handleSearch)
}

// handleAsk handles the ask_resume tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Chat.Ask(ctx, input.Query)
	if err != nil {
		return nil, AskOutput{}, clientError("ask_resume", err)
	}
	return nil, AskOutput{Response: answer.Response, Prompt: answer.Prompt}, nil
}

// handleSearch handles the search_resume tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Chat.Retrieve(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, clientError("search_resume", err)
	}
	if input.Limit > 0 && len(results) > input.Limit {
		results = results[:input.Limit]
	}

	output := SearchOutput{
		Results: make([]ChunkOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = ChunkOutput{
			ID:    domain.ChunkID(r.Chunk.Index),
			Index: r.Chunk.Index,
			Score: r.Score,
			Text:  r.Chunk.Text,
		}
	}

	return nil, output, nil
}
