package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for resumechat resources.
	uriScheme = "resumechat://"
)

// registerResources registers resource handlers when a document port is available.
func (s *Server) registerResources() {
	if s.ports.Document == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "chunks",
		Name:        "chunks",
		Description: "Every chunk of the resume with its index identifier",
		MIMEType:    "application/json",
	}, s.handleChunksResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "chunks/{chunkId}",
		Name:        "chunk",
		Description: "Text of one chunk, addressed by its identifier (e.g. chunk-3)",
		MIMEType:    "text/plain",
	}, s.handleChunkResource)
}

// handleChunksResource lists every chunk of the current document.
func (s *Server) handleChunksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	chunks, err := s.ports.Document.Chunks(ctx)
	if err != nil {
		return nil, clientError("read "+req.Params.URI, err)
	}

	type chunkInfo struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}

	infos := make([]chunkInfo, len(chunks))
	for i, c := range chunks {
		infos[i] = chunkInfo{ID: domain.ChunkID(c.Index), Text: c.Text}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling chunks: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleChunkResource returns the text of one chunk.
func (s *Server) handleChunkResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	index, ok := extractChunkIndex(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	chunks, err := s.ports.Document.Chunks(ctx)
	if err != nil {
		return nil, clientError("read "+req.Params.URI, err)
	}
	if index >= len(chunks) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     chunks[index].Text,
		}},
	}, nil
}

// extractChunkIndex parses a URI like resumechat://chunks/chunk-3.
func extractChunkIndex(uri string) (int, bool) {
	const prefix = uriScheme + "chunks/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	return domain.ParseChunkID(strings.TrimPrefix(uri, prefix))
}
