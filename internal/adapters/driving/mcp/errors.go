// Package mcp provides an MCP (Model Context Protocol) server adapter for resumechat.
// It lets AI assistants ask questions about the resume and inspect the chunks
// answers are grounded in.
package mcp

import (
	"errors"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")

// ErrInternal is what clients see when a tool or resource fails for any
// reason other than bad input. The cause is logged.
var ErrInternal = errors.New("internal error")

// clientError hides service failures from the MCP client. Invalid input is
// passed through so the caller can correct the request.
func clientError(op string, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	logger.Error("mcp %s failed: %v", op, err)
	return ErrInternal
}
