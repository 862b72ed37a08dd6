package mcp

import (
	"context"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	answer    *domain.Answer
	retrieved []domain.RetrievedChunk
	err       error
	lastQuery string
}

func (m *mockChatService) Ask(_ context.Context, query string) (*domain.Answer, error) {
	m.lastQuery = query
	return m.answer, m.err
}

func (m *mockChatService) Retrieve(_ context.Context, query string) ([]domain.RetrievedChunk, error) {
	m.lastQuery = query
	return m.retrieved, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	chunks []domain.Chunk
	err    error
}

func (m *mockDocumentService) Chunks(_ context.Context) ([]domain.Chunk, error) {
	return m.chunks, m.err
}
