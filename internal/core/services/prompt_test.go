package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

func TestBuildContext(t *testing.T) {
	chunks := []domain.Chunk{{Index: 1, Text: "second"}, {Index: 0, Text: "first"}}

	assert.Equal(t, "second\nfirst", BuildContext(chunks))
	assert.Equal(t, "", BuildContext(nil))
	assert.Equal(t, "only", BuildContext([]domain.Chunk{{Text: "only"}}))
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("Go engineer\n10% growth", "What is their current role?")

	assert.Equal(t,
		"resume info in form of embeddings:\nGo engineer\n10% growth\n\nUser Query: What is their current role?\nAnswer:",
		got)
}

func TestBuildPrompt_EmptyContext(t *testing.T) {
	assert.Equal(t,
		"resume info in form of embeddings:\n\n\nUser Query: hi\nAnswer:",
		BuildPrompt("", "hi"))
}
