package services

import (
	"strings"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// SystemInstruction is sent as the system message of every chat completion.
const SystemInstruction = "You are a helpful assistant that answers questions based on the provided context."

// BuildContext joins chunk texts in order, one per line.
func BuildContext(chunks []domain.Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n")
}

// BuildPrompt embeds context and query into the fixed template:
//
//	resume info in form of embeddings:
//	<context>
//
//	User Query: <query>
//	Answer:
func BuildPrompt(context, query string) string {
	return "resume info in form of embeddings:\n" + context + "\n\nUser Query: " + query + "\nAnswer:"
}
