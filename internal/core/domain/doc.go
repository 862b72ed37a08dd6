// Package domain defines the core entities of the resume chatbot.
//
// This package is the hexagon's innermost layer. It has NO external
// dependencies and defines the fundamental types:
//
//   - Document: raw text read from a .txt or .pdf file
//   - Chunk: a positional, fixed-size window of a Document
//   - ChunkConfig: window size and overlap, with validation and fingerprinting
//   - Match: an identifier and score returned by the similarity index
//   - Manifest: what an index was built from
//
// Chunk identifiers ("chunk-<i>") are formatted and parsed here so every
// layer agrees on the scheme.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
