package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ChunkIDPrefix is the fixed prefix of every chunk identifier.
const ChunkIDPrefix = "chunk-"

// ChunkConfig controls how documents are windowed.
type ChunkConfig struct {
	// Size is the window length in characters.
	Size int

	// Overlap is the number of characters shared by consecutive windows.
	Overlap int
}

// DefaultChunkConfig returns the windowing used for resumes.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{Size: 100, Overlap: 25}
}

// Validate rejects configurations that would never advance the window.
func (c ChunkConfig) Validate() error {
	if c.Overlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative (got %d)", ErrInvalidConfiguration, c.Overlap)
	}
	if c.Size <= c.Overlap {
		return fmt.Errorf("%w: chunk size %d must be greater than overlap %d",
			ErrInvalidConfiguration, c.Size, c.Overlap)
	}
	return nil
}

// Step is the distance between the starts of consecutive windows.
func (c ChunkConfig) Step() int {
	return c.Size - c.Overlap
}

// Fingerprint identifies the chunk sequence that text produces under c.
// Two runs agree on chunk identifiers only if their fingerprints match.
func (c ChunkConfig) Fingerprint(text string) string {
	h := sha256.New()
	fmt.Fprintf(h, "size=%d;overlap=%d;", c.Size, c.Overlap)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// ChunkID formats the index identifier for the chunk at position index.
func ChunkID(index int) string {
	return ChunkIDPrefix + strconv.Itoa(index)
}

// ParseChunkID extracts the position encoded in id.
// It accepts exactly the strings ChunkID produces, so the mapping is
// bijective: signs, leading zeros and trailing garbage are rejected.
func ParseChunkID(id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, ChunkIDPrefix)
	if !ok || digits == "" {
		return 0, false
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
