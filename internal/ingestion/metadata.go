package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested posting
type Metadata struct {
	Source    string `json:"source"`             // File path or URL
	Format    string `json:"format,omitempty"`   // txt, md, docx, pdf or html
	Platform  string `json:"platform,omitempty"` // Detected job board for URLs
	Timestamp string `json:"timestamp"`          // RFC3339
	Hash      string `json:"hash"`               // SHA256 hex digest of the cleaned text
	Size      int    `json:"size"`               // Characters in the cleaned text
}

// NewMetadata creates Metadata for content with the current timestamp
func NewMetadata(content, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      ContentHash(content),
		Size:      utf8.RuneCountInString(content),
	}
}

// ContentHash returns the SHA256 hex digest used to key stored analyses
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ToJSON marshals Metadata to indented JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return data, nil
}
