package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/job-requirements-extractor/internal/logging"
)

// EntityConfidenceThreshold is the exclusive lower bound on retained entity scores
const EntityConfidenceThreshold = 0.7

// RawEntity is one record as returned by a recognition backend. Backends name
// fields differently ("entity_group" or "entity_type", "word" or "text").
type RawEntity map[string]any

// Recognizer is an external named-entity recognition capability
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]RawEntity, error)
}

// RecognizerFunc adapts a function to Recognizer
type RecognizerFunc func(ctx context.Context, text string) ([]RawEntity, error)

// Recognize calls f
func (f RecognizerFunc) Recognize(ctx context.Context, text string) ([]RawEntity, error) {
	return f(ctx, text)
}

// Entity is a recognized span retained above the confidence threshold
type Entity struct {
	Text       string  `json:"text"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// MalformedEntityError describes a raw entity record that could not be read
type MalformedEntityError struct {
	Index  int
	Reason string
}

func (e *MalformedEntityError) Error() string {
	return fmt.Sprintf("malformed entity record %d: %s", e.Index, e.Reason)
}

// EntityAdapter normalizes recognizer output and applies the confidence filter
type EntityAdapter struct {
	recognizer Recognizer
	logger     logging.Logger
}

// NewEntityAdapter wraps r; a nil r yields an adapter that finds no entities
func NewEntityAdapter(r Recognizer, logger logging.Logger) *EntityAdapter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &EntityAdapter{recognizer: r, logger: logger}
}

// Enabled reports whether a recognizer is configured
func (a *EntityAdapter) Enabled() bool {
	return a.recognizer != nil
}

// Extract returns the entities in text scoring above the threshold. Backend
// failures and malformed records are logged and absorbed.
func (a *EntityAdapter) Extract(ctx context.Context, text string) []Entity {
	out := []Entity{}
	if a.recognizer == nil || strings.TrimSpace(text) == "" {
		return out
	}

	raw, err := a.recognizer.Recognize(ctx, text)
	if err != nil {
		a.logger.Warn("entity recognition failed", "err", err)
		return out
	}

	for i, record := range raw {
		entity, err := parseEntity(i, record)
		if err != nil {
			a.logger.Debug("skipping entity record", "err", err)
			continue
		}
		if entity.Confidence > EntityConfidenceThreshold {
			out = append(out, entity)
		}
	}
	return out
}

func parseEntity(index int, record RawEntity) (Entity, error) {
	if record == nil {
		return Entity{}, &MalformedEntityError{Index: index, Reason: "nil record"}
	}

	text, ok := firstString(record, "word", "text")
	if !ok {
		return Entity{}, &MalformedEntityError{Index: index, Reason: "missing word/text"}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Entity{}, &MalformedEntityError{Index: index, Reason: "empty word/text"}
	}

	entityType, ok := firstString(record, "entity_group", "entity_type", "entity")
	if !ok || strings.TrimSpace(entityType) == "" {
		entityType = "UNKNOWN"
	}

	score, err := readScore(record["score"])
	if err != nil {
		return Entity{}, &MalformedEntityError{Index: index, Reason: err.Error()}
	}

	return Entity{Text: text, Type: entityType, Confidence: score}, nil
}

func firstString(record RawEntity, keys ...string) (string, bool) {
	for _, key := range keys {
		v, present := record[key]
		if !present || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return "", false
		}
		return s, true
	}
	return "", false
}

// readScore accepts the numeric shapes JSON decoders and Go callers produce;
// a missing score is 0
func readScore(v any) (float64, error) {
	var score float64
	switch s := v.(type) {
	case nil:
		return 0, nil
	case float64:
		score = s
	case float32:
		score = float64(s)
	case int:
		score = float64(s)
	case int64:
		score = float64(s)
	case json.Number:
		f, err := s.Float64()
		if err != nil {
			return 0, fmt.Errorf("score %q is not numeric", s.String())
		}
		score = f
	default:
		return 0, fmt.Errorf("score has unsupported type %T", v)
	}
	if math.IsNaN(score) || score < 0 || score > 1 {
		return 0, fmt.Errorf("score %v outside [0,1]", score)
	}
	return score, nil
}
