// Package ner provides named-entity recognition backends for the extractor.
package ner

import "fmt"

// RecognizerError is returned when a backend cannot produce entities
type RecognizerError struct {
	Backend    string
	Message    string
	StatusCode int
	Cause      error
}

func (e *RecognizerError) Error() string {
	msg := fmt.Sprintf("%s recognizer: %s", e.Backend, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *RecognizerError) Unwrap() error {
	return e.Cause
}
