package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// decodeInferenceJSON unmarshals an Inference API body, tolerating surrounding whitespace.
func decodeInferenceJSON(body []byte, v any) error {
	s := bytes.TrimSpace(body)
	if len(s) == 0 {
		return io.ErrUnexpectedEOF
	}
	if err := json.Unmarshal(s, v); err != nil {
		return fmt.Errorf("decode inference response (len=%d): %w", len(s), err)
	}
	return nil
}
