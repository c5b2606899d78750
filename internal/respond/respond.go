// Package respond holds the two response constructors the application
// uses: structured (JSON by default) and plain text.  Handlers and the
// validation middleware share them so error bodies are encoded the same
// way as normal payloads.
package respond

import (
	"encoding/json"
	"net/http"
)

// Encoder turns a payload into response bytes.
type Encoder func(v any) ([]byte, error)

// JSONEncoder is the default Encoder.
func JSONEncoder(v any) ([]byte, error) { return json.Marshal(v) }

// JSON encodes v with enc and writes it with status.  When encoding fails
// nothing is written, so the caller can still choose another response.
func JSON(w http.ResponseWriter, status int, v any, enc Encoder) error {
	if enc == nil {
		enc = JSONEncoder
	}
	body, err := enc(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}

// Text writes msg as a plain-text body with status.
func Text(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
