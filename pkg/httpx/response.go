package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
)

// MaxJSONBody caps request bodies read by DecodeJSON.
const MaxJSONBody = 64 << 10

// WriteJSON writes v as the body with status code. Every JSON response from
// this service may carry a token or a secret, so none of them are cacheable.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoContent answers 204 with the same cache headers as WriteJSON.
func NoContent(w http.ResponseWriter) {
	NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// HasMediaType reports whether the request Content-Type is want, ignoring
// case and parameters. A missing header matches when allowMissing is set.
func HasMediaType(r *http.Request, want string, allowMissing bool) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return allowMissing
	}
	mt, _, err := mime.ParseMediaType(ct)
	return err == nil && mt == want
}

// DecodeJSON reads one JSON value from the request body into v. Bodies over
// MaxJSONBody, unknown fields and trailing data are errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("body exceeds %d bytes", tooLarge.Limit)
		}
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
