// Package status implements the per-response account status signal that the
// API attaches to authorised responses and clients use to detect a stale session.
package status

import (
	"encoding/json"
	"net/http"
	"strings"
)

// HeaderName is the response header carrying the JSON encoded Signal.
const HeaderName = "x-documize-status"

// Signal is the server's view of the caller's account at the time of the response.
type Signal struct {
	Active bool `json:"active"`
	Editor bool `json:"editor"`
	Admin  bool `json:"admin"`
}

// Parse decodes a header value. The boolean result is false when the value is
// empty, is not a single JSON object, or lacks any of the three lowercase
// fields with a boolean value.
func Parse(value string) (Signal, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Signal{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(value), &fields); err != nil || fields == nil {
		return Signal{}, false
	}

	var s Signal
	for name, dst := range map[string]*bool{"active": &s.Active, "editor": &s.Editor, "admin": &s.Admin} {
		if !decodeBool(fields[name], dst) {
			return Signal{}, false
		}
	}
	return s, true
}

// decodeBool accepts only a JSON true or false. Keys are matched exactly.
func decodeBool(raw json.RawMessage, dst *bool) bool {
	var b *bool
	if raw == nil || json.Unmarshal(raw, &b) != nil || b == nil {
		return false
	}
	*dst = *b
	return true
}

// Lookup finds and decodes the status header. Header names are matched case-insensitively.
func Lookup(h http.Header) (Signal, bool) {
	if h == nil {
		return Signal{}, false
	}
	if v := h.Get(HeaderName); v != "" {
		return Parse(v)
	}
	// Maps built by hand may not use the canonical key.
	for name, values := range h {
		if strings.EqualFold(name, HeaderName) && len(values) > 0 {
			return Parse(values[0])
		}
	}
	return Signal{}, false
}

// Encode renders the signal as the compact JSON object sent on the wire.
func Encode(s Signal) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// Set writes the signal onto a response header.
func Set(h http.Header, s Signal) {
	h.Set(HeaderName, Encode(s))
}

// Invalidates reports whether a client holding a user with the given
// capability flags must re-authenticate.
func (s Signal) Invalidates(editor, admin bool) bool {
	return !s.Active || s.Editor != editor || s.Admin != admin
}
