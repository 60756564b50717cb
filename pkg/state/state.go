// Package state implements the persisted editing state of the puzzled
// editor and its wire protocol: a compact, URL-embeddable token carrying the
// edge set and viewport, plus the debounced scheduler that writes the token
// into the session's address.
//
// # Token format
//
// A token is the URL-safe base64 encoding (standard alphabet with '+'→'-',
// '/'→'_', trailing '=' padding stripped) of the UTF-8 JSON form:
//
//	{"edges":[[c1,r1,c2,r2],...],"viewport":{"cx":n,"cy":n,"zoom":n}}
//
// Encoding of a state with finite numeric fields round-trips exactly.
// Decoding is defensive: malformed tokens yield nil, and a syntactically
// valid token with wrong-shaped fields degrades field by field to defaults
// rather than failing the whole decode.
package state

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"strings"
)

// Viewport is the persisted portion of the viewport: world-space center and
// zoom. Canvas pixel dimensions are derived from the hosting surface at load
// time and are deliberately not part of the token.
type Viewport struct {
	Cx   float64 `json:"cx"`
	Cy   float64 `json:"cy"`
	Zoom float64 `json:"zoom"`
}

// State is the persisted editing state. Edges hold (col1,row1,col2,row2)
// tuples in whatever order the edge set yields; order is not required to be
// stable across saves. A state is constructed fresh on every save and
// reconstructed wholesale on load.
type State struct {
	Edges    [][4]int `json:"edges"`
	Viewport Viewport `json:"viewport"`
}

// Encode serializes the state into a token. A state that cannot be
// serialized (non-finite viewport fields) yields an explicit error rather
// than a partial token.
func Encode(s State) (string, error) {
	if s.Edges == nil {
		s.Edges = [][4]int{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses a token back into a state. Any failure (bad base64
// characters, malformed JSON) yields nil; Decode never panics or returns an
// error to the caller. Wrong-shaped fields inside valid JSON degrade
// gracefully: a non-array edges field becomes an empty edge list, tuples
// without exactly four numeric components are skipped, and viewport fields
// apply individually only when they are finite numbers (zoom must also be
// positive).
//
// Tokens with '=' padding are accepted alongside the canonical stripped form.
func Decode(token string) *State {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil
	}

	var raw struct {
		Edges    json.RawMessage `json:"edges"`
		Viewport json.RawMessage `json:"viewport"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	s := &State{Edges: [][4]int{}}
	s.Edges = decodeEdges(raw.Edges)
	s.Viewport = decodeViewport(raw.Viewport)
	return s
}

func decodeEdges(raw json.RawMessage) [][4]int {
	out := [][4]int{}
	if len(raw) == 0 {
		return out
	}
	var tuples []json.RawMessage
	if err := json.Unmarshal(raw, &tuples); err != nil {
		return out
	}
	// Each tuple decodes independently so one malformed entry never takes
	// its siblings down with it.
	for _, t := range tuples {
		var f []float64
		if err := json.Unmarshal(t, &f); err != nil || len(f) != 4 {
			continue
		}
		var e [4]int
		ok := true
		for i, v := range f {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				ok = false
				break
			}
			e[i] = int(v)
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}

func decodeViewport(raw json.RawMessage) Viewport {
	var vp Viewport
	if len(raw) == 0 {
		return vp
	}
	var fields struct {
		Cx   *float64 `json:"cx"`
		Cy   *float64 `json:"cy"`
		Zoom *float64 `json:"zoom"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return vp
	}
	if fields.Cx != nil && finite(*fields.Cx) {
		vp.Cx = *fields.Cx
	}
	if fields.Cy != nil && finite(*fields.Cy) {
		vp.Cy = *fields.Cy
	}
	if fields.Zoom != nil && finite(*fields.Zoom) && *fields.Zoom > 0 {
		vp.Zoom = *fields.Zoom
	}
	return vp
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
