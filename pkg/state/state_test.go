package state

import (
	"encoding/base64"
	"reflect"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   State
	}{
		{
			name: "Empty",
			in:   State{Edges: [][4]int{}},
		},
		{
			name: "EdgesAndViewport",
			in: State{
				Edges:    [][4]int{{0, 0, 1, 0}, {1, 0, 1, 1}, {127, 177, 127, 176}},
				Viewport: Viewport{Cx: 160.5, Cy: 100.25, Zoom: 3.2},
			},
		},
		{
			name: "NilEdgesNormalizedToEmpty",
			in:   State{Viewport: Viewport{Cx: 1, Cy: 2, Zoom: 0.6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			got := Decode(tok)
			if got == nil {
				t.Fatal("Decode returned nil for a freshly encoded token")
			}

			want := tt.in
			if want.Edges == nil {
				want.Edges = [][4]int{}
			}
			if !reflect.DeepEqual(*got, want) {
				t.Errorf("round trip = %+v, want %+v", *got, want)
			}
		})
	}
}

func TestTokenIsURLSafe(t *testing.T) {
	s := State{
		Edges:    [][4]int{{10, 20, 11, 20}, {63, 63, 63, 64}},
		Viewport: Viewport{Cx: 589.5, Cy: 814.5, Zoom: 3.2},
	}
	tok, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, r := range tok {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			t.Fatalf("token contains non-URL-safe character %q", r)
		}
	}
}

func TestDecodeInvalidTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "NotBase64", token: "!!!not base64!!!"},
		{name: "Base64ButNotJSON", token: base64.RawURLEncoding.EncodeToString([]byte("hello"))},
		{name: "JSONButNotObject", token: base64.RawURLEncoding.EncodeToString([]byte(`[1,2,3]`))},
		{name: "TruncatedJSON", token: base64.RawURLEncoding.EncodeToString([]byte(`{"edges":[[1`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.token); got != nil {
				t.Errorf("Decode = %+v, want nil", got)
			}
		})
	}
}

func TestDecodeDegradesFieldByField(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		want     State
	}{
		{
			name: "EdgesNotAnArray",
			json: `{"edges":"nope","viewport":{"cx":10,"cy":20,"zoom":2}}`,
			want: State{Edges: [][4]int{}, Viewport: Viewport{Cx: 10, Cy: 20, Zoom: 2}},
		},
		{
			name: "WrongArityTuplesSkipped",
			json: `{"edges":[[1,2,3],[1,2,3,4],[1,2,3,4,5]],"viewport":{}}`,
			want: State{Edges: [][4]int{{1, 2, 3, 4}}},
		},
		{
			name: "NonNumericTupleSkippedSiblingsKept",
			json: `{"edges":[[1,2,3,"x"],[5,6,7,8]]}`,
			want: State{Edges: [][4]int{{5, 6, 7, 8}}},
		},
		{
			name: "NonArrayTupleSkippedSiblingsKept",
			json: `{"edges":["garbage",[0,0,1,0],{"a":1}]}`,
			want: State{Edges: [][4]int{{0, 0, 1, 0}}},
		},
		{
			name: "ViewportNotAnObject",
			json: `{"edges":[[0,0,1,0]],"viewport":7}`,
			want: State{Edges: [][4]int{{0, 0, 1, 0}}},
		},
		{
			name: "NegativeZoomIgnored",
			json: `{"edges":[],"viewport":{"cx":5,"cy":6,"zoom":-1}}`,
			want: State{Edges: [][4]int{}, Viewport: Viewport{Cx: 5, Cy: 6}},
		},
		{
			name: "MissingFields",
			json: `{}`,
			want: State{Edges: [][4]int{}},
		},
		{
			name: "ExtraFieldsIgnored",
			json: `{"edges":[[2,2,2,3]],"viewport":{"cx":1,"cy":2,"zoom":3},"future":true}`,
			want: State{Edges: [][4]int{{2, 2, 2, 3}}, Viewport: Viewport{Cx: 1, Cy: 2, Zoom: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := base64.RawURLEncoding.EncodeToString([]byte(tt.json))
			got := Decode(tok)
			if got == nil {
				t.Fatal("Decode returned nil for syntactically valid JSON")
			}
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("Decode = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestDecodeAcceptsPaddedTokens(t *testing.T) {
	payload := []byte(`{"edges":[[0,0,0,1]],"viewport":{"cx":1,"cy":2,"zoom":3}}`)
	padded := base64.URLEncoding.EncodeToString(payload)
	stripped := base64.RawURLEncoding.EncodeToString(payload)

	got := Decode(padded)
	want := Decode(stripped)
	if got == nil || want == nil {
		t.Fatal("Decode returned nil")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("padded decode = %+v, stripped decode = %+v", got, want)
	}
}
