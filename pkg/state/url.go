package state

import (
	"net/url"
	"strings"
)

// fragmentPrefix introduces the token inside a URL fragment: "#state=<token>".
const fragmentPrefix = "state="

// queryParam is the fallback query parameter carrying the token.
const queryParam = "state"

// TokenFromURL extracts the state token from a URL. The fragment form
// "#state=<token>" takes precedence over the "?state=<token>" query
// parameter. It returns "" when neither is present.
func TokenFromURL(u *url.URL) string {
	if tok, ok := strings.CutPrefix(u.Fragment, fragmentPrefix); ok && tok != "" {
		return tok
	}
	return u.Query().Get(queryParam)
}

// FromURL decodes the state embedded in a URL, or nil when the URL carries
// no token or an undecodable one.
func FromURL(u *url.URL) *State {
	tok := TokenFromURL(u)
	if tok == "" {
		return nil
	}
	return Decode(tok)
}

// WithToken returns a copy of u with its fragment rewritten to carry the
// token. Origin, path, and query are preserved untouched; only the fragment
// changes, mirroring a replace-not-push history update.
func WithToken(u *url.URL, token string) *url.URL {
	out := *u
	out.Fragment = fragmentPrefix + token
	return &out
}

// BuildShareURL encodes the state and returns the absolute shareable URL:
// base origin + path + query with the fresh "#state=" fragment. It is
// independent of the debounced save path and mutates nothing.
func BuildShareURL(base *url.URL, s State) (string, error) {
	tok, err := Encode(s)
	if err != nil {
		return "", err
	}
	return WithToken(base, tok).String(), nil
}
