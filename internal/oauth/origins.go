package oauth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrOriginNotAllowed is returned when a redirect origin cannot be resolved
// to a trusted target.
var ErrOriginNotAllowed = errors.New("redirect origin not allowed")

// OriginSet is the frontend origin allow-list consulted before any
// post-login redirect. Built once at startup, read-only afterwards.
type OriginSet struct {
	allowed       map[string]bool
	defaultOrigin string
	permissive    bool
}

// NewOriginSet builds the allow-list from configuration. A malformed entry
// is a configuration error. With no entries at all the set is permissive:
// any syntactically valid origin is accepted, which is only safe for local
// development.
func NewOriginSet(origins []string, defaultOrigin string) (*OriginSet, error) {
	s := &OriginSet{
		allowed:    make(map[string]bool, len(origins)),
		permissive: len(origins) == 0,
	}

	for _, raw := range origins {
		origin := CanonicalOrigin(raw)
		if origin == "" {
			return nil, fmt.Errorf("invalid allowed origin %q", raw)
		}
		s.allowed[origin] = true
	}

	if defaultOrigin != "" {
		origin := CanonicalOrigin(defaultOrigin)
		if origin == "" {
			return nil, fmt.Errorf("invalid default origin %q", defaultOrigin)
		}
		s.defaultOrigin = origin
	}

	return s, nil
}

// Permissive reports whether no allow-list is configured.
func (s *OriginSet) Permissive() bool {
	return s.permissive
}

// Sanitize normalizes the origin requested at login time. Values that do
// not parse as an origin at all come back empty and are treated as absent.
// Membership is NOT checked here: the value is remembered as-is and the
// allow-list is enforced when the callback resolves the redirect target.
func (s *OriginSet) Sanitize(raw string) string {
	return CanonicalOrigin(raw)
}

// Resolve applies the redirect policy to the origin remembered at login
// time and returns the origin the browser may be redirected to.
//
// An origin on the allow-list is accepted. An origin off the allow-list is
// rejected outright; falling back to the default here would defeat the
// list. An absent origin falls back to the default, or is rejected when no
// default is configured. Without an allow-list any valid origin passes.
func (s *OriginSet) Resolve(candidate string) (string, error) {
	if candidate == "" {
		if s.defaultOrigin != "" {
			return s.defaultOrigin, nil
		}
		return "", ErrOriginNotAllowed
	}

	origin := CanonicalOrigin(candidate)
	if origin == "" {
		return "", ErrOriginNotAllowed
	}

	if s.permissive || s.allowed[origin] {
		return origin, nil
	}
	return "", ErrOriginNotAllowed
}

// CanonicalOrigin reduces raw to lowercase scheme://host[:port]. It returns
// "" when raw is not an absolute http(s) URL.
func CanonicalOrigin(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}
