package taskpanel

import (
	"fmt"
	"net/url"
)

// BaseFromScript returns the directory of the hosting script, so assets
// resolve next to it even when the page lives under a sub-path. An empty
// location yields a nil base and assets stay relative.
func BaseFromScript(scriptURL string) (*url.URL, error) {
	if scriptURL == "" {
		return nil, nil
	}
	u, err := url.Parse(scriptURL)
	if err != nil {
		return nil, fmt.Errorf("parse script url: %w", err)
	}
	return u.ResolveReference(&url.URL{Path: "."}), nil
}

// Resolve resolves rel against base. rel is returned unchanged when it
// cannot be parsed or there is no base.
func Resolve(base *url.URL, rel string) string {
	if base == nil {
		return rel
	}
	ref, err := url.Parse(rel)
	if err != nil {
		return rel
	}
	return base.ResolveReference(ref).String()
}
