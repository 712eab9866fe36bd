package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/fbrnila/go-dms-dav/uc"
)

// parseDepth reads the Depth header, falling back to def when absent
// or unparseable.
func parseDepth(r *http.Request, def int) int {
	switch strings.ToLower(r.Header.Get("Depth")) {
	case "0":
		return 0
	case "1":
		return 1
	case "infinity":
		return uc.DepthInfinity
	}
	return def
}

// parseDestination splits the Destination header into a local path and
// a foreign URL. A destination on another host comes back in destURL
// with dest empty; the verb handlers refuse those. A missing or empty
// header is an error, otherwise an empty path would resolve to the
// root folder.
func parseDestination(r *http.Request) (dest, destURL string, err error) {
	raw := r.Header.Get("Destination")
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if u.Host != "" && u.Host != r.Host {
		return "", raw, nil
	}
	if u.Path == "" {
		return "", "", errors.New("empty destination")
	}
	return u.Path, "", nil
}

// parseOverwrite reads the Overwrite header; overwrite is the protocol
// default.
func parseOverwrite(r *http.Request) bool {
	return strings.ToUpper(r.Header.Get("Overwrite")) != "F"
}

// hasBody also counts chunked bodies, which carry ContentLength -1.
func hasBody(r *http.Request) bool {
	return r.ContentLength != 0
}
