package observability

import (
	"net/http"
	"unicode"

	"github.com/go-chi/chi/v5"
)

const (
	routeLimit = 180
	pathLimit  = 180
)

// unmatchedRoute labels requests no route claimed.
const unmatchedRoute = "unmatched"

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
}

// cleanString drops control characters and truncates to limit runes.
func cleanString(value string, limit int) string {
	cleaned := make([]rune, 0, min(len(value), limit))
	for _, r := range value {
		if unicode.IsControl(r) {
			continue
		}
		if len(cleaned) == limit {
			break
		}
		cleaned = append(cleaned, r)
	}
	return string(cleaned)
}

// methodLabel folds anything outside the standard verbs into OTHER.
func methodLabel(method string) string {
	if _, ok := knownMethods[method]; ok {
		return method
	}
	return "OTHER"
}

// routeLabel is the chi pattern that served r. It is only complete once the
// router has matched, so callers read it after next.ServeHTTP returns.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return cleanString(pattern, routeLimit)
		}
	}
	return unmatchedRoute
}

func pathField(path string) string {
	if path == "" {
		return "/"
	}
	return cleanString(path, pathLimit)
}
