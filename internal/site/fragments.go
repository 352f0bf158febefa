package site

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"institutonuevovallarta.mx/inva-web/internal/handlers"
	"institutonuevovallarta.mx/inva-web/internal/middleware"
	"institutonuevovallarta.mx/inva-web/internal/nav"
	"institutonuevovallarta.mx/inva-web/internal/observability"
	"institutonuevovallarta.mx/inva-web/internal/requestctx"
	"institutonuevovallarta.mx/inva-web/internal/seo"
)

// NavEvent is a client interaction replayed through the bar state machine.
type NavEvent string

const (
	NavToggle   NavEvent = "toggle"
	NavScroll   NavEvent = "scroll"
	NavNavigate NavEvent = "navigate"
)

// NavState is the client-reported bar state plus the event to apply.
type NavState struct {
	Path     string
	Offset   int
	MenuOpen bool
	Event    NavEvent
	To       string
}

// ParseNavState reads a NavState from query parameters.
func ParseNavState(q map[string][]string) (NavState, bool) {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}
	st := NavState{
		Path:     get("path"),
		MenuOpen: get("menu") == "open",
		Event:    NavEvent(get("event")),
		To:       get("to"),
	}
	if st.Path == "" {
		st.Path = nav.PathHome
	}
	if _, ok := nav.Lookup(st.Path); !ok {
		return NavState{}, false
	}
	if raw := get("y"); raw != "" {
		y, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			return NavState{}, false
		}
		if y > 0 {
			st.Offset = int(math.Min(y, math.MaxInt32))
		}
	}
	switch st.Event {
	case NavToggle, NavScroll, NavNavigate:
	case "":
		st.Event = NavScroll
	default:
		return NavState{}, false
	}
	return st, true
}

// Apply replays st on a fresh bar and returns it with the navigation
// target, if the event was a navigation. The scroll subscription is released
// before Apply returns.
func (st NavState) Apply() (*nav.Bar, string, bool) {
	bar := nav.NewBar(st.Path)
	feed := nav.NewScrollFeed()
	bar.Mount(feed)
	defer bar.Unmount()

	feed.Publish(st.Offset)
	if st.MenuOpen {
		bar.ToggleMenu()
	}
	switch st.Event {
	case NavToggle:
		bar.ToggleMenu()
	case NavNavigate:
		target, ok := bar.ActivateLink(st.To)
		return bar, target, ok
	}
	return bar, "", true
}

type hxLocation struct {
	Path   string `json:"path"`
	Target string `json:"target"`
	Swap   string `json:"swap"`
}

// NavFragment re-renders the navigation bar after a client event.
func (s *Site) NavFragment(w http.ResponseWriter, r *http.Request) {
	logger := requestctx.Logger(r.Context())
	st, ok := ParseNavState(r.URL.Query())
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	bar, target, ok := st.Apply()
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	s.metrics.RecordNavEvent(string(st.Event))
	observability.AnnotateNavEvent(r.Context(), string(st.Event), st.Path)

	lang := middleware.Lang(r)
	data := handlers.PageData{
		Lang:   lang,
		Langs:  s.langOptions(lang, st.Path),
		Path:   st.Path,
		Nav:    bar.View(),
		Site:   s.store.Site(),
		Assets: s.assets,
	}
	var buf bytes.Buffer
	if err := s.renderer.Partial(&buf, "nav", data); err != nil {
		logger.Error("render nav fragment", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	if target != "" {
		loc, err := json.Marshal(hxLocation{Path: target, Target: "body", Swap: scrollResetSwap})
		if err == nil {
			h.Set("HX-Location", string(loc))
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Sitemap serves sitemap.xml for the page routes.
func (s *Site) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := seo.Sitemap(s.baseURL, Paths())
	if err != nil {
		requestctx.Logger(r.Context()).Error("render sitemap", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

// Robots serves robots.txt.
func (s *Site) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(seo.Robots(s.baseURL))
}
