package nav

import "sync"

// Bar holds the navigation bar state for one mounted page:
// the current route, whether the viewport is past the scroll threshold,
// and whether the mobile menu is open.
type Bar struct {
	route string

	mu       sync.Mutex
	scrolled bool
	menuOpen bool
	cancel   func()
}

// NewBar returns an unmounted bar for route.
func NewBar(route string) *Bar {
	if route == "" {
		route = PathHome
	}
	return &Bar{route: route}
}

// Mount resets the bar to its initial state and subscribes to sig.
// A previous subscription is released first.
func (b *Bar) Mount(sig ScrollSignal) {
	b.Unmount()

	b.mu.Lock()
	b.scrolled = false
	b.menuOpen = false
	b.mu.Unlock()

	if sig == nil {
		return
	}
	cancel := sig.Subscribe(b.onScroll)

	b.mu.Lock()
	b.cancel = cancel
	b.mu.Unlock()
}

// Unmount releases the scroll subscription. It is a no-op when not mounted.
func (b *Bar) Unmount() {
	b.mu.Lock()
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Mounted reports whether the bar holds a scroll subscription.
func (b *Bar) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancel != nil
}

func (b *Bar) onScroll(offset int) {
	b.mu.Lock()
	b.scrolled = Scrolled(offset)
	b.mu.Unlock()
}

// ToggleMenu flips the mobile menu.
func (b *Bar) ToggleMenu() {
	b.mu.Lock()
	b.menuOpen = !b.menuOpen
	b.mu.Unlock()
}

// ActivateLink closes the mobile menu and returns the link target.
// The menu closes even when path is not a known route.
func (b *Bar) ActivateLink(path string) (string, bool) {
	b.mu.Lock()
	b.menuOpen = false
	b.mu.Unlock()

	it, ok := Lookup(path)
	if !ok {
		return "", false
	}
	return it.Path, true
}

// Scrolled reports the current threshold state.
func (b *Bar) Scrolled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scrolled
}

// MenuOpen reports whether the mobile menu is open.
func (b *Bar) MenuOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.menuOpen
}

// Classes carries the class string for the current state plus both
// scroll variants, which the client script swaps between.
type Classes struct {
	Current  string
	Top      string
	Scrolled string
}

// Link is a rendered navigation link.
type Link struct {
	Href     string
	LabelKey string
	Active   bool
	Contact  bool
	Style    LinkStyle
	Class    Classes
	Mobile   string
}

// View is the render model of the bar.
type View struct {
	Path      string
	Mode      Mode
	Scrolled  bool
	MenuOpen  bool
	Threshold int
	Bar       Classes
	Brand     Classes
	Toggle    Classes
	Links     []Link
}

// View derives the render model from the current state.
func (b *Bar) View() View {
	b.mu.Lock()
	scrolled, menuOpen := b.scrolled, b.menuOpen
	b.mu.Unlock()

	home := b.route == PathHome
	mode := ModeFor(home, scrolled)
	top, down := ModeFor(home, false), ModeFor(home, true)

	v := View{
		Path:      b.route,
		Mode:      mode,
		Scrolled:  scrolled,
		MenuOpen:  menuOpen,
		Threshold: ScrollThreshold,
		Bar:       Classes{Current: mode.BarClass(), Top: top.BarClass(), Scrolled: down.BarClass()},
		Brand:     Classes{Current: mode.BrandClass(), Top: top.BrandClass(), Scrolled: down.BrandClass()},
		Toggle:    Classes{Current: mode.ToggleClass(), Top: top.ToggleClass(), Scrolled: down.ToggleClass()},
		Links:     make([]Link, 0, len(Main)),
	}
	for _, it := range Main {
		active := IsActive(it.Path, b.route)
		style := LinkStyleFor(home, scrolled, active, it.Contact)
		v.Links = append(v.Links, Link{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   active,
			Contact:  it.Contact,
			Style:    style,
			Class: Classes{
				Current:  style.Class(),
				Top:      LinkStyleFor(home, false, active, it.Contact).Class(),
				Scrolled: LinkStyleFor(home, true, active, it.Contact).Class(),
			},
			Mobile: MobileLinkClass(it.Contact, active),
		})
	}
	return v
}
