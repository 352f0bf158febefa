package nav

// ScrollThreshold is the vertical offset, in pixels, past which the bar
// switches from overlay to solid mode on the home route.
const ScrollThreshold = 20

// Scrolled reports whether offset is past the threshold.
func Scrolled(offset int) bool {
	return offset > ScrollThreshold
}

// Mode is the bar's visual mode.
type Mode int

const (
	// ModeSolid is an opaque light bar with dark text.
	ModeSolid Mode = iota
	// ModeOverlay is a dark gradient over the home hero photo with white text.
	ModeOverlay
)

func (m Mode) String() string {
	if m == ModeOverlay {
		return "overlay"
	}
	return "solid"
}

// ModeFor derives the bar mode. Overlay applies only on the home route before scrolling.
func ModeFor(routeIsHome, scrolled bool) Mode {
	if routeIsHome && !scrolled {
		return ModeOverlay
	}
	return ModeSolid
}

// LinkStyle is the closed set of desktop link variants.
type LinkStyle int

const (
	LinkSolid LinkStyle = iota
	LinkSolidActive
	LinkSolidContact
	LinkOverlay
	LinkOverlayActive
	LinkOverlayContact
)

var linkStyleNames = [...]string{
	LinkSolid:          "solid",
	LinkSolidActive:    "solid-active",
	LinkSolidContact:   "solid-contact",
	LinkOverlay:        "overlay",
	LinkOverlayActive:  "overlay-active",
	LinkOverlayContact: "overlay-contact",
}

func (s LinkStyle) String() string {
	if int(s) < 0 || int(s) >= len(linkStyleNames) {
		return "unknown"
	}
	return linkStyleNames[s]
}

// LinkStyleFor picks the desktop link variant. The contact link is always a pill;
// its active state is carried by aria-current rather than a separate variant.
func LinkStyleFor(routeIsHome, scrolled, isActive, isContact bool) LinkStyle {
	if ModeFor(routeIsHome, scrolled) == ModeOverlay {
		switch {
		case isContact:
			return LinkOverlayContact
		case isActive:
			return LinkOverlayActive
		default:
			return LinkOverlay
		}
	}
	switch {
	case isContact:
		return LinkSolidContact
	case isActive:
		return LinkSolidActive
	default:
		return LinkSolid
	}
}

const linkBase = "text-sm font-bold uppercase tracking-wide transition-all duration-300 px-5 py-2.5 rounded-full flex items-center justify-center "

// Overlay links always sit on their own backing (translucent chip or dark hover
// backing) above the dark gradient, so legibility never depends on the photo.
var linkClasses = [...]string{
	LinkSolid:          linkBase + "text-gray-600 hover:text-brand hover:bg-gray-100",
	LinkSolidActive:    linkBase + "text-brand bg-brand/5",
	LinkSolidContact:   linkBase + "bg-brand text-white hover:bg-brand-dark shadow-md hover:shadow-lg hover:-translate-y-0.5",
	LinkOverlay:        linkBase + "text-white bg-black/20 hover:bg-black/30 hover:backdrop-blur-sm border border-transparent",
	LinkOverlayActive:  linkBase + "bg-white/20 text-white backdrop-blur-md border border-white/30",
	LinkOverlayContact: linkBase + "bg-white text-brand hover:bg-gray-100 shadow-lg border-2 border-transparent",
}

// Class returns the CSS classes for the link variant.
func (s LinkStyle) Class() string {
	if int(s) < 0 || int(s) >= len(linkClasses) {
		return linkClasses[LinkSolid]
	}
	return linkClasses[s]
}

// BarClass returns the classes of the <nav> element for the mode.
func (m Mode) BarClass() string {
	if m == ModeOverlay {
		return "bg-gradient-to-b from-black/90 via-black/50 to-transparent py-6"
	}
	return "bg-white/95 backdrop-blur-md shadow-sm py-3"
}

// BrandClass returns the classes of the school name next to the logo.
func (m Mode) BrandClass() string {
	if m == ModeOverlay {
		return "text-white drop-shadow-lg"
	}
	return "text-gray-800"
}

// ToggleClass returns the classes of the mobile menu button.
func (m Mode) ToggleClass() string {
	if m == ModeOverlay {
		return "text-white drop-shadow-md"
	}
	return "text-gray-800"
}

// MobileLinkClass returns the classes of a link inside the full-screen mobile menu.
// The menu panel is always light, independent of the bar mode.
func MobileLinkClass(isContact, isActive bool) string {
	switch {
	case isContact:
		return "text-2xl font-bold px-8 py-3 bg-brand text-white rounded-full shadow-xl"
	case isActive:
		return "text-2xl font-bold text-brand"
	default:
		return "text-2xl font-bold text-gray-800 hover:text-brand"
	}
}
