package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScrolledTracksLatestOffsetOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		offsets []int
		want    bool
	}{
		{name: "no events", offsets: nil, want: false},
		{name: "at threshold", offsets: []int{20}, want: false},
		{name: "just past threshold", offsets: []int{21}, want: true},
		{name: "scrolled then back to top", offsets: []int{400, 900, 0}, want: false},
		{name: "top then scrolled", offsets: []int{0, 5, 300}, want: true},
		{name: "duplicate values", offsets: []int{50, 50, 50}, want: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			feed := NewScrollFeed()
			bar := NewBar(PathHome)
			bar.Mount(feed)
			defer bar.Unmount()

			for _, y := range tc.offsets {
				feed.Publish(y)
			}
			require.Equal(t, tc.want, bar.Scrolled())
		})
	}
}

func TestOverlayOnlyOnUnscrolledHome(t *testing.T) {
	t.Parallel()

	for _, it := range Main {
		for _, scrolled := range []bool{false, true} {
			home := it.Path == PathHome
			mode := ModeFor(home, scrolled)
			if home && !scrolled {
				require.Equal(t, ModeOverlay, mode, "route %s scrolled=%v", it.Path, scrolled)
			} else {
				require.Equal(t, ModeSolid, mode, "route %s scrolled=%v", it.Path, scrolled)
			}
		}
	}
}

func TestBarViewModeFollowsScrollFeed(t *testing.T) {
	t.Parallel()

	feed := NewScrollFeed()
	bar := NewBar(PathHome)
	bar.Mount(feed)
	defer bar.Unmount()

	require.Equal(t, ModeOverlay, bar.View().Mode)
	feed.Publish(120)
	require.Equal(t, ModeSolid, bar.View().Mode)
	feed.Publish(3)
	require.Equal(t, ModeOverlay, bar.View().Mode)

	offer := NewBar(PathOffer)
	offer.Mount(feed)
	defer offer.Unmount()
	require.Equal(t, ModeSolid, offer.View().Mode)
	feed.Publish(0)
	require.Equal(t, ModeSolid, offer.View().Mode)
}

func TestLinkStyleMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		home, scrolled, active, contact bool
		want                            LinkStyle
	}{
		{true, false, false, false, LinkOverlay},
		{true, false, true, false, LinkOverlayActive},
		{true, false, false, true, LinkOverlayContact},
		{true, false, true, true, LinkOverlayContact},
		{true, true, true, false, LinkSolidActive},
		{true, true, false, true, LinkSolidContact},
		{false, false, false, false, LinkSolid},
		{false, false, true, false, LinkSolidActive},
		{false, true, true, true, LinkSolidContact},
	}
	for _, tc := range tests {
		got := LinkStyleFor(tc.home, tc.scrolled, tc.active, tc.contact)
		require.Equal(t, tc.want, got, "%+v", tc)
	}
}

func TestOverlayLinksNeverRestOnBareBackground(t *testing.T) {
	t.Parallel()

	for _, style := range []LinkStyle{LinkOverlay, LinkOverlayActive, LinkOverlayContact} {
		require.Regexp(t, `(^| )bg-(black|white)(/\d+)?( |$)`, style.Class(), "style %s", style)
	}
	require.Contains(t, ModeOverlay.BarClass(), "from-black/90")
}

func TestMenuClosesOnLinkActivation(t *testing.T) {
	t.Parallel()

	for _, it := range Main {
		for _, open := range []bool{false, true} {
			bar := NewBar(PathAbout)
			bar.Mount(nil)
			if open {
				bar.ToggleMenu()
			}
			require.Equal(t, open, bar.MenuOpen())

			target, ok := bar.ActivateLink(it.Path)
			require.True(t, ok)
			require.Equal(t, it.Path, target)
			require.False(t, bar.MenuOpen())
		}
	}

	bar := NewBar(PathHome)
	bar.ToggleMenu()
	_, ok := bar.ActivateLink("/ofertaeducativa")
	require.False(t, ok)
	require.False(t, bar.MenuOpen(), "unknown targets still close the menu")
}

func TestToggleMenuFlips(t *testing.T) {
	t.Parallel()

	bar := NewBar(PathHome)
	bar.Mount(nil)
	bar.ToggleMenu()
	require.True(t, bar.View().MenuOpen)
	bar.ToggleMenu()
	require.False(t, bar.View().MenuOpen)
}

func TestExactlyOneActiveLinkPerRoute(t *testing.T) {
	t.Parallel()

	for _, it := range Main {
		view := NewBar(it.Path).View()
		var active []string
		for _, link := range view.Links {
			if link.Active {
				active = append(active, link.Href)
			}
		}
		require.Equal(t, []string{it.Path}, active, "route %s", it.Path)
	}

	for _, link := range NewBar("/oferta/primaria").View().Links {
		require.False(t, link.Active, "no prefix matching: %s", link.Href)
	}
}

func TestViewCarriesBothScrollVariants(t *testing.T) {
	t.Parallel()

	home := NewBar(PathHome).View()
	require.Equal(t, ModeOverlay.BarClass(), home.Bar.Top)
	require.Equal(t, ModeSolid.BarClass(), home.Bar.Scrolled)
	require.Equal(t, home.Bar.Top, home.Bar.Current)
	require.Equal(t, ScrollThreshold, home.Threshold)

	contact := NewBar(PathContact).View()
	require.Equal(t, contact.Bar.Top, contact.Bar.Scrolled, "non-home routes never change mode")
	for _, link := range contact.Links {
		require.Equal(t, link.Class.Top, link.Class.Scrolled)
	}
}

func TestUnmountReleasesSubscription(t *testing.T) {
	t.Parallel()

	feed := NewScrollFeed()
	bar := NewBar(PathHome)
	bar.Mount(feed)
	require.Equal(t, 1, feed.Subscribers())
	require.True(t, bar.Mounted())

	bar.Mount(feed)
	require.Equal(t, 1, feed.Subscribers(), "remount must not leak the first subscription")

	bar.Unmount()
	bar.Unmount()
	require.Equal(t, 0, feed.Subscribers())
	require.False(t, bar.Mounted())

	feed.Publish(500)
	require.False(t, bar.Scrolled(), "released bars ignore later offsets")
}

func TestUnmountRunsOnPanicPath(t *testing.T) {
	t.Parallel()

	feed := NewScrollFeed()
	func() {
		defer func() { _ = recover() }()
		bar := NewBar(PathHome)
		bar.Mount(feed)
		defer bar.Unmount()
		panic("render failed")
	}()
	require.Equal(t, 0, feed.Subscribers())
}

func TestFooterLinksUseRouteTable(t *testing.T) {
	t.Parallel()

	links := FooterLinks()
	require.Len(t, links, 4)
	hrefs := map[string]string{}
	for _, l := range links {
		hrefs[l.LabelKey] = l.Href
	}
	require.Equal(t, "/", hrefs["footer.nav.home"])
	require.Equal(t, "/conocenos", hrefs["footer.nav.about"])
	require.Equal(t, "/oferta", hrefs["footer.nav.offer"])
	require.Equal(t, "/contacto", hrefs["footer.nav.contact"])
}
