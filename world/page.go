package world

// Page is a virtual scrollable document seen through a fixed viewport.
//
// Top is the offset of the document's top edge relative to the viewport: 0 at
// the start and negative once scrolled down, never below -(height - viewport).
type Page struct {
	height   float64
	viewport float64
	step     float64

	top float64
}

// NewPage returns a page scrolled to the top. step is the distance moved per
// wheel notch.
func NewPage(height, viewport, step float64) *Page {
	if viewport < 0 {
		viewport = 0
	}
	if height < viewport {
		height = viewport
	}
	return &Page{height: height, viewport: viewport, step: step}
}

func (p *Page) Top() float64 { return p.top }

// MinTop is the offset when scrolled all the way down.
func (p *Page) MinTop() float64 { return -(p.height - p.viewport) }

// ScrollBy scrolls down by notches wheel steps (negative scrolls up). It reports
// whether the offset changed; nothing is emitted at the clamps.
func (p *Page) ScrollBy(notches float64) bool {
	return p.ScrollTo(p.top - notches*p.step)
}

// ScrollPages scrolls down by whole viewports.
func (p *Page) ScrollPages(n float64) bool {
	return p.ScrollTo(p.top - n*p.viewport)
}

// ScrollTo sets the offset, clamped to the page. It reports whether the offset
// changed.
func (p *Page) ScrollTo(top float64) bool {
	top = min(max(top, p.MinTop()), 0)
	if top == p.top {
		return false
	}
	p.top = top
	return true
}

func (p *Page) Home() bool { return p.ScrollTo(0) }
func (p *Page) End() bool  { return p.ScrollTo(p.MinTop()) }
