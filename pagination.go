package blueprint

import (
	"log/slog"
	"math"
)

// pageState maps absolute document offsets onto pages. One pageState
// belongs to exactly one generation.
type pageState struct {
	count   int
	height  float64
	surface Surface
	log     *slog.Logger
}

func newPageState(s Surface, pageHeight float64, log *slog.Logger) *pageState {
	return &pageState{count: 1, height: pageHeight, surface: s, log: log}
}

// place activates the page that contains y+height, appending pages as
// needed, and returns y relative to that page's top edge.
//
// The page is chosen by the element's bottom edge but the offset is
// computed from its top edge, so an element straddling a page boundary
// lands entirely on the later page with a negative offset. Elements are
// never split.
func (p *pageState) place(y, height float64) float64 {
	target := int(math.Floor((y+height)/p.height)) + 1
	if target < 1 {
		// The formula yields page 0 or less for an element ending above
		// the first page. It is clamped to page 1 and keeps its negative
		// offset instead of shifting onto the page.
		target = 1
	}
	if target > p.count {
		for i := p.count; i < target; i++ {
			p.surface.AddPage()
		}
		p.log.Debug("blueprint: pages added", "from", p.count, "to", target)
		p.count = target
	}
	p.surface.SetPage(target)
	return y - float64(target-1)*p.height
}
