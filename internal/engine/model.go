package engine

import (
	"errors"

	"github.com/five82/lanes/internal/mipmap"
	"github.com/five82/lanes/internal/trace"
	"github.com/five82/lanes/internal/viewport"
)

// ErrIncompleteLoad is recorded when a load reports success without both
// halves of the document.
var ErrIncompleteLoad = errors.New("load returned no trace")

// Geometry fixes the canvas regions, in pixels. The mini timeline sits on
// top, the tick header below it, thread labels on the left and the detail
// view fills the rest, less a scrollbar strip along its right and bottom
// edges when ScrollbarSize is positive.
type Geometry struct {
	LabelWidth    int
	MiniHeight    int
	HeaderHeight  int
	LaneHeight    int
	LaneSpacing   int
	ScrollbarSize int
}

// DefaultGeometry suits a terminal where one cell is one pixel.
func DefaultGeometry() Geometry {
	return Geometry{
		LabelWidth:    24,
		MiniHeight:    3,
		HeaderHeight:  1,
		LaneHeight:    1,
		LaneSpacing:   1,
		ScrollbarSize: 1,
	}
}

// Settings tune navigation.
type Settings struct {
	ZoomStep      float64 // zoom factor per wheel notch
	MinSpan       float64 // narrowest detail range in trace units
	MinEventWidth float64 // events narrower than this many pixels are not drawn or hit
	DragThreshold float64 // pixels before a press becomes a drag
	TickSpacing   float64 // minimum pixels between ruler ticks
	ScrollRows    int     // rows per wheel notch when scrolling vertically
}

// DefaultSettings returns the stock navigation tuning.
func DefaultSettings() Settings {
	return Settings{
		ZoomStep:      1.1,
		MinSpan:       100,
		MinEventWidth: 5,
		DragThreshold: 3,
		TickSpacing:   12,
		ScrollRows:    3,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.ZoomStep <= 1 {
		s.ZoomStep = d.ZoomStep
	}
	if s.MinSpan <= 0 {
		s.MinSpan = d.MinSpan
	}
	if s.MinEventWidth <= 0 {
		s.MinEventWidth = d.MinEventWidth
	}
	if s.DragThreshold <= 0 {
		s.DragThreshold = d.DragThreshold
	}
	if s.TickSpacing <= 0 {
		s.TickSpacing = d.TickSpacing
	}
	if s.ScrollRows <= 0 {
		s.ScrollRows = d.ScrollRows
	}
	return s
}

type area int

const (
	areaNone area = iota
	areaMini
	areaHeader
	areaLabels
	areaDetail
	areaHScroll
	areaVScroll
)

// press tracks a held button from PointerDown to PointerUp.
type press struct {
	button   Button
	area     area
	x, y     float64
	dragging bool
	mapper   viewport.Mapper
	grab     float64 // scrollbar thumb offset under the pointer
}

// Model is the complete engine state. It is a value: Update returns a new
// Model and never mutates its argument.
type Model struct {
	Geometry Geometry
	Settings Settings

	width, height int

	open       bool
	loading    bool
	source     string
	generation uint64
	err        error

	store *trace.Store
	index *mipmap.Index
	view  viewport.State
	press *press
}

// New returns an empty model with no document open.
func New(g Geometry, s Settings) Model {
	g.LaneHeight = max(g.LaneHeight, 1)
	g.LaneSpacing = max(g.LaneSpacing, 0)
	g.ScrollbarSize = max(g.ScrollbarSize, 0)
	return Model{Geometry: g, Settings: s.withDefaults()}
}

// Store returns the installed trace, or nil.
func (m Model) Store() *trace.Store { return m.store }

// Index returns the installed mipmap index, or nil.
func (m Model) Index() *mipmap.Index { return m.index }

// View returns the navigation state.
func (m Model) View() viewport.State { return m.view }

// Err returns the last load error.
func (m Model) Err() error { return m.err }

// Loading reports whether a load is in flight.
func (m Model) Loading() bool { return m.loading }

// Source returns the source of the current or pending document.
func (m Model) Source() string { return m.source }

// Generation returns the tag the next TraceLoaded must carry.
func (m Model) Generation() uint64 { return m.generation }

// Open reports whether a document is open, loaded or not.
func (m Model) Open() bool { return m.open }

// Ready reports whether a trace is installed.
func (m Model) Ready() bool { return m.store != nil && m.index != nil }

// Size returns the canvas dimensions.
func (m Model) Size() (int, int) { return m.width, m.height }

// Dragging reports whether a press has turned into a drag.
func (m Model) Dragging() bool { return m.press != nil && m.press.dragging }

func (m Model) detailWidth() int {
	return max(m.width-m.Geometry.LabelWidth-m.Geometry.ScrollbarSize, 0)
}

func (m Model) detailHeight() int {
	return max(m.height-m.Geometry.MiniHeight-m.Geometry.HeaderHeight-m.Geometry.ScrollbarSize, 0)
}

func (m Model) detailTop() int {
	return m.Geometry.MiniHeight + m.Geometry.HeaderHeight
}

func (m Model) limits() viewport.Limits {
	return viewport.LimitsFor(m.store.Bounds(), m.Settings.MinSpan)
}

func (m Model) mini() viewport.Mini {
	return viewport.Mini{Bounds: m.store.Bounds(), Width: float64(m.detailWidth())}
}

func (m Model) layout() viewport.Layout {
	return viewport.NewLayout(m.store, m.view.Collapsed, m.Geometry.LaneHeight, m.Geometry.LaneSpacing)
}

func (m Model) hScrollbar() viewport.Scrollbar {
	return viewport.HorizontalScrollbar(m.view.Mapper, m.limits(), float64(m.detailWidth()))
}

func (m Model) vScrollbar() viewport.Scrollbar {
	return viewport.VerticalScrollbar(m.view, m.layout().TotalHeight(), float64(m.detailHeight()))
}

// areaAt classifies a canvas point.
func (m Model) areaAt(x, y float64) area {
	g := m.Geometry
	if x < 0 || y < 0 || x >= float64(m.width) || y >= float64(m.height) {
		return areaNone
	}
	left := x < float64(g.LabelWidth)
	right := x >= float64(g.LabelWidth+m.detailWidth())
	bottom := y >= float64(m.detailTop()+m.detailHeight())
	switch {
	case bottom:
		if left || right {
			return areaNone
		}
		return areaHScroll
	case right:
		if y < float64(m.detailTop()) {
			return areaNone
		}
		return areaVScroll
	case y < float64(g.MiniHeight):
		if left {
			return areaNone
		}
		return areaMini
	case y < float64(m.detailTop()):
		if left {
			return areaNone
		}
		return areaHeader
	case left:
		return areaLabels
	default:
		return areaDetail
	}
}

// toDetail converts canvas coordinates to detail-area coordinates.
func (m Model) toDetail(x, y float64) (float64, float64) {
	return x - float64(m.Geometry.LabelWidth), y - float64(m.detailTop())
}
