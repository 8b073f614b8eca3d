package engine

import (
	"github.com/five82/lanes/internal/mipmap"
	"github.com/five82/lanes/internal/trace"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Modifiers is a bit set of held keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
)

// Input is one discrete event fed to Update. Coordinates are canvas pixels
// with the origin at the top-left of the timeline canvas.
type Input interface {
	isInput()
}

// PointerMoved reports pointer motion with no button held.
type PointerMoved struct {
	X, Y float64
}

// PointerDown reports a button press.
type PointerDown struct {
	Button Button
	X, Y   float64
}

// PointerUp reports a button release.
type PointerUp struct {
	Button Button
	X, Y   float64
}

// PointerDragged reports motion while a button is held.
type PointerDragged struct {
	X, Y float64
}

// PointerDoubleClicked reports a second left press in quick succession.
type PointerDoubleClicked struct {
	X, Y float64
}

// WheelScrolled reports wheel notches; positive Delta scrolls up (zoom in).
type WheelScrolled struct {
	Delta float64
	X, Y  float64
	Mods  Modifiers
}

// ThreadLabelClicked toggles a thread's collapse flag.
type ThreadLabelClicked struct {
	Thread int64
}

// ViewportResized reports new canvas dimensions.
type ViewportResized struct {
	Width, Height int
}

// Document is the atomically installed result of a load.
type Document struct {
	Store *trace.Store
	Index *mipmap.Index
}

// LoadStarted marks a new load in flight; it bumps the generation that the
// matching TraceLoaded must carry.
type LoadStarted struct {
	Source string
}

// TraceLoaded delivers a finished load. Results whose Generation does not
// match the model's are discarded.
type TraceLoaded struct {
	Doc        Document
	Err        error
	Generation uint64
}

// DocumentClosed drops the trace and invalidates any load in flight.
type DocumentClosed struct{}

// ResetView zooms to fit and scrolls to the top.
type ResetView struct{}

// PanBy shifts the detail range by a fraction of its span.
type PanBy struct {
	Fraction float64
}

// ZoomBy zooms around the center of the detail area.
type ZoomBy struct {
	Factor float64
}

// ScrollBy scrolls the thread rows vertically.
type ScrollBy struct {
	Rows int
}

// CollapseAll collapses every thread.
type CollapseAll struct{}

// ExpandAll expands every thread.
type ExpandAll struct{}

// FocusLost cancels any in-progress pointer interaction.
type FocusLost struct{}

// ClearSelection drops the selected event.
type ClearSelection struct{}

// RevealEvent selects an event and scrolls it into view.
type RevealEvent struct {
	Ref trace.EventRef
}

func (PointerMoved) isInput()         {}
func (PointerDown) isInput()          {}
func (PointerUp) isInput()            {}
func (PointerDragged) isInput()       {}
func (PointerDoubleClicked) isInput() {}
func (WheelScrolled) isInput()        {}
func (ThreadLabelClicked) isInput()   {}
func (ViewportResized) isInput()      {}
func (LoadStarted) isInput()          {}
func (TraceLoaded) isInput()          {}
func (DocumentClosed) isInput()       {}
func (ResetView) isInput()            {}
func (PanBy) isInput()                {}
func (ZoomBy) isInput()               {}
func (ScrollBy) isInput()             {}
func (CollapseAll) isInput()          {}
func (ExpandAll) isInput()            {}
func (FocusLost) isInput()            {}
func (ClearSelection) isInput()       {}
func (RevealEvent) isInput()          {}
