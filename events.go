package main

// Event is one input the controller reacts to. Producers (file watcher, CLI,
// an embedding host) send events; only the controller's loop applies them.
type Event interface {
	isEvent()
}

// PointerMoved reports the pointer position in viewport pixels.
type PointerMoved struct {
	Position Point
}

// HoverEntered reports the pointer entering a node.
type HoverEntered struct {
	NodeID string
}

// HoverLeft reports the pointer leaving a node.
type HoverLeft struct {
	NodeID string
}

// Clicked reports a click on a node.
type Clicked struct {
	NodeID string
}

// Resized reports a new viewport size.
type Resized struct {
	Viewport Size
}

// ProjectsChanged delivers a new project list. A nil Config keeps the current one.
type ProjectsChanged struct {
	Projects []Project
	Config   *TimelineConfig
}

// Wheel reports a wheel delta in pixels (positive scrolls down).
type Wheel struct {
	DeltaY float64
}

func (PointerMoved) isEvent()    {}
func (HoverEntered) isEvent()    {}
func (HoverLeft) isEvent()       {}
func (Clicked) isEvent()         {}
func (Resized) isEvent()         {}
func (ProjectsChanged) isEvent() {}
func (Wheel) isEvent()           {}
