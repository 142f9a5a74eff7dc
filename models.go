package main

// --- Content Structs ---

// Project is one portfolio entry as delivered by the content layer.
// It is treated as immutable for the lifetime of one render cycle.
type Project struct {
	ID                 string   `json:"id" yaml:"id"`
	Position           float64  `json:"position" yaml:"position"`                     // Chronological ordinate, larger = more recent
	HorizontalPosition string   `json:"horizontalPosition" yaml:"horizontalPosition"` // Lane token: "left", "center", "right"
	Size               string   `json:"size" yaml:"size"`                             // Visual scale token: "small", "medium", "large"
	Name               string   `json:"name" yaml:"name"`
	ShortDescription   string   `json:"shortDescription" yaml:"shortDescription"`
	Year               string   `json:"year" yaml:"year"`
	Collection         string   `json:"collection,omitempty" yaml:"collection,omitempty"`       // Provenance only
	InfoAlignment      string   `json:"infoAlignment,omitempty" yaml:"infoAlignment,omitempty"` // Falls back to TimelineConfig.DefaultInfoAlignment
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`     // Passed through to the detail callback
	Images             []string `json:"images,omitempty" yaml:"images,omitempty"`
}

// TimelineConfig maps project positions onto the vertical axis.
type TimelineConfig struct {
	BaseOffset           float64 `json:"baseOffset" yaml:"baseOffset"` // Vertical origin in vh
	Spacing              float64 `json:"spacing" yaml:"spacing"`       // vh per unit of position
	DefaultInfoAlignment string  `json:"defaultInfoAlignment" yaml:"defaultInfoAlignment"`
}

// Manifest is the top-level projects.json file.
type Manifest struct {
	TimelineConfig TimelineConfig    `json:"timelineConfig"`
	Collections    []CollectionEntry `json:"collections"`
}

// CollectionEntry points at one collection file, relative to the manifest.
type CollectionEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// CollectionFile is the body of one collection file.
type CollectionFile struct {
	Projects []Project `json:"projects" yaml:"projects"`
}

// Collection is a loaded collection file tagged with its manifest name.
type Collection struct {
	Name     string
	Projects []Project
}

// Content is everything the engine needs from the content layer.
type Content struct {
	Config      TimelineConfig
	Collections []Collection
}

// --- Geometry Value Types ---

// Point is a 2D coordinate in pixels unless stated otherwise.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect is an axis-aligned box given by its top-left corner and size.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// --- Derived Scene Elements ---

// Node is the on-screen representation of one Project. Its bounding box is
// read from a GeometrySource, never stored.
type Node struct {
	Project       *Project
	ScreenTop     float64 // vh, relative to the timeline container
	InfoAlignment string  // Project alignment, or the config default
}

// ID returns the owning project's id.
func (n *Node) ID() string { return n.Project.ID }

// InfoPanel is the floating detail overlay shown while a node is hovered.
type InfoPanel struct {
	NodeID    string
	Rect      Rect   // Viewport pixels
	Alignment string // Effective info alignment token
}

// StaticConnector is a straight segment between two chronologically adjacent
// nodes, in container-relative pixels.
type StaticConnector struct {
	FromID, ToID string
	Start        Point   // Anchor at the first node's center
	Length       float64 // Distance between the two centers
	AngleDeg     float64 // Rotation about Start
}

// End returns the segment end point implied by Start, Length and AngleDeg.
func (c StaticConnector) End() Point {
	return pointAlong(c.Start, c.Length, c.AngleDeg)
}

// HoverSpline is the cubic curve from a hovered node to its info panel,
// in viewport pixels.
type HoverSpline struct {
	NodeID string
	Start  Point
	C1, C2 Point
	End    Point
}
