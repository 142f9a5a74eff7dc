package main

import (
	"log"
	"sort"
)

// --- Node Layout Engine ---

// Layout computes one node per project, in the order given. Visual order is a
// consequence of ScreenTop, not of slice order. Nodes reference the caller's
// projects, so the slice must not be mutated while the nodes are in use.
func Layout(projects []Project, config TimelineConfig) []*Node {
	nodes := make([]*Node, 0, len(projects))
	for i := range projects {
		project := &projects[i]
		nodes = append(nodes, &Node{
			Project:       project,
			ScreenTop:     config.BaseOffset - project.Position*config.Spacing,
			InfoAlignment: effectiveInfoAlignment(project, config),
		})
	}
	return nodes
}

// effectiveInfoAlignment resolves a project's info alignment against the config default.
func effectiveInfoAlignment(project *Project, config TimelineConfig) string {
	if project.InfoAlignment != "" {
		return project.InfoAlignment
	}
	return config.DefaultInfoAlignment
}

// sortByPositionDesc returns nodes ordered from the most recent to the oldest.
// Ties keep input order, or ascending id order with TieBreakID.
func sortByPositionDesc(nodes []*Node, tieBreak string) []*Node {
	sorted := make([]*Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Project, sorted[j].Project
		if a.Position != b.Position {
			return a.Position > b.Position
		}
		if tieBreak == TieBreakID {
			return a.ID < b.ID
		}
		return false
	})
	return sorted
}

// --- Scene ---

// Scene is the retained set of elements the engine has placed: nodes, static
// connectors, and the per-node info panels and hover splines. It is what the
// SVG and HTML generators serialise.
type Scene struct {
	nodes      []*Node
	byID       map[string]*Node
	connectors []StaticConnector
	panels     map[string]*InfoPanel
	splines    map[string]*HoverSpline
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{
		byID:    make(map[string]*Node),
		panels:  make(map[string]*InfoPanel),
		splines: make(map[string]*HoverSpline),
	}
}

// Mount replaces the whole node set. Everything derived from the previous set
// (connectors, panels, splines) is torn down with it. Nodes with an empty or
// duplicate id are skipped since splines are keyed by id.
func (s *Scene) Mount(nodes []*Node) {
	s.nodes = make([]*Node, 0, len(nodes))
	s.byID = make(map[string]*Node, len(nodes))
	s.connectors = nil
	s.panels = make(map[string]*InfoPanel)
	s.splines = make(map[string]*HoverSpline)

	for _, node := range nodes {
		id := node.ID()
		if id == "" {
			log.Printf("Warning: skipping node without id (position %g)", node.Project.Position)
			continue
		}
		if _, exists := s.byID[id]; exists {
			log.Printf("Warning: skipping node with duplicate id '%s'", id)
			continue
		}
		s.byID[id] = node
		s.nodes = append(s.nodes, node)
	}
	debugf("Mounted %d nodes", len(s.nodes))
}

// Nodes returns the mounted nodes in insertion order.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Node looks up a mounted node by id.
func (s *Scene) Node(id string) (*Node, bool) {
	node, ok := s.byID[id]
	return node, ok
}

// Connectors returns the current static connectors.
func (s *Scene) Connectors() []StaticConnector {
	out := make([]StaticConnector, len(s.connectors))
	copy(out, s.connectors)
	return out
}

func (s *Scene) setConnectors(connectors []StaticConnector) {
	s.connectors = connectors
}

// Panel returns the info panel of a node, if it is currently shown.
func (s *Scene) Panel(id string) (*InfoPanel, bool) {
	panel, ok := s.panels[id]
	return panel, ok
}

// Spline returns the hover spline of a node, if one exists.
func (s *Scene) Spline(id string) (*HoverSpline, bool) {
	spline, ok := s.splines[id]
	return spline, ok
}

// Splines returns all hover splines ordered by node id.
func (s *Scene) Splines() []*HoverSpline {
	out := make([]*HoverSpline, 0, len(s.splines))
	for _, spline := range s.splines {
		out = append(out, spline)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

// Panels returns all visible info panels ordered by node id.
func (s *Scene) Panels() []*InfoPanel {
	out := make([]*InfoPanel, 0, len(s.panels))
	for _, panel := range s.panels {
		out = append(out, panel)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

// removeHover drops the panel and spline keyed by id together.
func (s *Scene) removeHover(id string) {
	delete(s.panels, id)
	delete(s.splines, id)
}
