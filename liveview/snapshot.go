// Package liveview broadcasts read-only map snapshots to websocket clients.
package liveview

import (
	"leveled/core"
	"leveled/mapdata"
)

// WallView is a wall with its endpoints given by id.
type WallView struct {
	ID    core.WallID   `json:"id"`
	Start core.VertexID `json:"start"`
	End   core.VertexID `json:"end"`
}

// Snapshot is an immutable copy of a map. It is not a save format: ids are
// only meaningful within one editing session.
type Snapshot struct {
	Seq         uint64        `json:"seq"`
	VertexCount int           `json:"vertexCount"`
	WallCount   int           `json:"wallCount"`
	Vertices    []core.Vertex `json:"vertices"`
	Walls       []WallView    `json:"walls"`
}

// NewSnapshot copies m. Vertices come in tree order, walls by id. It must
// be called on the goroutine that edits m.
func NewSnapshot(m *mapdata.MapData) Snapshot {
	s := Snapshot{
		VertexCount: m.VertexCount(),
		WallCount:   m.WallCount(),
		Vertices:    make([]core.Vertex, 0, m.VertexCount()),
		Walls:       make([]WallView, 0, m.WallCount()),
	}
	for v := range m.Vertices().All() {
		s.Vertices = append(s.Vertices, *v)
	}
	for w := range m.Walls().All() {
		s.Walls = append(s.Walls, WallView{ID: w.ID, Start: w.Start.ID, End: w.End.ID})
	}
	return s
}
