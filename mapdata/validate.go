package mapdata

import (
	"errors"
	"fmt"
)

// ErrInconsistent is wrapped by CheckInvariants.
var ErrInconsistent = errors.New("mapdata: structures out of sync")

// CheckInvariants cross-checks the three structures: the wall tree must be
// balanced and the graph symmetric. Every wall must be complete with both
// endpoints in the vertex tree and an edge in the graph carrying its id, and
// every vertex in the tree must have at least one wall.
func (m *MapData) CheckInvariants() error {
	if err := m.walls.CheckBalance(); err != nil {
		return err
	}
	if err := m.graph.CheckSymmetry(); err != nil {
		return err
	}

	for w := range m.walls.All() {
		if !w.Complete() {
			return fmt.Errorf("%w: wall %d is missing an endpoint", ErrInconsistent, w.ID)
		}
		if w.Degenerate() {
			return fmt.Errorf("%w: wall %d has both ends at %v", ErrInconsistent, w.ID, w.Start.Point())
		}
		if got, ok := m.vertices.Search(w.Start.Point()); !ok || got != w.Start {
			return fmt.Errorf("%w: wall %d start %v not in vertex tree", ErrInconsistent, w.ID, w.Start)
		}
		if got, ok := m.vertices.Search(w.End.Point()); !ok || got != w.End {
			return fmt.Errorf("%w: wall %d end %v not in vertex tree", ErrInconsistent, w.ID, w.End)
		}
		if id, ok := m.graph.WallBetween(w.Start.ID, w.End.ID); !ok || id != w.ID {
			return fmt.Errorf("%w: graph has no edge for wall %d", ErrInconsistent, w.ID)
		}
	}

	for v := range m.vertices.All() {
		if !m.graph.Contains(v.ID) {
			return fmt.Errorf("%w: vertex %v has no walls", ErrInconsistent, v)
		}
	}

	if n, walls := m.graph.EdgeCount(), m.walls.Len(); n != walls {
		return fmt.Errorf("%w: graph has %d edges for %d walls", ErrInconsistent, n, walls)
	}
	return nil
}
