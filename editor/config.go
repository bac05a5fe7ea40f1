package editor

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by Config.Validate
var ErrInvalidConfig = errors.New("invalid editor config")

// Config holds the grid editor settings
type Config struct {
	GridWidth    int     // Width of the grid in grid units
	GridHeight   int     // Height of the grid in grid units
	SnapDistance float64 // Radius within which a cursor snaps to a vertex
	GridLines    int     // Number of background grid lines in each direction
}

// DefaultConfig returns the settings the editor starts with
func DefaultConfig() Config {
	return Config{
		GridWidth:    200,
		GridHeight:   200,
		SnapDistance: 3,
		GridLines:    10,
	}
}

// Validate checks that the sizes are usable
func (c Config) Validate() error {
	if c.GridWidth <= 0 || c.GridHeight <= 0 {
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfig, c.GridWidth, c.GridHeight)
	}
	if c.SnapDistance < 0 {
		return fmt.Errorf("%w: negative snap distance %v", ErrInvalidConfig, c.SnapDistance)
	}
	if c.GridLines < 0 {
		return fmt.Errorf("%w: negative grid line count %d", ErrInvalidConfig, c.GridLines)
	}
	return nil
}
