// Package components defines ECS components for the viewer's display slots.
package components

// Tile is the screen rectangle a display slot occupies.
type Tile struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether the screen point (px, py) lies inside the tile.
// The right and bottom edges belong to the neighbouring tile.
func (t Tile) Contains(px, py float32) bool {
	return px >= t.X && px < t.X+t.Width && py >= t.Y && py < t.Y+t.Height
}

// Layout splits a width x height area into rows x cols equal tiles in
// row-major order.
func Layout(width, height float32, rows, cols int) []Tile {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	w := width / float32(cols)
	h := height / float32(rows)

	tiles := make([]Tile, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tiles = append(tiles, Tile{X: float32(c) * w, Y: float32(r) * h, Width: w, Height: h})
		}
	}
	return tiles
}
