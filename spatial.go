package main

const spatialCellSize = 64.0 // ~2x the largest hull radius (ObstacleMaxRadius=55 bound)

// EntityRef identifies an entity in the grid
type EntityRef struct {
	Kind byte // 'e'=enemy, 'o'=obstacle
	Idx  int  // index into the corresponding flat list
}

// SpatialGrid is a fixed-cell grid for broad-phase collision pruning. The
// session rebuilds it every tick and queries it before running the narrow
// phase probes.
type SpatialGrid struct {
	cols, rows int
	cells      [][]EntityRef
}

// NewSpatialGrid sizes a grid to cover a worldW x worldH play field
func NewSpatialGrid(worldW, worldH float64) *SpatialGrid {
	cols := int(worldW/spatialCellSize) + 1
	rows := int(worldH/spatialCellSize) + 1
	return &SpatialGrid{
		cols:  cols,
		rows:  rows,
		cells: make([][]EntityRef, cols*rows),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) cellIdx(x, y float64) int {
	cx := int(x / spatialCellSize)
	cy := int(y / spatialCellSize)
	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cy*g.cols + cx
}

// Insert adds an entity reference at the given position
func (g *SpatialGrid) Insert(x, y float64, ref EntityRef) {
	idx := g.cellIdx(x, y)
	g.cells[idx] = append(g.cells[idx], ref)
}

// cellRange clamps a bounding box to grid cell coordinates
func (g *SpatialGrid) cellRange(x, y, radius float64) (minCX, maxCX, minCY, maxCY int) {
	minCX = int((x - radius) / spatialCellSize)
	maxCX = int((x + radius) / spatialCellSize)
	minCY = int((y - radius) / spatialCellSize)
	maxCY = int((y + radius) / spatialCellSize)
	if minCX < 0 {
		minCX = 0
	}
	if maxCX >= g.cols {
		maxCX = g.cols - 1
	}
	if minCY < 0 {
		minCY = 0
	}
	if maxCY >= g.rows {
		maxCY = g.rows - 1
	}
	return
}

// InsertCircle adds an entity reference to all cells overlapping its bounding box
func (g *SpatialGrid) InsertCircle(x, y, radius float64, ref EntityRef) {
	minCX, maxCX, minCY, maxCY := g.cellRange(x, y, radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idx := cy*g.cols + cx
			g.cells[idx] = append(g.cells[idx], ref)
		}
	}
}

// Query returns all entity refs in cells that overlap the given bounding box
func (g *SpatialGrid) Query(x, y, radius float64) []EntityRef {
	return g.QueryBuf(x, y, radius, nil)
}

// QueryBuf appends results to buf and returns the extended slice, avoiding
// per-call allocation on the hot path
func (g *SpatialGrid) QueryBuf(x, y, radius float64, buf []EntityRef) []EntityRef {
	minCX, maxCX, minCY, maxCY := g.cellRange(x, y, radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*g.cols+cx]...)
		}
	}
	return buf
}
