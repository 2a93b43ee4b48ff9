package dash

// Rect is a rectangular area in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Right returns the X coordinate of the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether the cell (x, y) lies within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Percentages splits 100 into n equal shares. The last share absorbs the
// remainder so the result always sums to 100.
func Percentages(n int) []int {
	if n <= 0 {
		return nil
	}
	shares := make([]int, n)
	each := 100 / n
	for i := range shares {
		shares[i] = each
	}
	shares[n-1] += 100 - each*n
	return shares
}

// Split partitions area into n regions: stacked rows in Horizontal mode,
// side-by-side columns in Vertical mode. The last region absorbs rounding so
// the regions tile area exactly.
func Split(area Rect, mode Mode, n int) []Rect {
	shares := Percentages(n)
	if shares == nil {
		return nil
	}
	total := area.Height
	if mode == Vertical {
		total = area.Width
	}

	regions := make([]Rect, n)
	offset := 0
	for i, pct := range shares {
		size := total * pct / 100
		if i == n-1 {
			size = total - offset
		}
		if mode == Vertical {
			regions[i] = Rect{X: area.X + offset, Y: area.Y, Width: size, Height: area.Height}
		} else {
			regions[i] = Rect{X: area.X, Y: area.Y + offset, Width: area.Width, Height: size}
		}
		offset += size
	}
	return regions
}

// RegionAt returns the index of the region containing (x, y), or -1.
func RegionAt(regions []Rect, x, y int) int {
	for i, r := range regions {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}
