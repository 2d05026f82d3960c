package atap

// FloodFill replaces the 4-connected region around (x, y) with c.
//
// A pixel joins the region when every channel differs from the seed pixel's
// original color by at most tolerance (0 means exact match). The traversal
// uses an explicit queue and a visited bitmap, so each pixel is examined at
// most once regardless of region size.
//
// FloodFill returns ErrOutOfBounds when the seed lies outside pm and
// ErrNoChange, leaving pm untouched, when c equals the seed color.
func FloodFill(pm *Pixmap, x, y int, c Color, tolerance uint8) (*Patch, error) {
	seed, err := pm.Pixel(x, y)
	if err != nil {
		return nil, err
	}
	if seed == c {
		return nil, ErrNoChange
	}

	rec := newRecorder(pm)
	floodVisit(pm, x, y, seed, tolerance, func(px, py int) {
		rec.set(px, py, c)
	})
	return rec.finish(), nil
}

// FloodSelect returns the mask of the region FloodFill would color.
func FloodSelect(pm *Pixmap, x, y int, tolerance uint8) (*Mask, error) {
	seed, err := pm.Pixel(x, y)
	if err != nil {
		return nil, err
	}

	m := NewMask(pm.width, pm.height)
	floodVisit(pm, x, y, seed, tolerance, func(px, py int) {
		m.data[py*m.width+px] = 255
	})
	return m, nil
}

// floodVisit calls fn once for every pixel of the region matching seed.
// Pixels are marked visited when queued and matched against their color at
// that time; fn may recolor pixels it has been handed.
func floodVisit(pm *Pixmap, x, y int, seed Color, tolerance uint8, fn func(x, y int)) int {
	w, h := pm.width, pm.height
	visited := make([]uint64, (w*h+63)/64)
	mark := func(idx int) bool {
		word, bit := idx/64, uint(idx&63)
		if visited[word]&(1<<bit) != 0 {
			return false
		}
		visited[word] |= 1 << bit
		return true
	}
	matches := func(px, py int) bool {
		return maxChannelDiff(pm.pixel(px, py), seed) <= tolerance
	}

	queue := []int{y*w + x}
	mark(y*w + x)
	count := 0

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		px, py := idx%w, idx/w
		fn(px, py)
		count++

		if px > 0 && matches(px-1, py) && mark(idx-1) {
			queue = append(queue, idx-1)
		}
		if px < w-1 && matches(px+1, py) && mark(idx+1) {
			queue = append(queue, idx+1)
		}
		if py > 0 && matches(px, py-1) && mark(idx-w) {
			queue = append(queue, idx-w)
		}
		if py < h-1 && matches(px, py+1) && mark(idx+w) {
			queue = append(queue, idx+w)
		}
	}
	return count
}
