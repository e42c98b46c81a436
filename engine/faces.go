package engine

import (
	"math"
)

// Center marks a face corner that sits on the centroid of all points
// rather than on a point.
const Center = -1

// Face is a triangle over point indices; a corner may be Center.
type Face [3]int

const faceDedupe = 30.0

// Faces derives triangular surface facets from the point ring and caches
// them by point count. Positions are read live, so cached faces follow
// moving points.
type Faces struct {
	count int
	faces []Face
	valid bool
}

// Invalidate drops the cache.
func (f *Faces) Invalidate() {
	f.valid = false
	f.faces = nil
}

// Of returns the faces for points, rebuilding them when the count changed.
func (f *Faces) Of(points []Point) []Face {
	if f.valid && f.count == len(points) {
		return f.faces
	}
	f.faces = findFaces(points)
	f.count = len(points)
	f.valid = true
	return f.faces
}

type faceCandidate struct {
	face   Face
	cx, cy float64
}

func findFaces(points []Point) []Face {
	n := len(points)
	if n < 6 {
		return nil
	}

	var candidates []faceCandidate
	add := func(a, b, c int, minArea, maxArea float64, check func(d12, d13, d23 float64) bool) {
		ax, ay := corner(points, a)
		bx, by := corner(points, b)
		cx, cy := corner(points, c)
		area := math.Abs((ax*(by-cy) + bx*(cy-ay) + cx*(ay-by)) / 2)
		if area <= minArea || area >= maxArea {
			return
		}
		if check != nil && !check(math.Hypot(ax-bx, ay-by), math.Hypot(ax-cx, ay-cy), math.Hypot(bx-cx, by-cy)) {
			return
		}
		candidates = append(candidates, faceCandidate{
			face: Face{a, b, c},
			cx:   (ax + bx + cx) / 3,
			cy:   (ay + by + cy) / 3,
		})
	}

	// Consecutive triangles
	for i := 0; i < n; i++ {
		for offset := 1; offset <= 3; offset++ {
			add(i, (i+offset)%n, (i+offset+1)%n, 20, 15000, nil)
		}
	}

	// Fan from the centroid
	for i := 0; i < n; i++ {
		add(Center, i, (i+1)%n, 50, 12000, nil)
	}

	// Skipping points, rejecting slivers
	for skip := 2; skip <= 5; skip++ {
		for i := 0; i < n; i += skip {
			add(i, (i+skip)%n, (i+skip*2)%n, 100, 10000, func(d12, d13, d23 float64) bool {
				maxSide := math.Max(d12, math.Max(d13, d23))
				minSide := math.Min(d12, math.Min(d13, d23))
				return maxSide < 600 && minSide > 10 && maxSide/minSide < 15
			})
		}
	}

	// Crossed
	if n >= 12 {
		for i := 0; i < n; i += 3 {
			for j := i + 6; j < n; j += 3 {
				add(i, j%n, (j+3)%n, 200, 8000, nil)
			}
		}
	}

	var unique []faceCandidate
	for _, c := range candidates {
		dup := false
		for _, u := range unique {
			if math.Hypot(c.cx-u.cx, c.cy-u.cy) < faceDedupe {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, c)
		}
	}

	faces := make([]Face, len(unique))
	for i, u := range unique {
		faces[i] = u.face
	}
	return faces
}

// corner returns the position of index i, or the centroid for Center.
func corner(points []Point, i int) (float64, float64) {
	if i != Center {
		return points[i].X, points[i].Y
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	return sx / float64(len(points)), sy / float64(len(points))
}

// geometry returns the face area and its center relative to (ox,oy).
func (f Face) geometry(points []Point, ox, oy float64) (area, cx, cy float64) {
	ax, ay := corner(points, f[0])
	bx, by := corner(points, f[1])
	qx, qy := corner(points, f[2])
	area = math.Abs((ax*(by-qy) + bx*(qy-ay) + qx*(ay-by)) / 2)
	return area, (ax+bx+qx)/3 - ox, (ay+by+qy)/3 - oy
}
