package engine

import (
	"cmp"
	"math"
	"slices"
)

// Edge is a transient connection between points A < B.
type Edge struct {
	A, B     int
	Distance float64
}

// BuildEdges returns every pair i < j closer than maxDistance, ordered by i
// then j.
func BuildEdges(points []Point, maxDistance float64) []Edge {
	return AppendEdges(nil, points, maxDistance)
}

// AppendEdges is BuildEdges appending to dst, so a caller can reuse one
// buffer across frames.
func AppendEdges(dst []Edge, points []Point, maxDistance float64) []Edge {
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			dx := points[i].X - points[j].X
			dy := points[i].Y - points[j].Y
			distance := math.Sqrt(dx*dx + dy*dy)
			if distance < maxDistance {
				dst = append(dst, Edge{A: i, B: j, Distance: distance})
			}
		}
	}
	return dst
}

type cell struct {
	x, y int
}

// AppendEdgesGrid returns the same edges as AppendEdges using a uniform grid
// with maxDistance-sized cells, so only neighbouring cells are compared.
func AppendEdgesGrid(dst []Edge, points []Point, maxDistance float64) []Edge {
	if maxDistance <= 0 || len(points) < 2 {
		return dst
	}

	bins := make(map[cell][]int, len(points))
	for i := range points {
		k := cellOf(points[i], maxDistance)
		bins[k] = append(bins[k], i)
	}

	start := len(dst)
	for i := range points {
		k := cellOf(points[i], maxDistance)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range bins[cell{k.x + dx, k.y + dy}] {
					if j <= i {
						continue
					}
					ddx := points[i].X - points[j].X
					ddy := points[i].Y - points[j].Y
					distance := math.Sqrt(ddx*ddx + ddy*ddy)
					if distance < maxDistance {
						dst = append(dst, Edge{A: i, B: j, Distance: distance})
					}
				}
			}
		}
	}

	slices.SortFunc(dst[start:], func(a, b Edge) int {
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	})
	return dst
}

func cellOf(p Point, size float64) cell {
	return cell{int(math.Floor(p.X / size)), int(math.Floor(p.Y / size))}
}
