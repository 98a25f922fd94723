package main

import "math"

// Vec2 is a value-typed 2D vector. All collision math works on these
// directly; nothing here allocates per call on the circle paths.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the length of v
func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// LenSq returns the squared length of v
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Perp returns v rotated 90 degrees counter-clockwise
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Normalized returns v scaled to unit length, or the zero vector if v is zero
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Circle is a collision shape: world-space center plus radius (> 0)
type Circle struct {
	Pos    Vec2
	Radius float64
}

// Polygon is a convex (or near-convex) outline. Verts are local-space and
// ordered; Pos and Rotation are composed into world space before testing.
// Fewer than 3 vertices or a self-intersecting outline is a caller contract
// violation: the result is undefined, not recovered.
type Polygon struct {
	Pos      Vec2
	Rotation float64
	Verts    []Vec2
}

// WorldVerts appends the world-space vertices of p to dst and returns the
// extended slice. Pass a reused buffer to avoid per-call allocation.
func (p Polygon) WorldVerts(dst []Vec2) []Vec2 {
	cosR := math.Cos(p.Rotation)
	sinR := math.Sin(p.Rotation)
	for _, v := range p.Verts {
		dst = append(dst, Vec2{
			X: p.Pos.X + v.X*cosR - v.Y*sinR,
			Y: p.Pos.Y + v.X*sinR + v.Y*cosR,
		})
	}
	return dst
}

// Hit is the result of a shape overlap test. Overlap and Normal are only
// meaningful when Collided is true; Normal is the unit direction that pushes
// shape A out of shape B.
type Hit struct {
	Collided bool
	Overlap  float64
	Normal   Vec2
}

// CircleVsCircle tests two circles on the center-distance axis.
// Touching circles (distance == radius sum) count as a hit with zero overlap.
func CircleVsCircle(a, b Circle) Hit {
	delta := a.Pos.Sub(b.Pos)
	distSq := delta.LenSq()
	radSum := a.Radius + b.Radius
	if distSq > radSum*radSum {
		return Hit{}
	}
	dist := math.Sqrt(distSq)
	normal := Vec2{1, 0} // coincident centers: any push direction works
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}
	return Hit{Collided: true, Overlap: radSum - dist, Normal: normal}
}

// projectVerts projects world-space vertices onto a unit axis
func projectVerts(verts []Vec2, axis Vec2) (min, max float64) {
	min = verts[0].Dot(axis)
	max = min
	for _, v := range verts[1:] {
		d := v.Dot(axis)
		if d < min {
			min = d
		} else if d > max {
			max = d
		}
	}
	return min, max
}

// CircleVsPolygon runs a separating-axis test over the polygon's edge
// normals plus the axis from the circle center to its closest vertex.
func CircleVsPolygon(c Circle, p Polygon) Hit {
	var buf [16]Vec2
	verts := p.WorldVerts(buf[:0])
	n := len(verts)

	best := math.MaxFloat64
	var bestAxis Vec2

	testAxis := func(axis Vec2) bool {
		pMin, pMax := projectVerts(verts, axis)
		cProj := c.Pos.Dot(axis)
		cMin, cMax := cProj-c.Radius, cProj+c.Radius
		if cMax < pMin || pMax < cMin {
			return false
		}
		overlap := math.Min(cMax-pMin, pMax-cMin)
		if overlap < best {
			best = overlap
			bestAxis = axis
		}
		return true
	}

	for i := 0; i < n; i++ {
		edge := verts[(i+1)%n].Sub(verts[i])
		if !testAxis(edge.Perp().Normalized()) {
			return Hit{}
		}
	}

	// Closest-vertex axis catches the corner case edge normals miss
	closest := verts[0]
	bestDist := DistanceSq(c.Pos.X, c.Pos.Y, closest.X, closest.Y)
	for _, v := range verts[1:] {
		d := DistanceSq(c.Pos.X, c.Pos.Y, v.X, v.Y)
		if d < bestDist {
			bestDist = d
			closest = v
		}
	}
	axis := c.Pos.Sub(closest).Normalized()
	if axis != (Vec2{}) && !testAxis(axis) {
		return Hit{}
	}

	// Orient the normal so it pushes the circle out of the polygon
	if c.Pos.Sub(p.Pos).Dot(bestAxis) < 0 {
		bestAxis = bestAxis.Scale(-1)
	}
	return Hit{Collided: true, Overlap: best, Normal: bestAxis}
}

// PolygonVsPolygon runs a separating-axis test over both polygons' edge
// normals, reporting penetration on the axis of minimum overlap.
func PolygonVsPolygon(a, b Polygon) Hit {
	var bufA, bufB [16]Vec2
	vertsA := a.WorldVerts(bufA[:0])
	vertsB := b.WorldVerts(bufB[:0])

	best := math.MaxFloat64
	var bestAxis Vec2

	testEdges := func(verts []Vec2) bool {
		n := len(verts)
		for i := 0; i < n; i++ {
			axis := verts[(i+1)%n].Sub(verts[i]).Perp().Normalized()
			aMin, aMax := projectVerts(vertsA, axis)
			bMin, bMax := projectVerts(vertsB, axis)
			if aMax < bMin || bMax < aMin {
				return false
			}
			overlap := math.Min(aMax-bMin, bMax-aMin)
			if overlap < best {
				best = overlap
				bestAxis = axis
			}
		}
		return true
	}

	if !testEdges(vertsA) || !testEdges(vertsB) {
		return Hit{}
	}

	// Orient the normal so it pushes A out of B
	if a.Pos.Sub(b.Pos).Dot(bestAxis) < 0 {
		bestAxis = bestAxis.Scale(-1)
	}
	return Hit{Collided: true, Overlap: best, Normal: bestAxis}
}
