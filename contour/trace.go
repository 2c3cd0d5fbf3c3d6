package contour

import "image"

// Mask is a binary raster; set pixels are foreground.
type Mask interface {
	Bounds() image.Rectangle
	IsSet(x, y int) bool
}

// Contour is one border of a connected component.
type Contour struct {
	Points   []image.Point
	Hole     bool  // border between a component and a hole inside it
	Parent   int   // index of the enclosing border, -1 for top level
	Children []int // indexes of the borders directly enclosed
}

// neighbourhood in clockwise order starting east, with Y growing downward
var directions = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

func direction(from, to image.Point) int {
	d := to.Sub(from)
	for k, v := range directions {
		if v == d {
			return k
		}
	}
	return -1
}

// labels is the working copy of the mask padded by one pixel on every side.
// Values: 0 background, 1 unvisited foreground, ±n visited by border n.
type labels struct {
	w, h int
	f    []int
}

func (l *labels) at(p image.Point) int     { return l.f[p.Y*l.w+p.X] }
func (l *labels) set(p image.Point, v int) { l.f[p.Y*l.w+p.X] = v }

// Find returns every border of the mask in raster scan order of their starting
// pixel, using Suzuki-Abe border following.
func Find(m Mask) []Contour {
	b := m.Bounds()
	l := &labels{w: b.Dx() + 2, h: b.Dy() + 2}
	l.f = make([]int, l.w*l.h)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if m.IsSet(b.Min.X+x, b.Min.Y+y) {
				l.f[(y+1)*l.w+x+1] = 1
			}
		}
	}

	// border numbers start at 2; 1 is the image frame, a hole-type border
	holes := []bool{false, true}
	parents := []int{0, 1}
	offset := b.Min.Sub(image.Point{1, 1})

	var contours []Contour
	nbd := 1
	for y := 1; y < l.h-1; y++ {
		lnbd := 1
		for x := 1; x < l.w-1; x++ {
			v := l.f[y*l.w+x]
			if v == 0 {
				continue
			}

			var from image.Point
			start, hole := false, false
			switch {
			case v == 1 && l.f[y*l.w+x-1] == 0:
				from = image.Point{x - 1, y}
				start = true
			case v >= 1 && l.f[y*l.w+x+1] == 0:
				from = image.Point{x + 1, y}
				start, hole = true, true
				if v > 1 {
					lnbd = v
				}
			}

			if start {
				nbd++
				parent := lnbd
				if hole == holes[lnbd] {
					parent = parents[lnbd]
				}
				holes = append(holes, hole)
				parents = append(parents, parent)

				pts := l.follow(image.Point{x, y}, from, nbd)
				for i := range pts {
					pts[i] = pts[i].Add(offset)
				}
				contours = append(contours, Contour{
					Points: compress(pts),
					Hole:   hole,
					Parent: parent - 2,
				})
			}

			if v := l.f[y*l.w+x]; v != 1 {
				if v < 0 {
					v = -v
				}
				lnbd = v
			}
		}
	}

	for i := range contours {
		if contours[i].Parent < 0 {
			contours[i].Parent = -1
			continue
		}
		p := contours[i].Parent
		contours[p].Children = append(contours[p].Children, i)
	}
	return contours
}

// follow traces the border that starts at start, entered from the background
// pixel from, labelling it with nbd.
func (l *labels) follow(start, from image.Point, nbd int) []image.Point {
	k0 := direction(start, from)
	var first image.Point
	found := false
	for i := 0; i < 8; i++ {
		q := start.Add(directions[(k0+i)%8])
		if l.at(q) != 0 {
			first, found = q, true
			break
		}
	}
	if !found {
		l.set(start, -nbd)
		return []image.Point{start}
	}

	pts := []image.Point{start}
	prev, cur := first, start
	for {
		kp := direction(cur, prev)
		eastZero := false
		var next image.Point
		// counter-clockwise from the pixel after prev
		for i := 1; i <= 8; i++ {
			k := (kp - i + 16) % 8
			q := cur.Add(directions[k])
			if l.at(q) != 0 {
				next = q
				break
			}
			if k == 0 {
				eastZero = true
			}
		}

		if eastZero {
			l.set(cur, -nbd)
		} else if l.at(cur) == 1 {
			l.set(cur, nbd)
		}

		if next == start && cur == first {
			break
		}
		prev, cur = cur, next
		pts = append(pts, cur)
	}
	return pts
}

// compress keeps only the points where the chain changes direction.
func compress(pts []image.Point) []image.Point {
	n := len(pts)
	if n < 3 {
		return pts
	}
	out := make([]image.Point, 0, n/2)
	for i, p := range pts {
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]
		if p.Sub(prev) != next.Sub(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = append(out, pts[0])
	}
	return out
}
