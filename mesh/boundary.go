package mesh

// Point is a local (x, y) index.
type Point struct{ X, Y int }

// BoundaryRegion is one side of the domain owned by this rank. BX, BY is the
// outward normal, Points lists the first guard cell of each line of guard
// cells normal to the boundary, and Width is the number of guard cells per
// line.
type BoundaryRegion struct {
	Name   string
	BX, BY int
	Width  int
	Points []Point
}

// Boundaries returns the true domain boundaries on this rank; seams with
// other ranks and branch cuts are not boundaries. Y boundaries only contain
// open columns.
func (m *Mesh) Boundaries() (bndry []BoundaryRegion) {
	if m.FirstX() && !m.PeriodicX && m.MXG > 0 {
		br := BoundaryRegion{Name: "xin", BX: -1, Width: m.MXG}
		for y := m.YStart; y <= m.YEnd; y++ {
			br.Points = append(br.Points, Point{m.XStart - 1, y})
		}
		bndry = append(bndry, br)
	}
	if m.LastX() && !m.PeriodicX && m.MXG > 0 {
		br := BoundaryRegion{Name: "xout", BX: 1, Width: m.MXG}
		for y := m.YStart; y <= m.YEnd; y++ {
			br.Points = append(br.Points, Point{m.XEnd + 1, y})
		}
		bndry = append(bndry, br)
	}
	if m.MYG == 0 {
		return
	}
	ydown := BoundaryRegion{Name: "ydown", BY: -1, Width: m.MYG}
	yup := BoundaryRegion{Name: "yup", BY: 1, Width: m.MYG}
	for x := m.XStart; x <= m.XEnd; x++ {
		if m.closed(x) {
			continue
		}
		if m.FirstY() {
			ydown.Points = append(ydown.Points, Point{x, m.YStart - 1})
		}
		if m.LastY() {
			yup.Points = append(yup.Points, Point{x, m.YEnd + 1})
		}
	}
	for _, br := range []BoundaryRegion{ydown, yup} {
		if len(br.Points) != 0 {
			bndry = append(bndry, br)
		}
	}
	return
}
