package mesh

import (
	"fmt"

	"github.com/notargets/gocurvi/field"
)

const (
	tagDown = iota // Letter carries the sender's lowest interior y rows
	tagUp
	tagIn
	tagOut
)

// view is a field seen as LocalNx*LocalNy lines of nz values.
type view struct {
	data []float64
	nz   int
}

// Communicate fills the processor guard cells of every field from the
// neighbouring ranks in one batched exchange. It is collective: every rank
// must call it the same number of times. Guard cells at true boundaries are
// left unchanged.
func (m *Mesh) Communicate(fs ...field.Field2D) {
	vs := make([]view, len(fs))
	for i, f := range fs {
		if f.IsReadOnly() {
			panic(fmt.Errorf("communicate: field %d is read only", i))
		}
		m.checkShape(f.Shape())
		vs[i] = view{data: f.Data(), nz: 1}
	}
	m.exchange(vs)
}

func (m *Mesh) Communicate3D(fs ...field.Field3D) {
	vs := make([]view, len(fs))
	for i, f := range fs {
		nx, ny, nz := f.Shape()
		m.checkShape(nx, ny)
		vs[i] = view{data: f.Data(), nz: nz}
	}
	m.exchange(vs)
}

func (m *Mesh) checkShape(nx, ny int) {
	if nx != m.LocalNx || ny != m.LocalNy {
		panic(fmt.Errorf("communicate: field is %dx%d, mesh is %dx%d", nx, ny, m.LocalNx, m.LocalNy))
	}
}

func (m *Mesh) xNeighbour(dir int) (rank int, ok bool) {
	pex := m.PEX + dir
	if pex < 0 || pex >= m.NXPE {
		if !m.PeriodicX {
			return -1, false
		}
		pex = (pex + m.NXPE) % m.NXPE
	}
	return m.d.RankOf(pex, m.PEY), true
}

// yNeighbour wraps around the y ends when this rank holds closed columns.
func (m *Mesh) yNeighbour(dir int) (rank int, ok bool) {
	pey := m.PEY + dir
	if pey < 0 || pey >= m.NYPE {
		if !m.closed(0) {
			return -1, false
		}
		pey = (pey + m.NYPE) % m.NYPE
	}
	return m.d.RankOf(m.PEX, pey), true
}

func (m *Mesh) pack(vs []view, x0, x1, y0, y1 int) (buf [][]float64) {
	buf = make([][]float64, len(vs))
	for i, v := range vs {
		b := make([]float64, 0, (x1-x0)*(y1-y0)*v.nz)
		for x := x0; x < x1; x++ {
			k := (x*m.LocalNy + y0) * v.nz
			b = append(b, v.data[k:k+(y1-y0)*v.nz]...)
		}
		buf[i] = b
	}
	return
}

func (m *Mesh) unpack(vs []view, buf [][]float64, x0, x1, y0, y1 int, keep func(x int) bool) {
	for i, v := range vs {
		var (
			b    = buf[i]
			line = (y1 - y0) * v.nz
		)
		for x := x0; x < x1; x++ {
			if keep(x) {
				k := (x*m.LocalNy + y0) * v.nz
				copy(v.data[k:k+line], b[:line])
			}
			b = b[line:]
		}
	}
}

func (m *Mesh) post(target, tag int, buf [][]float64) {
	if !m.d.mb.PostMessage(m.Rank, target, tag, m.seq, buf) {
		panic(fmt.Errorf("rank %d: %w", m.Rank, ErrAborted))
	}
}

func (m *Mesh) receive(from, tag int) [][]float64 {
	buf, ok := m.d.mb.ReceiveMessage(m.Rank, from, tag, m.seq)
	if !ok {
		panic(fmt.Errorf("rank %d: %w", m.Rank, ErrAborted))
	}
	return buf
}

// exchange runs the y phase over every x, then the x phase over every y, so
// corner guard cells pick up the neighbour's y guard values.
func (m *Mesh) exchange(vs []view) {
	m.seq++
	all := func(int) bool { return true }

	if m.MYG > 0 {
		down, hasDown := m.yNeighbour(-1)
		up, hasUp := m.yNeighbour(1)
		if hasDown {
			m.post(down, tagDown, m.pack(vs, 0, m.LocalNx, m.YStart, m.YStart+m.MYG))
		}
		if hasUp {
			m.post(up, tagUp, m.pack(vs, 0, m.LocalNx, m.YEnd-m.MYG+1, m.YEnd+1))
		}
		if hasDown {
			keep := all
			if m.FirstY() {
				keep = m.closed
			}
			m.unpack(vs, m.receive(down, tagUp), 0, m.LocalNx, 0, m.YStart, keep)
		}
		if hasUp {
			keep := all
			if m.LastY() {
				keep = m.closed
			}
			m.unpack(vs, m.receive(up, tagDown), 0, m.LocalNx, m.YEnd+1, m.LocalNy, keep)
		}
	}

	if m.MXG > 0 {
		in, hasIn := m.xNeighbour(-1)
		out, hasOut := m.xNeighbour(1)
		if hasIn {
			m.post(in, tagIn, m.pack(vs, m.XStart, m.XStart+m.MXG, 0, m.LocalNy))
		}
		if hasOut {
			m.post(out, tagOut, m.pack(vs, m.XEnd-m.MXG+1, m.XEnd+1, 0, m.LocalNy))
		}
		if hasIn {
			m.unpack(vs, m.receive(in, tagOut), 0, m.XStart, 0, m.LocalNy, all)
		}
		if hasOut {
			m.unpack(vs, m.receive(out, tagIn), m.XEnd+1, m.LocalNx, 0, m.LocalNy, all)
		}
	}
}
