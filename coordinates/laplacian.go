package coordinates

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gocurvi/field"
	"github.com/notargets/gocurvi/types"
)

// LaplaceTridagCoefs returns the x stencil (a, b, c) of the perpendicular
// Laplacian for z mode kz at (jx, jy), acting on f(jx-1), f(jx), f(jx+1).
func (c *Coordinates) LaplaceTridagCoefs(jx, jy, kz int) (a, b, cc complex128) {
	var (
		kwave = float64(kz) * 2 * math.Pi / (float64(c.Nz) * c.Dz)
		dx    = c.Dx.At(jx, jy)
		coef1 = c.G11.At(jx, jy)
		coef2 = c.G33.At(jx, jy)
		coef3 = 2 * c.G13.At(jx, jy)
		coef4 = c.G1.At(jx, jy)
		coef5 = c.G3.At(jx, jy)
	)
	if c.opts.NonUniform {
		coef4 -= 0.5 * ((c.Dx.At(jx+1, jy) - c.Dx.At(jx-1, jy)) / (dx * dx)) * coef1
	}
	coef1 /= dx * dx
	coef3 /= 2 * dx
	coef4 /= 2 * dx

	a = complex(coef1-coef4, -kwave*coef3)
	b = complex(-2*coef1-kwave*kwave*coef2, kwave*coef5)
	cc = complex(coef1+coef4, kwave*coef3)
	return
}

// Delp23D is the perpendicular Laplacian of a Field3D, evaluated spectrally
// in z. Guard columns in x are zero.
func (c *Coordinates) Delp23D(f field.Field3D, outloc types.CellLoc) (r field.Field3D) {
	c.checkLoc(f.Location(), outloc, "Delp2")
	m := c.m
	r = f.ZeroLike()
	if m.GlobalNx == 1 && m.GlobalNz == 1 {
		return
	}
	var (
		nz  = c.Nz
		nk  = nz/2 + 1
		fft *fourier.FFT
		ft  = make([][]complex128, m.LocalNx)
		del = make([]complex128, nk)
	)
	if nz > 1 {
		fft = fourier.NewFFT(nz)
	}
	for jy := 0; jy < m.LocalNy; jy++ {
		for jx := 0; jx < m.LocalNx; jx++ {
			if fft == nil {
				ft[jx] = []complex128{complex(f.At(jx, jy, 0), 0)}
				continue
			}
			ft[jx] = fft.Coefficients(ft[jx], f.Line(jx, jy))
		}
		for jx := m.XStart; jx <= m.XEnd; jx++ {
			for kz := 0; kz < nk; kz++ {
				a, b, cc := c.LaplaceTridagCoefs(jx, jy, kz)
				del[kz] = a*ft[jx-1][kz] + b*ft[jx][kz] + cc*ft[jx+1][kz]
			}
			line := r.Line(jx, jy)
			if fft == nil {
				line[0] = real(del[0])
				continue
			}
			fft.Sequence(line, del)
			floats.Scale(1/float64(nz), line)
		}
	}
	return
}
