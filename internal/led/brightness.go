package led

import colorful "github.com/lucasb-eyer/go-colorful"

// Dimmed wraps a Controller and scales every written color by a fixed
// brightness factor before it reaches the target.
type Dimmed struct {
	inner Controller
	scale float64
}

// WithBrightness applies scale in [0, 1] to ctrl. A scale of 1 returns
// ctrl unchanged.
func WithBrightness(ctrl Controller, scale float64) Controller {
	if scale >= 1 {
		return ctrl
	}
	if scale < 0 {
		scale = 0
	}
	return &Dimmed{inner: ctrl, scale: scale}
}

func (d *Dimmed) dim(c colorful.Color) colorful.Color {
	return colorful.Color{R: c.R * d.scale, G: c.G * d.scale, B: c.B * d.scale}
}

func (d *Dimmed) IndividuallyAddressable() bool { return d.inner.IndividuallyAddressable() }
func (d *Dimmed) LedCount() int                 { return d.inner.LedCount() }

func (d *Dimmed) SetAll(c colorful.Color) {
	d.inner.SetAll(d.dim(c))
}

func (d *Dimmed) SetAllIndividual(colors []colorful.Color) error {
	dimmed := make([]colorful.Color, len(colors))
	for i, c := range colors {
		dimmed[i] = d.dim(c)
	}
	return d.inner.SetAllIndividual(dimmed)
}

func (d *Dimmed) SetIndividual(i int, c colorful.Color) error {
	return d.inner.SetIndividual(i, d.dim(c))
}

func (d *Dimmed) Commit() error { return d.inner.Commit() }
func (d *Dimmed) Reset() error  { return d.inner.Reset() }
