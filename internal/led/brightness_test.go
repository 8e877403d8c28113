package led

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestWithBrightnessScalesColors(t *testing.T) {
	m := NewMemory(2, true)
	d := WithBrightness(m, 0.5)

	d.SetAll(colorful.Color{R: 1, G: 0.5, B: 0})
	if err := d.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	got := m.Committed()[0]
	if got.R != 0.5 || got.G != 0.25 || got.B != 0 {
		t.Fatalf("unexpected dimmed color: %+v", got)
	}
}

func TestWithBrightnessFullScaleIsPassthrough(t *testing.T) {
	m := NewMemory(1, true)
	if WithBrightness(m, 1) != Controller(m) {
		t.Fatalf("full brightness must not wrap")
	}
}

func TestWithBrightnessIndividual(t *testing.T) {
	m := NewMemory(2, true)
	d := WithBrightness(m, 0.5)
	if err := d.SetAllIndividual([]colorful.Color{{R: 1}, {G: 1}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := d.SetIndividual(1, colorful.Color{B: 1}); err != nil {
		t.Fatalf("set individual: %v", err)
	}
	if err := d.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	frame := m.Committed()
	if frame[0].R != 0.5 || frame[1].B != 0.5 {
		t.Fatalf("unexpected frame: %+v", frame)
	}
}
