package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/drillsense/internal/units"
)

// Camera preset names.
const (
	PresetDefault = "default"
	PresetTop     = "top"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
	FovDeg   float64 // vertical field of view
}

// PresetName normalises a preset name; anything unknown is the default view.
func PresetName(name string) string {
	if name == PresetTop {
		return PresetTop
	}
	return PresetDefault
}

// Presets lists the available camera presets.
func Presets() []string {
	return []string{PresetDefault, PresetTop}
}

// PresetCamera returns the camera for a preset name.
func PresetCamera(name string) Camera {
	if PresetName(name) == PresetTop {
		return Camera{Position: r3.Vec{Y: 18}, Up: r3.Vec{Y: 1}, FovDeg: 45}
	}
	return Camera{Position: r3.Vec{X: 8, Y: 6, Z: 10}, Up: r3.Vec{Y: 1}, FovDeg: 50}
}

const nearPlane = 0.01

// basis returns the right, up and forward unit vectors of the view.
func (c Camera) basis() (right, up, fwd r3.Vec) {
	fwd = r3.Unit(r3.Sub(c.Target, c.Position))
	right = r3.Cross(fwd, c.Up)
	if r3.Norm(right) < 1e-9 {
		// Looking straight along Up (top view): screen-up becomes -Z.
		right = r3.Cross(fwd, r3.Vec{Z: -1})
	}
	right = r3.Unit(right)
	up = r3.Cross(right, fwd)
	return right, up, fwd
}

// Project maps a scene point to pixel coordinates in a width x height image.
// ok is false for points on or behind the near plane.
func (c Camera) Project(p r3.Vec, width, height int) (x, y float64, ok bool) {
	right, up, fwd := c.basis()
	d := r3.Sub(p, c.Position)
	zc := r3.Dot(d, fwd)
	if zc <= nearPlane {
		return 0, 0, false
	}
	focal := (float64(height) / 2) / math.Tan(units.DegreesToRadians(c.FovDeg)/2)
	x = float64(width)/2 + r3.Dot(d, right)*focal/zc
	y = float64(height)/2 - r3.Dot(d, up)*focal/zc
	return x, y, true
}
