package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPresetName(t *testing.T) {
	assert.Equal(t, PresetTop, PresetName("top"))
	assert.Equal(t, PresetDefault, PresetName("default"))
	assert.Equal(t, PresetDefault, PresetName(""))
	assert.Equal(t, PresetDefault, PresetName("side"))
}

func TestPresetCamera(t *testing.T) {
	def := PresetCamera(PresetDefault)
	assert.Equal(t, r3.Vec{X: 8, Y: 6, Z: 10}, def.Position)
	assert.Equal(t, 50.0, def.FovDeg)

	top := PresetCamera(PresetTop)
	assert.Equal(t, r3.Vec{Y: 18}, top.Position)
	assert.Equal(t, 45.0, top.FovDeg)
}

func TestProjectTargetIsCentre(t *testing.T) {
	for _, name := range Presets() {
		x, y, ok := PresetCamera(name).Project(r3.Vec{}, 800, 600)
		require.True(t, ok, name)
		assert.InDelta(t, 400, x, 1e-9, name)
		assert.InDelta(t, 300, y, 1e-9, name)
	}
}

func TestProjectTopOrientation(t *testing.T) {
	cam := PresetCamera(PresetTop)

	x, y, ok := cam.Project(r3.Vec{X: 1}, 800, 600)
	require.True(t, ok)
	assert.Greater(t, x, 400.0)
	assert.InDelta(t, 300, y, 1e-9)

	x, y, ok = cam.Project(r3.Vec{Z: -1}, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-9)
	assert.Less(t, y, 300.0)
}

func TestProjectBehindCamera(t *testing.T) {
	_, _, ok := PresetCamera(PresetTop).Project(r3.Vec{Y: 30}, 800, 600)
	assert.False(t, ok)

	_, _, ok = PresetCamera(PresetDefault).Project(r3.Vec{X: 16, Y: 12, Z: 20}, 800, 600)
	assert.False(t, ok)
}

func TestProjectDepthIsDown(t *testing.T) {
	cam := PresetCamera(PresetDefault)
	_, ySurface, ok := cam.Project(r3.Vec{}, 800, 600)
	require.True(t, ok)
	_, yDeep, ok := cam.Project(r3.Vec{Y: -3}, 800, 600)
	require.True(t, ok)
	assert.Greater(t, yDeep, ySurface)
}
