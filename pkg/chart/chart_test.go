package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testCurve() Curve {
	return Curve{
		Title:  "ROC",
		XLabel: "False positive rate",
		YLabel: "True positive rate",
		X:      []float64{0, 0, 0.5, 1},
		Y:      []float64{0, 0.5, 1, 1},
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_roc.png")
	require.NoError(t, Save(path, testCurve(), Size{WidthCM: 5, HeightCM: 5}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_pr.png")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0600))

	require.NoError(t, Save(path, testCurve(), DefaultSize))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestSave_Invalid(t *testing.T) {
	assert.Error(t, Save("", testCurve(), DefaultSize))

	c := testCurve()
	c.Y = c.Y[:2]
	assert.Error(t, Save(filepath.Join(t.TempDir(), "x.png"), c, DefaultSize))
}

func TestSave_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "x.png")
	assert.Error(t, Save(path, testCurve(), DefaultSize))
}

func TestSize_Defaults(t *testing.T) {
	w, h := Size{}.lengths()
	dw, dh := DefaultSize.lengths()
	assert.Equal(t, dw, w)
	assert.Equal(t, dh, h)
}
