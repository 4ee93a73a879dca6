package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsRegistered(t *testing.T) {
	variants := List()
	require.Len(t, variants, 4)

	// Sorted by id.
	ids := make([]string, len(variants))
	for i, v := range variants {
		ids[i] = v.ID
	}
	assert.Equal(t, []string{"hoodie-pullover", "mug-11oz", "mug-15oz", "tee-classic"}, ids)

	for _, v := range variants {
		assert.NoError(t, v.Validate(), v.ID)
	}
}

func TestGet(t *testing.T) {
	v := Get("mug-11oz")
	require.NotNil(t, v)
	assert.Equal(t, KindMug, v.Kind)
	assert.Equal(t, int64(1499), v.PriceCents)

	assert.Nil(t, Get("mug-2oz"))
}

func TestPrintAreaAspectRatio(t *testing.T) {
	assert.InDelta(t, 2400.0/1050.0, Get("mug-11oz").PrintArea.AspectRatio(), 1e-9)
	assert.InDelta(t, 0.75, Get("tee-classic").PrintArea.AspectRatio(), 1e-9)
}

func TestValidate(t *testing.T) {
	valid := func() *Variant {
		v := *Mug11ozVariant()
		return &v
	}

	t.Run("missing id", func(t *testing.T) {
		v := valid()
		v.ID = ""
		assert.Error(t, v.Validate())
	})

	t.Run("unknown kind", func(t *testing.T) {
		v := valid()
		v.Kind = "sticker"
		assert.Error(t, v.Validate())
	})

	t.Run("non positive price", func(t *testing.T) {
		v := valid()
		v.PriceCents = 0
		assert.Error(t, v.Validate())
	})

	t.Run("empty print area", func(t *testing.T) {
		v := valid()
		v.PrintArea.HeightPx = 0
		assert.Error(t, v.Validate())
	})

	t.Run("gap bounds", func(t *testing.T) {
		v := valid()
		v.Physical.HandleGapDegrees = 360
		assert.Error(t, v.Validate())
		v.Physical.HandleGapDegrees = -1
		assert.Error(t, v.Validate())
		v.Physical.HandleGapDegrees = 0
		assert.NoError(t, v.Validate())
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variant.json")

	orig := Mug15ozVariant()
	require.NoError(t, orig.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, orig, loaded)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variant.json")

	bad := Mug15ozVariant()
	bad.PriceCents = -1
	require.NoError(t, bad.SaveToFile(path))

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid variant")
}
