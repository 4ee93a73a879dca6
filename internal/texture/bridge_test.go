package texture

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// boundTextures collects every onBind invocation under a lock.
type boundTextures struct {
	mu   sync.Mutex
	seen []*Texture
}

func (b *boundTextures) record(t *Texture) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seen = append(b.seen, t)
}

func (b *boundTextures) all() []*Texture {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Texture(nil), b.seen...)
}

func TestUpdateBindsDecodedTexture(t *testing.T) {
	bound := &boundTextures{}
	b := NewBridge(DecalOptions(), bound.record)
	defer b.Close()

	b.SetDecoder(func(url string) (image.Image, error) {
		return solid(color.NRGBA{R: 255, A: 255}), nil
	})

	b.Update("data:image/png;base64,xxxx")
	b.Wait()

	require.NotNil(t, b.Current())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, b.Current().Sample(0.5, 0.5))
	assert.Len(t, bound.all(), 1)
}

func TestUpdateEmptyClearsSynchronously(t *testing.T) {
	bound := &boundTextures{}
	b := NewBridge(DecalOptions(), bound.record)
	defer b.Close()

	b.SetDecoder(func(string) (image.Image, error) {
		return solid(color.NRGBA{G: 255, A: 255}), nil
	})
	b.Update("data:image/png;base64,xxxx")
	b.Wait()
	first := b.Current()
	require.NotNil(t, first)

	b.Update("")
	assert.Nil(t, b.Current())
	assert.True(t, first.Disposed())

	seen := bound.all()
	require.Len(t, seen, 2)
	assert.Nil(t, seen[1])
}

func TestStaleDecodeIsDiscarded(t *testing.T) {
	bound := &boundTextures{}
	b := NewBridge(DecalOptions(), bound.record)
	defer b.Close()

	redRelease := make(chan struct{})
	b.SetDecoder(func(url string) (image.Image, error) {
		if url == "red" {
			<-redRelease
			return solid(color.NRGBA{R: 255, A: 255}), nil
		}
		return solid(color.NRGBA{B: 255, A: 255}), nil
	})

	// The red decode stalls; the blue decode issued afterwards wins.
	b.Update("red")
	b.Update("blue")

	// Let blue land first, then release red.
	for b.Current() == nil {
		time.Sleep(time.Millisecond)
	}
	close(redRelease)
	b.Wait()

	cur := b.Current()
	require.NotNil(t, cur)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, cur.Sample(0.5, 0.5))

	// The stale red result was never bound.
	for _, tex := range bound.all() {
		if tex != nil {
			assert.Equal(t, color.NRGBA{B: 255, A: 255}, tex.Sample(0.5, 0.5))
		}
	}
	assert.False(t, cur.Disposed())
}

func TestReplacementDisposesOldTexture(t *testing.T) {
	b := NewBridge(DecalOptions(), nil)
	defer b.Close()

	b.SetDecoder(func(string) (image.Image, error) {
		return solid(color.NRGBA{R: 255, A: 255}), nil
	})

	b.Update("one")
	b.Wait()
	first := b.Current()
	require.NotNil(t, first)

	b.Update("two")
	b.Wait()
	second := b.Current()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.True(t, first.Disposed())
	assert.False(t, second.Disposed())
}

func TestDecodeErrorKeepsLastTexture(t *testing.T) {
	b := NewBridge(DecalOptions(), nil)
	defer b.Close()

	b.SetDecoder(func(string) (image.Image, error) {
		return solid(color.NRGBA{G: 255, A: 255}), nil
	})
	b.Update("good")
	b.Wait()
	good := b.Current()
	require.NotNil(t, good)

	b.SetDecoder(func(string) (image.Image, error) {
		return nil, fmt.Errorf("bad payload")
	})
	b.Update("bad")
	b.Wait()

	assert.Same(t, good, b.Current())
	assert.False(t, good.Disposed())
}

func TestCloseDisposesCurrent(t *testing.T) {
	b := NewBridge(DecalOptions(), nil)
	b.SetDecoder(func(string) (image.Image, error) {
		return solid(color.NRGBA{B: 255, A: 255}), nil
	})
	b.Update("x")
	b.Wait()
	tex := b.Current()
	require.NotNil(t, tex)

	b.Close()
	assert.Nil(t, b.Current())
	assert.True(t, tex.Disposed())
}
