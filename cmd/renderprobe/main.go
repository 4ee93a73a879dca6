// Command renderprobe renders a single preview frame headlessly and
// writes it to a PNG file. It is used to eyeball the 3D pipeline
// without starting the full application.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"print-studio/internal/catalog"
	"print-studio/internal/dataurl"
	"print-studio/internal/design"
	"print-studio/internal/preview"
	"print-studio/internal/texture"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	variantID := flag.String("variant", "mug-11oz", "catalog variant to render")
	imagePath := flag.String("image", "", "design image to place on the print area (optional)")
	outPath := flag.String("out", "probe.png", "output PNG path")
	size := flag.Int("size", 560, "frame width and height in pixels")
	elapsed := flag.Duration("elapsed", 3*time.Second, "idle time used for the rotation angle")
	flag.Parse()

	if *variantID == "list" {
		for _, v := range catalog.List() {
			fmt.Printf("%-12s %s (%dx%d px)\n", v.ID, v.Name, v.PrintArea.WidthPx, v.PrintArea.HeightPx)
		}
		return
	}

	variant := catalog.Get(*variantID)
	if variant == nil {
		log.Fatalf("Unknown variant %q, try -variant list", *variantID)
	}

	frame, err := renderProbe(variant, *imagePath, *size, *elapsed)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	if err := writePNG(*outPath, frame); err != nil {
		log.Fatalf("Write %s: %v", *outPath, err)
	}
	log.Printf("Wrote %s (%dx%d)", *outPath, *size, *size)
}

func renderProbe(variant *catalog.Variant, imagePath string, size int, elapsed time.Duration) (*image.RGBA, error) {
	var exported string
	editor := design.NewEditor(func(dataURL string) { exported = dataURL })
	editor.Initialize(variant)

	if imagePath != "" {
		editor.AddImage(imagePath)
		if !editor.HasUserImage() {
			return nil, fmt.Errorf("could not place image %s", imagePath)
		}
	} else {
		editor.SetImageLoader(func(string) (image.Image, error) {
			return testPattern(variant), nil
		})
		editor.AddImage("pattern")
	}
	if exported == "" {
		return nil, fmt.Errorf("editor produced no export")
	}

	decal, err := dataurl.Decode(exported)
	if err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	renderer := preview.NewRenderer(size, size)
	defer renderer.Close()
	renderer.SetVariant(variant)
	if renderer.Phase() != preview.PhaseReady {
		return nil, fmt.Errorf("renderer phase %s after load", renderer.Phase())
	}
	renderer.SetTexture(texture.NewTexture(decal, texture.DecalOptions()))

	return renderer.Frame(elapsed), nil
}

// testPattern builds a gradient matching the variant's print aspect so
// orientation problems are visible at a glance: red at the top fading
// to blue at the bottom.
func testPattern(v *catalog.Variant) image.Image {
	w, h := v.PrintArea.WidthPx/4, v.PrintArea.HeightPx/4
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		c := color.NRGBA{R: uint8(255 * (1 - t)), B: uint8(255 * t), A: 255}
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	if !strings.HasSuffix(path, ".png") {
		path += ".png"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
