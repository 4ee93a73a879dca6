// Package studio provides the main customization window.
package studio

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"print-studio/internal/app"
	"print-studio/internal/cart"
	"print-studio/internal/catalog"
	"print-studio/pkg/colorutil"
	"print-studio/ui/prefs"
	"print-studio/ui/viewport"
)

var productColors = colorutil.Names()

// StudioWindow is the primary application window: the 2D print-area editor
// on the left, the live 3D preview on the right.
type StudioWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	editorRaster  *fynecanvas.Raster
	viewport      *viewport.Viewport
	statusBar     *widget.Label
	cartLabel     *widget.Label
	variantSelect *widget.Select
	colorSelect   *widget.Select
}

// New creates the studio window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *StudioWindow {
	win := fyneApp.NewWindow("Print Studio")

	sw := &StudioWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	sw.setupUI()
	sw.setupMenu()
	sw.setupEventHandlers()
	sw.restoreLastSelection()

	win.SetOnClosed(func() {
		sw.viewport.Stop()
		if err := sw.prefs.Save(); err != nil {
			fyne.LogError("failed to save preferences", err)
		}
	})

	return sw
}

// restoreLastSelection reselects the variant and color from the previous
// session, falling back to the white default.
func (sw *StudioWindow) restoreLastSelection() {
	if id := sw.prefs.String(prefs.KeyLastVariant); id != "" {
		if v := catalog.Get(id); v != nil {
			sw.variantSelect.SetSelected(v.Name)
		}
	}
	c := sw.prefs.String(prefs.KeyLastColor)
	if c == "" {
		c = "white"
	}
	sw.colorSelect.SetSelected(c)
}

func (sw *StudioWindow) setupUI() {
	sw.editorRaster = fynecanvas.NewRaster(func(w, h int) image.Image {
		return sw.state.Editor.Render()
	})
	sw.viewport = viewport.New(sw.state.Renderer)
	sw.statusBar = widget.NewLabel("Pick a product to start designing")
	sw.cartLabel = widget.NewLabel("Cart: empty")

	split := container.NewHSplit(
		container.NewBorder(sw.variantBar(), sw.editBar(), nil, nil, sw.editorRaster),
		container.NewBorder(nil, sw.cameraBar(), nil, nil, sw.viewport),
	)
	split.SetOffset(0.5)

	content := container.NewBorder(
		nil,
		container.NewHBox(sw.statusBar, widget.NewSeparator(), sw.cartLabel),
		nil,
		nil,
		split,
	)
	sw.SetContent(content)
	sw.Resize(fyne.NewSize(1100, 640))

	sw.viewport.Start()
}

func (sw *StudioWindow) setupMenu() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Session...", sw.onOpenSession),
		fyne.NewMenuItem("Save Session...", sw.onSaveSession),
	)
	sw.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

func (sw *StudioWindow) onOpenSession() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := sw.state.LoadSession(path); err != nil {
			dialog.ShowError(err, sw.Window)
			return
		}
		if v := sw.state.Variant(); v != nil {
			sw.variantSelect.SetSelected(v.Name)
		}
		if c := sw.state.Color(); c != "" {
			sw.colorSelect.SetSelected(c)
		}
		sw.editorRaster.Refresh()
		sw.setStatus(fmt.Sprintf("Loaded session %s", filepath.Base(path)))
	}, sw.Window)
	fd.Show()
}

func (sw *StudioWindow) onSaveSession() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := sw.state.SaveSession(path); err != nil {
			dialog.ShowError(err, sw.Window)
			return
		}
		sw.setStatus(fmt.Sprintf("Saved session %s", filepath.Base(path)))
	}, sw.Window)
	fd.SetFileName("design.json")
	fd.Show()
}

// variantBar builds the product variant and color selectors.
func (sw *StudioWindow) variantBar() fyne.CanvasObject {
	ids := make([]string, 0)
	names := make(map[string]string)
	for _, v := range catalog.List() {
		ids = append(ids, v.Name)
		names[v.Name] = v.ID
	}

	sw.variantSelect = widget.NewSelect(ids, func(name string) {
		// Syncing the widget after a session load must not rebuild the
		// freshly restored document.
		if v := sw.state.Variant(); v != nil && v.ID == names[name] {
			return
		}
		if err := sw.state.SelectVariant(names[name]); err != nil {
			sw.setStatus(fmt.Sprintf("Variant error: %v", err))
			return
		}
		sw.prefs.SetString(prefs.KeyLastVariant, names[name])
		sw.setStatus(fmt.Sprintf("Designing %s", name))
		sw.editorRaster.Refresh()
	})
	sw.variantSelect.PlaceHolder = "Product..."

	sw.colorSelect = widget.NewSelect(productColors, func(c string) {
		sw.state.SetColor(c)
		sw.prefs.SetString(prefs.KeyLastColor, c)
	})

	return container.NewHBox(sw.variantSelect, sw.colorSelect)
}

// editBar builds the canvas manipulation controls.
func (sw *StudioWindow) editBar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("Upload", sw.onUpload),
		widget.NewButton("Center", func() { sw.state.Editor.CenterSelected() }),
		widget.NewButton("Rotate", func() { sw.state.Editor.RotateSelected(15) }),
		widget.NewButton("Larger", func() { sw.state.Editor.ScaleSelected(1.1) }),
		widget.NewButton("Smaller", func() { sw.state.Editor.ScaleSelected(1 / 1.1) }),
		widget.NewButton("Remove", func() { sw.state.Editor.RemoveSelected() }),
		widget.NewButton("Add to Cart", sw.onAddToCart),
		widget.NewButton("Download PNG", sw.onDownload),
	)
}

// cameraBar builds the external camera commands for the preview.
func (sw *StudioWindow) cameraBar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("Reset View", func() { sw.state.Renderer.ResetCamera() }),
		widget.NewButton("Zoom In", func() { sw.state.Renderer.ZoomIn() }),
		widget.NewButton("Zoom Out", func() { sw.state.Renderer.ZoomOut() }),
	)
}

func (sw *StudioWindow) setupEventHandlers() {
	sw.state.On(app.EventDesignChanged, func(interface{}) {
		sw.editorRaster.Refresh()
	})
	sw.state.On(app.EventCartChanged, func(interface{}) {
		sw.refreshCartLabel()
	})
	sw.refreshCartLabel()
}

func (sw *StudioWindow) onUpload() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		sw.state.Editor.AddImage(path)
		if !sw.state.Editor.HasUserImage() {
			sw.setStatus(fmt.Sprintf("Could not load %s", filepath.Base(path)))
			return
		}
		sw.setStatus(fmt.Sprintf("Placed %s", filepath.Base(path)))
	}, sw.Window)
	fd.Show()
}

func (sw *StudioWindow) onAddToCart() {
	item, err := sw.state.AddToCart(1)
	if err != nil {
		if errors.Is(err, cart.ErrNoDesign) {
			dialog.ShowInformation("No design", "Upload a design before adding to cart.", sw.Window)
			return
		}
		dialog.ShowError(err, sw.Window)
		return
	}
	sw.setStatus(fmt.Sprintf("Added %s to cart", item.Name))
}

func (sw *StudioWindow) onDownload() {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	dir = filepath.Join(dir, "Downloads")

	path, err := sw.state.DownloadPrintReady(dir)
	if err != nil {
		if errors.Is(err, cart.ErrNoDesign) {
			dialog.ShowInformation("No design", "Upload a design before exporting.", sw.Window)
			return
		}
		dialog.ShowError(err, sw.Window)
		return
	}
	sw.setStatus(fmt.Sprintf("Saved %s", path))
}

func (sw *StudioWindow) refreshCartLabel() {
	items, err := sw.state.Cart.Items()
	if err != nil {
		sw.cartLabel.SetText("Cart: unavailable")
		return
	}
	if len(items) == 0 {
		sw.cartLabel.SetText("Cart: empty")
		return
	}
	total, _ := sw.state.Cart.SubtotalCents()
	sw.cartLabel.SetText(fmt.Sprintf("Cart: %d item(s), $%.2f", len(items), float64(total)/100))
}

func (sw *StudioWindow) setStatus(msg string) {
	sw.statusBar.SetText(msg)
}
