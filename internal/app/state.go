// Package app provides application state, event wiring, and session
// persistence for the print customization studio.
package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"print-studio/internal/cart"
	"print-studio/internal/catalog"
	"print-studio/internal/design"
	"print-studio/internal/export"
	"print-studio/internal/preview"
	"print-studio/internal/texture"
	"print-studio/pkg/colorutil"
)

// EventType identifies different application events.
type EventType int

const (
	EventVariantChanged EventType = iota
	EventDesignChanged
	EventTextureBound
	EventCartChanged
	EventSessionLoaded
	EventSessionSaved
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the studio state: the editor, the texture bridge, the preview
// renderer, the cart, and the active selection. The editor is the single
// writer of design state; everything else reads snapshots.
type State struct {
	mu sync.RWMutex

	Editor   *design.Editor
	Bridge   *texture.Bridge
	Renderer *preview.Renderer
	Cart     *cart.Store

	variant    *catalog.Variant
	color      string
	lastExport string // latest canvas export; snapshotted on add-to-cart

	SessionPath string
	Modified    bool

	listeners map[EventType][]EventListener
}

// NewState assembles the pipeline: canvas mutations export to a data URL,
// the bridge decodes it into a texture, and the renderer binds the result.
func NewState(cartStore *cart.Store, viewportW, viewportH int) *State {
	s := &State{
		Cart:      cartStore,
		color:     "white",
		listeners: make(map[EventType][]EventListener),
	}

	s.Renderer = preview.NewRenderer(viewportW, viewportH)
	s.Bridge = texture.NewBridge(texture.DecalOptions(), func(tex *texture.Texture) {
		s.Renderer.SetTexture(tex)
		s.Emit(EventTextureBound, tex)
	})
	s.Editor = design.NewEditor(func(dataURL string) {
		s.mu.Lock()
		s.lastExport = dataURL
		s.mu.Unlock()
		s.Bridge.Update(dataURL)
		s.Emit(EventDesignChanged, dataURL)
	})

	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the session as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// Variant returns the active variant, or nil before any selection.
func (s *State) Variant() *catalog.Variant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.variant
}

// Color returns the chosen product color.
func (s *State) Color() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.color
}

// SetColor records the product color choice and retints the preview.
func (s *State) SetColor(name string) {
	s.mu.Lock()
	s.color = name
	s.mu.Unlock()
	if c, ok := colorutil.Lookup(name); ok {
		s.Renderer.SetBodyColor(c)
	} else {
		log.Printf("app: unknown product color %q", name)
	}
	s.SetModified(true)
}

// LastExport returns the most recent canvas export data URL.
func (s *State) LastExport() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastExport
}

// SelectVariant switches the active variant: the renderer rebuilds its
// parametric scene and the editor re-sizes its canvas, which re-exports and
// re-binds the texture.
func (s *State) SelectVariant(id string) error {
	v := catalog.Get(id)
	if v == nil {
		return fmt.Errorf("unknown variant %q", id)
	}

	s.mu.Lock()
	s.variant = v
	s.mu.Unlock()

	s.Renderer.SetVariant(v)
	s.Editor.Initialize(v)

	s.SetModified(true)
	s.Emit(EventVariantChanged, v)
	return nil
}

// AddToCart snapshots the current design into a new cart line item. The
// snapshot is copied by value: later canvas edits never alter the line item.
func (s *State) AddToCart(quantity int) (*cart.Item, error) {
	v := s.Variant()
	if v == nil {
		return nil, fmt.Errorf("no variant selected")
	}
	if !s.Editor.HasUserImage() {
		return nil, cart.ErrNoDesign
	}

	snapshot := s.LastExport()
	item, err := s.Cart.AddItem(cart.Item{
		ProductID:    v.ID,
		Name:         v.Name,
		PriceCents:   v.PriceCents,
		Quantity:     quantity,
		ImageDataURL: snapshot,
		Customization: cart.Customization{
			VariantID:     v.ID,
			Color:         s.Color(),
			DesignDataURL: snapshot,
		},
	})
	if err != nil {
		return nil, err
	}

	s.Emit(EventCartChanged, item)
	return item, nil
}

// RemoveFromCart deletes a line item.
func (s *State) RemoveFromCart(id string) error {
	if err := s.Cart.Remove(id); err != nil {
		return err
	}
	s.Emit(EventCartChanged, nil)
	return nil
}

// DownloadPrintReady produces the physical-resolution export and writes it
// into dir, returning the written path.
func (s *State) DownloadPrintReady(dir string) (string, error) {
	v := s.Variant()
	if v == nil {
		return "", fmt.Errorf("no variant selected")
	}
	if !s.Editor.HasUserImage() {
		return "", cart.ErrNoDesign
	}

	url, err := s.Editor.PrintReadyExport()
	if err != nil {
		return "", err
	}
	return export.WritePrintReady(dir, v, url, time.Now())
}

// Close tears down graphics resources: in-flight decodes settle, the bound
// texture is disposed, and the renderer drops its scene.
func (s *State) Close() error {
	s.Bridge.Close()
	s.Renderer.Close()
	if s.Cart != nil {
		return s.Cart.Close()
	}
	return nil
}

// SessionFile represents the JSON structure of a saved studio session.
type SessionFile struct {
	Version     int              `json:"version"`
	VariantID   string           `json:"variant_id"`
	Color       string           `json:"color"`
	ImageSource string           `json:"image_source,omitempty"`
	Transform   design.Transform `json:"transform"`
}

// SaveSession saves the current session to the specified path.
func (s *State) SaveSession(path string) error {
	v := s.Variant()
	if v == nil {
		return fmt.Errorf("no variant selected")
	}

	sess := SessionFile{
		Version:   1,
		VariantID: v.ID,
		Color:     s.Color(),
	}
	if obj := s.Editor.Document().UserImage(); obj != nil {
		sess.ImageSource = obj.Source
		sess.Transform = obj.Transform
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	s.mu.Lock()
	s.SessionPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSessionSaved, path)
	return nil
}

// LoadSession loads a session from the specified path, restoring the
// variant, color, image, and transform.
func (s *State) LoadSession(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var sess SessionFile
	if err := json.Unmarshal(data, &sess); err != nil {
		return err
	}

	if err := s.SelectVariant(sess.VariantID); err != nil {
		return err
	}
	if sess.Color != "" {
		s.SetColor(sess.Color)
	}
	if sess.ImageSource != "" {
		s.Editor.AddImage(sess.ImageSource)
		s.Editor.SetTransform(sess.Transform)
	}

	s.mu.Lock()
	s.SessionPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSessionLoaded, path)
	return nil
}
