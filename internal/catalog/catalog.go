// Package catalog provides product variant definitions and management.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"print-studio/pkg/geometry"
)

// Kind identifies the physical product family a variant belongs to.
type Kind string

const (
	KindMug     Kind = "mug"
	KindGarment Kind = "garment"
)

// PrintArea describes the printable region of a variant in physical print
// pixels. The editor sizes its canvas from the aspect ratio; print-ready
// exports target the full pixel dimensions.
type PrintArea struct {
	WidthPx  int `json:"width_px"`
	HeightPx int `json:"height_px"`
}

// AspectRatio returns width/height of the print area.
func (p PrintArea) AspectRatio() float64 {
	return geometry.Size{Width: float64(p.WidthPx), Height: float64(p.HeightPx)}.AspectRatio()
}

// Physical describes the proportions used to build the 3D preview geometry.
// For mugs the radii describe the lathe profile; for garments the radii
// approximate the torso cylinder. HandleGapDegrees is the angular arc kept
// free of print decal (handle for mugs, side seam for garments).
type Physical struct {
	HeightMM         float64 `json:"height_mm"`
	TopRadiusMM      float64 `json:"top_radius_mm"`
	BottomRadiusMM   float64 `json:"bottom_radius_mm"`
	HandleGapDegrees float64 `json:"handle_gap_degrees"`
}

// Variant defines a purchasable product variant.
type Variant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       Kind      `json:"kind"`
	PriceCents int64     `json:"price_cents"`
	PrintArea  PrintArea `json:"print_area"`
	Physical   Physical  `json:"physical"`
}

// Validate checks that the variant is internally consistent.
func (v *Variant) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("variant id is required")
	}
	if v.Kind != KindMug && v.Kind != KindGarment {
		return fmt.Errorf("unknown variant kind %q", v.Kind)
	}
	if v.PriceCents <= 0 {
		return fmt.Errorf("variant price must be positive")
	}
	if v.PrintArea.WidthPx <= 0 || v.PrintArea.HeightPx <= 0 {
		return fmt.Errorf("print area dimensions must be positive")
	}
	if v.Physical.HeightMM <= 0 || v.Physical.TopRadiusMM <= 0 || v.Physical.BottomRadiusMM <= 0 {
		return fmt.Errorf("physical dimensions must be positive")
	}
	if v.Physical.HandleGapDegrees < 0 || v.Physical.HandleGapDegrees >= 360 {
		return fmt.Errorf("handle gap must be in [0, 360) degrees")
	}
	return nil
}

// SaveToFile saves the variant to a JSON file.
func (v *Variant) SaveToFile(path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads a variant from a JSON file.
func LoadFromFile(path string) (*Variant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var v Variant
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("invalid variant: %w", err)
	}

	return &v, nil
}

// Registry of known product variants
var registry = make(map[string]*Variant)

// Register adds a variant to the registry.
func Register(v *Variant) {
	registry[v.ID] = v
}

// Get returns a variant by id, or nil if it is not registered.
func Get(id string) *Variant {
	return registry[id]
}

// List returns all registered variants sorted by id.
func List() []*Variant {
	variants := make([]*Variant, 0, len(registry))
	for _, v := range registry {
		variants = append(variants, v)
	}
	sort.Slice(variants, func(i, j int) bool {
		return variants[i].ID < variants[j].ID
	})
	return variants
}

func init() {
	// Register built-in variants
	Register(Mug11ozVariant())
	Register(Mug15ozVariant())
	Register(TeeClassicVariant())
	Register(HoodieVariant())
}
