package catalog

// Mug11ozVariant returns the standard 11oz ceramic mug.
// Print area is the full wrap at 300 DPI minus the handle margin.
func Mug11ozVariant() *Variant {
	return &Variant{
		ID:         "mug-11oz",
		Name:       "Classic Mug 11oz",
		Kind:       KindMug,
		PriceCents: 1499,
		PrintArea:  PrintArea{WidthPx: 2400, HeightPx: 1050},
		Physical: Physical{
			HeightMM:         95,
			TopRadiusMM:      41,
			BottomRadiusMM:   39,
			HandleGapDegrees: 70,
		},
	}
}

// Mug15ozVariant returns the large 15oz ceramic mug.
func Mug15ozVariant() *Variant {
	return &Variant{
		ID:         "mug-15oz",
		Name:       "Large Mug 15oz",
		Kind:       KindMug,
		PriceCents: 1799,
		PrintArea:  PrintArea{WidthPx: 2550, HeightPx: 1200},
		Physical: Physical{
			HeightMM:         118,
			TopRadiusMM:      44,
			BottomRadiusMM:   41,
			HandleGapDegrees: 70,
		},
	}
}

// TeeClassicVariant returns the classic T-shirt with a front chest print.
// Print area is 12x16 inches at 300 DPI.
func TeeClassicVariant() *Variant {
	return &Variant{
		ID:         "tee-classic",
		Name:       "Classic T-Shirt",
		Kind:       KindGarment,
		PriceCents: 2199,
		PrintArea:  PrintArea{WidthPx: 3600, HeightPx: 4800},
		Physical: Physical{
			HeightMM:         720,
			TopRadiusMM:      260,
			BottomRadiusMM:   250,
			HandleGapDegrees: 280,
		},
	}
}

// HoodieVariant returns the pullover hoodie with a front print.
// The print area is shorter than the tee to clear the kangaroo pocket.
func HoodieVariant() *Variant {
	return &Variant{
		ID:         "hoodie-pullover",
		Name:       "Pullover Hoodie",
		Kind:       KindGarment,
		PriceCents: 3899,
		PrintArea:  PrintArea{WidthPx: 3600, HeightPx: 3600},
		Physical: Physical{
			HeightMM:         740,
			TopRadiusMM:      280,
			BottomRadiusMM:   270,
			HandleGapDegrees: 280,
		},
	}
}
