package models

// LocalizedText is a language-code -> text map, as served by the catalog.
type LocalizedText map[string]string

// Get returns the text for lang, falling back to "en" and then to any
// available translation.
func (t LocalizedText) Get(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	if v, ok := t["en"]; ok && v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// Vendor is the populated producer object embedded in enriched product
// payloads.
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
	Logo string `json:"logo,omitempty"`
}

// Product is the catalog payload a shopper adds to the cart. Vendor may be
// populated, or only the flat VendorID/VendorName fields may be set.
type Product struct {
	ID         string        `json:"id"`
	VariantID  string        `json:"variant_id,omitempty"`
	Name       LocalizedText `json:"name"`
	Price      float64       `json:"price"`
	Stock      int           `json:"stock"`
	Image      string        `json:"image,omitempty"`
	Unit       string        `json:"unit,omitempty"`
	Vendor     *Vendor       `json:"vendor,omitempty"`
	VendorID   string        `json:"vendor_id,omitempty"`
	VendorName string        `json:"vendor_name,omitempty"`
}
