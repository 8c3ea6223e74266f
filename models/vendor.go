package models

// VendorRefKind distinguishes how much of the producer record was available
// when the line was added. Product payloads sometimes arrive with a fully
// populated vendor object and sometimes with only flat vendor_id/vendor_name
// fields, depending on whether enrichment ran upstream.
type VendorRefKind string

const (
	VendorPopulated VendorRefKind = "populated"
	VendorIDOnly    VendorRefKind = "id_only"
	VendorUnknown   VendorRefKind = "unknown"
)

// VendorRef is the producer reference carried on a cart line.
type VendorRef struct {
	Kind VendorRefKind `json:"kind"`
	ID   string        `json:"id,omitempty"`
	Name string        `json:"name,omitempty"`
	City string        `json:"city,omitempty"`
	Logo string        `json:"logo,omitempty"`
}

// UnknownVendorKey is the grouping bucket for lines with no vendor identity.
const UnknownVendorKey = "unknown"

// GroupKey returns the identity used for per-vendor grouping.
func (v VendorRef) GroupKey() string {
	if v.Kind == VendorUnknown || v.ID == "" {
		return UnknownVendorKey
	}
	return v.ID
}

// DisplayName returns the best label we have for the producer.
func (v VendorRef) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	if v.ID != "" {
		return v.ID
	}
	return UnknownVendorKey
}

// VendorRefFromProduct builds the line's vendor reference from whichever
// representation the product payload carries.
func VendorRefFromProduct(p Product) VendorRef {
	if p.Vendor != nil && p.Vendor.ID != "" {
		return VendorRef{
			Kind: VendorPopulated,
			ID:   p.Vendor.ID,
			Name: p.Vendor.Name,
			City: p.Vendor.City,
			Logo: p.Vendor.Logo,
		}
	}
	if p.VendorID != "" {
		return VendorRef{
			Kind: VendorIDOnly,
			ID:   p.VendorID,
			Name: p.VendorName,
		}
	}
	return VendorRef{Kind: VendorUnknown}
}
