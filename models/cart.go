package models

import "time"

// CartLine is one entry in the shopper's cart. Identity is the
// (ProductID, VariantID) pair; VariantID is empty for products without
// variants. Price and stock are the values seen at add time and are
// refreshed whenever the same identity is added again.
type CartLine struct {
	ProductID string        `json:"product_id"`
	VariantID string        `json:"variant_id,omitempty"`
	Name      LocalizedText `json:"name"`
	UnitPrice float64       `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	Stock     int           `json:"stock"`
	Image     string        `json:"image,omitempty"`
	Unit      string        `json:"unit,omitempty"`
	Vendor    VendorRef     `json:"vendor"`
	AddedAt   time.Time     `json:"added_at"`
}

// Matches reports whether the line has the given identity.
func (l CartLine) Matches(productID, variantID string) bool {
	return l.ProductID == productID && l.VariantID == variantID
}

// Subtotal is unit price times quantity.
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// MutationResult is the outcome of a cart mutation. Stock rejections are
// reported through it rather than returned as errors; callers decide how to
// surface the message.
type MutationResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	AvailableStock int    `json:"available_stock,omitempty"`
}

func ok() MutationResult {
	return MutationResult{Success: true}
}

func rejected(msg string, available int) MutationResult {
	return MutationResult{Success: false, Message: msg, AvailableStock: available}
}

// Cart is the shopper's cart for one session. Line order is insertion order;
// it only matters for display. All derived figures (Count, Total, vendor
// groups) are recomputed from the lines on every call.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart returns an empty cart for the session.
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []CartLine{}}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clone returns an independent copy of the cart. The lines slice and the
// localized name maps are copied, so mutating the clone never touches the
// original.
func (c *Cart) Clone() *Cart {
	out := &Cart{
		SessionID: c.SessionID,
		UpdatedAt: c.UpdatedAt,
		Lines:     make([]CartLine, len(c.Lines)),
	}
	copy(out.Lines, c.Lines)
	for i := range out.Lines {
		if out.Lines[i].Name == nil {
			continue
		}
		name := make(LocalizedText, len(out.Lines[i].Name))
		for k, v := range out.Lines[i].Name {
			name[k] = v
		}
		out.Lines[i].Name = name
	}
	return out
}

func (c *Cart) findLine(productID, variantID string) int {
	for i := range c.Lines {
		if c.Lines[i].Matches(productID, variantID) {
			return i
		}
	}
	return -1
}

// Add merges qty of the product into the cart. An existing line with the
// same (product, variant) identity accumulates quantity and has its cached
// price and stock refreshed from the payload; otherwise a new line is
// appended. The mutation is rejected, leaving the cart untouched, when the
// resulting quantity would exceed the product's reported stock.
func (c *Cart) Add(p Product, qty int) MutationResult {
	if qty <= 0 {
		return rejected("quantity must be positive", 0)
	}

	i := c.findLine(p.ID, p.VariantID)
	existing := 0
	if i >= 0 {
		existing = c.Lines[i].Quantity
	}
	if existing+qty > p.Stock {
		return rejected("not enough stock available", p.Stock)
	}

	if i >= 0 {
		line := &c.Lines[i]
		line.Quantity += qty
		line.UnitPrice = p.Price
		line.Stock = p.Stock
	} else {
		c.Lines = append(c.Lines, CartLine{
			ProductID: p.ID,
			VariantID: p.VariantID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  qty,
			Stock:     p.Stock,
			Image:     p.Image,
			Unit:      p.Unit,
			Vendor:    VendorRefFromProduct(p),
			AddedAt:   time.Now(),
		})
	}
	c.UpdatedAt = time.Now()
	return ok()
}

// Remove deletes the line with the given identity. Removing an absent
// identity is a no-op, not an error.
func (c *Cart) Remove(productID, variantID string) {
	i := c.findLine(productID, variantID)
	if i < 0 {
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.UpdatedAt = time.Now()
}

// UpdateQuantity sets the line's quantity exactly. Zero or negative behaves
// as Remove and reports success. The update is rejected when the new
// quantity exceeds the line's last-known stock.
func (c *Cart) UpdateQuantity(productID, variantID string, qty int) MutationResult {
	if qty <= 0 {
		c.Remove(productID, variantID)
		return ok()
	}
	i := c.findLine(productID, variantID)
	if i < 0 {
		return rejected("item not in cart", 0)
	}
	if qty > c.Lines[i].Stock {
		return rejected("not enough stock available", c.Lines[i].Stock)
	}
	c.Lines[i].Quantity = qty
	c.UpdatedAt = time.Now()
	return ok()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
	c.UpdatedAt = time.Now()
}

// Count is the total number of items across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Total is the sum of price times quantity across all lines.
func (c *Cart) Total() float64 {
	t := 0.0
	for _, l := range c.Lines {
		t += l.Subtotal()
	}
	return t
}

// VendorGroup is one producer's slice of the cart.
type VendorGroup struct {
	VendorID   string     `json:"vendor_id"`
	VendorName string     `json:"vendor_name"`
	City       string     `json:"city,omitempty"`
	Logo       string     `json:"logo,omitempty"`
	Lines      []CartLine `json:"lines"`
	Subtotal   float64    `json:"subtotal"`
}

// GroupedByVendor partitions the lines by producer identity, preserving the
// order in which producers first appear. Lines with no vendor identity land
// in a literal "unknown" bucket.
func (c *Cart) GroupedByVendor() []VendorGroup {
	byKey := make(map[string]int)
	groups := []VendorGroup{}
	for _, l := range c.Lines {
		key := l.Vendor.GroupKey()
		i, seen := byKey[key]
		if !seen {
			i = len(groups)
			byKey[key] = i
			groups = append(groups, VendorGroup{
				VendorID:   key,
				VendorName: l.Vendor.DisplayName(),
				City:       l.Vendor.City,
				Logo:       l.Vendor.Logo,
			})
		}
		groups[i].Lines = append(groups[i].Lines, l)
		groups[i].Subtotal += l.Subtotal()
	}
	return groups
}

// StockCheckItems builds the batch payload for the backend's check-stock
// endpoint from the current lines.
func (c *Cart) StockCheckItems() []StockCheckItem {
	items := make([]StockCheckItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, StockCheckItem{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		})
	}
	return items
}
