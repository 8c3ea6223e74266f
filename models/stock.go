package models

// StockCheckItem is one cart line in the batch check-stock request. The
// backend contract uses camelCase field names.
type StockCheckItem struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity"`
}

// StockIssue is a line-level availability discrepancy reported by the
// backend. Issues are never persisted; they are recomputed on each
// reconciliation.
type StockIssue struct {
	ProductID   string `json:"productId"`
	VariantID   string `json:"variantId,omitempty"`
	ProductName string `json:"productName"`
	Message     string `json:"message"`
}

// References reports whether the issue is about the given line identity.
func (i StockIssue) References(productID, variantID string) bool {
	return i.ProductID == productID && i.VariantID == variantID
}

// StockValidation is the outcome of one reconciliation pass.
type StockValidation struct {
	Valid  bool         `json:"valid"`
	Issues []StockIssue `json:"issues"`
}
