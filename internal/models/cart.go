package models

// ItemRef tags a cart line as either a product or a combo reference.
// Resolved once at ingestion; never re-parsed downstream.
type ItemRef struct {
	Kind string `json:"kind"` // product, combo
	ID   uint   `json:"id"`
}

type RefKind string

const (
	RefProduct RefKind = "product"
	RefCombo   RefKind = "combo"
)

// CartItem is one requested line before it becomes an OrderItem.
// UnitPrice zero means "use the catalog price"; a non-zero value is a
// terminal-side price override.
type CartItem struct {
	Ref       ItemRef `json:"ref"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Notes     string  `json:"notes"`
}
