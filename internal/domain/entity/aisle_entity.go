package entity

// Aisle belongs to exactly one store and carries a float sort weight used
// as a drag-and-drop ordering hint.
type Aisle struct {
	ID         AisleID   `json:"aisle_id"`
	Name       string    `json:"name"`
	SortWeight float64   `json:"sort_weight"`
	Products   []Product `json:"products"`
}

// ItemWeight is one entry of a reorder request.
type ItemWeight struct {
	ID         string  `json:"id" binding:"required"`
	SortWeight float64 `json:"sort_weight"`
}

// EditWeight is a batch reorder spanning aisles and/or products. A request
// carrying neither is invalid.
type EditWeight struct {
	Aisles   []ItemWeight `json:"aisles"`
	Products []ItemWeight `json:"products"`
}

func (w EditWeight) HasAtLeastAField() bool {
	return len(w.Aisles) > 0 || len(w.Products) > 0
}
