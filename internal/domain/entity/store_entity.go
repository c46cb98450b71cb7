package entity

// Store is owned by exactly one user; the owner is recorded at creation
// and never changes.
type Store struct {
	ID     StoreID `json:"store_id"`
	Name   string  `json:"name"`
	Aisles []Aisle `json:"aisles"`
}

// StoreLight is the shallow listing shape: no aisle expansion.
type StoreLight struct {
	ID   StoreID `json:"store_id"`
	Name string  `json:"name"`
}
