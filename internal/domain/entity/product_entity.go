package entity

// Unit is the measurement unit of a product quantity.
type Unit int

const (
	UnitCount Unit = iota
	UnitGram
	UnitMilliliter
)

// ParseUnit maps the stored numeric form back to a Unit; unknown values
// fall back to UnitCount, matching how rows written by older versions of
// the schema are read.
func ParseUnit(v int) Unit {
	switch v {
	case 1:
		return UnitGram
	case 2:
		return UnitMilliliter
	default:
		return UnitCount
	}
}

func (u Unit) String() string {
	switch u {
	case UnitGram:
		return "gram"
	case UnitMilliliter:
		return "ml"
	default:
		return "count"
	}
}

// Product belongs to exactly one aisle.
type Product struct {
	ID         ProductID `json:"product_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	Done       bool      `json:"is_done"`
	Unit       Unit      `json:"unit"`
	SortWeight float64   `json:"sort_weight"`
}

// EditProduct is a partial update; nil fields are left untouched. A patch
// with no field set is invalid.
type EditProduct struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity" binding:"omitempty,min=1"`
	Unit     *Unit   `json:"unit" binding:"omitempty,min=0,max=2"`
	Done     *bool   `json:"is_done"`
}

func (e EditProduct) HasAtLeastAField() bool {
	return e.Name != nil || e.Quantity != nil || e.Unit != nil || e.Done != nil
}
