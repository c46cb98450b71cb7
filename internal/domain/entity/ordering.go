package entity

import (
	"math"
	"sort"
)

// weightEpsilon is the float tolerance under which two sort weights are
// considered equal and the display name decides the order.
const weightEpsilon = 1e-6

// WeightLess is the canonical visual ordering: ascending sort weight,
// lexicographic name when the weights tie within tolerance.
func WeightLess(wa, wb float64, na, nb string) bool {
	if math.Abs(wa-wb) < weightEpsilon {
		return na < nb
	}
	return wa < wb
}

// SortAisles orders aisles for display. Listing reads sets, which carry no
// order, so callers sort explicitly.
func SortAisles(aisles []Aisle) {
	sort.SliceStable(aisles, func(i, j int) bool {
		return WeightLess(aisles[i].SortWeight, aisles[j].SortWeight, aisles[i].Name, aisles[j].Name)
	})
}

// SortProducts orders products for display.
func SortProducts(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return WeightLess(products[i].SortWeight, products[j].SortWeight, products[i].Name, products[j].Name)
	})
}
