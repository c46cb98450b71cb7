package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightLess(t *testing.T) {
	assert.True(t, WeightLess(0, 1, "z", "a"), "weights dominate names")
	assert.False(t, WeightLess(1, 0, "a", "z"))

	// ties within tolerance fall back to the name
	assert.True(t, WeightLess(1.0, 1.0000001, "apples", "bananas"))
	assert.False(t, WeightLess(1.0, 1.0000001, "bananas", "apples"))
}

func TestSortAisles(t *testing.T) {
	aisles := []Aisle{
		{Name: "Produce", SortWeight: 2},
		{Name: "Bakery", SortWeight: 0.5},
		{Name: "Dairy", SortWeight: 0.5},
		{Name: "Frozen", SortWeight: -1},
	}
	SortAisles(aisles)

	names := make([]string, len(aisles))
	for i, a := range aisles {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"Frozen", "Bakery", "Dairy", "Produce"}, names)
}

func TestSortProducts(t *testing.T) {
	products := []Product{
		{Name: "Yogurt", SortWeight: 1},
		{Name: "Milk", SortWeight: 0},
		{Name: "Butter", SortWeight: 1},
	}
	SortProducts(products)

	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"Milk", "Butter", "Yogurt"}, names)
}

func TestHasAtLeastAField(t *testing.T) {
	assert.False(t, EditProduct{}.HasAtLeastAField())
	name := "Milk"
	assert.True(t, EditProduct{Name: &name}.HasAtLeastAField())

	assert.False(t, EditWeight{}.HasAtLeastAField())
	assert.True(t, EditWeight{Aisles: []ItemWeight{{ID: "a"}}}.HasAtLeastAField())
	assert.True(t, EditWeight{Products: []ItemWeight{{ID: "p"}}}.HasAtLeastAField())
}
