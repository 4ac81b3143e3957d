package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodorder/storefront/core"
)

const sampleDoc = `
foods:
  - id: 1
    name: Paneer Tikka
    price: 250
    category: Appetizer
    rating: 4.5
    isAvailable: true
    isVegetarian: true
    preparationTime: 20 mins
    ingredients: [paneer, yogurt, spices]
  - id: 2
    name: Butter Chicken
    price: 350
    category: Main Course
    rating: 5
    isAvailable: true
    isVegetarian: false
  - id: 3
    name: Gulab Jamun
    price: 120
    category: Dessert
    rating: 4
    isAvailable: false
    isVegetarian: true
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleDoc), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())

	p, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Paneer Tikka", p.Name)
	assert.Equal(t, int64(250), p.Price)
	assert.Equal(t, []string{"paneer", "yogurt", "spices"}, p.Ingredients)
	assert.True(t, p.IsVegetarian)
}

func TestParse_JSONDocument(t *testing.T) {
	// JSON documents parse through the same loader, YAML being a superset
	doc := `{"foods":[{"id":7,"name":"Lassi","price":80,"category":"Beverage","rating":4.5,"isAvailable":true}]}`
	c, err := Parse([]byte(doc), nil)
	require.NoError(t, err)

	p, err := c.Get(7)
	require.NoError(t, err)
	assert.Equal(t, "Lassi", p.Name)
	assert.Equal(t, "Beverage", p.Category)
}

func TestGet_Unknown(t *testing.T) {
	c, err := Parse([]byte(sampleDoc), nil)
	require.NoError(t, err)

	_, err = c.Get(99)
	assert.True(t, errors.Is(err, core.ErrProductNotFound))
}

func TestByCategory(t *testing.T) {
	c, err := Parse([]byte(sampleDoc), nil)
	require.NoError(t, err)

	assert.Len(t, c.ByCategory(CategoryAll), 3)
	assert.Len(t, c.ByCategory("Main Course"), 1)
	assert.Len(t, c.ByCategory("Dessert"), 1)
	assert.Empty(t, c.ByCategory("Beverage"))
}

func TestAvailable(t *testing.T) {
	c, err := Parse([]byte(sampleDoc), nil)
	require.NoError(t, err)

	available := c.Available()
	assert.Len(t, available, 2)
	for _, p := range available {
		assert.True(t, p.IsAvailable)
	}
}

func TestCategories(t *testing.T) {
	c, err := Parse([]byte(sampleDoc), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{CategoryAll, "Appetizer", "Main Course", "Dessert"}, c.Categories())
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
	}{
		{
			name:     "negative price",
			products: []Product{{ID: 1, Name: "Bad", Price: -1}},
		},
		{
			name:     "rating above five",
			products: []Product{{ID: 1, Name: "Bad", Rating: 5.5}},
		},
		{
			name:     "rating not a half step",
			products: []Product{{ID: 1, Name: "Bad", Rating: 4.3}},
		},
		{
			name:     "missing name",
			products: []Product{{ID: 1}},
		},
		{
			name: "duplicate id",
			products: []Product{
				{ID: 1, Name: "A"},
				{ID: 1, Name: "B"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.products, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidCatalog))
		})
	}
}

func TestProductsReturnsCopy(t *testing.T) {
	c, err := Parse([]byte(sampleDoc), nil)
	require.NoError(t, err)

	snapshot := c.Products()
	snapshot[0].Name = "mutated"

	p, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Paneer Tikka", p.Name)
}
