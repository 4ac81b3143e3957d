package cart

import (
	"errors"
	"testing"

	"github.com/foodorder/storefront/catalog"
	"github.com/foodorder/storefront/core"
)

var (
	pizza = catalog.Product{ID: 1, Name: "Margherita", Price: 300, Category: "Main Course"}
	juice = catalog.Product{ID: 2, Name: "Orange Juice", Price: 100, Category: "Beverage"}
)

func TestAdd_MergesSameProductAndInstructions(t *testing.T) {
	c := New(nil)

	c.Add(pizza, 1, "extra cheese")
	c.Add(pizza, 2, "extra cheese")
	c.Add(pizza, 1, "extra cheese")

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 merged line", c.Len())
	}
	if c.Count() != 4 {
		t.Errorf("Count() = %d, want 4 (sum of quantities added)", c.Count())
	}
	if got := c.Lines()[0].Quantity; got != 4 {
		t.Errorf("merged quantity = %d, want 4", got)
	}
}

func TestAdd_DifferentInstructionsStartNewLine(t *testing.T) {
	c := New(nil)

	c.Add(pizza, 1, "")
	c.Add(pizza, 1, "no basil")

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 distinct lines", c.Len())
	}
}

func TestAdd_ClampsQuantity(t *testing.T) {
	c := New(nil)

	c.Add(pizza, 0, "")
	c.Add(juice, -3, "")

	for i, l := range c.Lines() {
		if l.Quantity != 1 {
			t.Errorf("line %d quantity = %d, want 1", i, l.Quantity)
		}
	}
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name        string
		newQuantity int
		wantLines   int
		wantCount   int
	}{
		{name: "positive replaces", newQuantity: 5, wantLines: 2, wantCount: 6},
		{name: "zero removes", newQuantity: 0, wantLines: 1, wantCount: 1},
		{name: "negative removes", newQuantity: -1, wantLines: 1, wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil)
			c.Add(pizza, 2, "")
			c.Add(juice, 1, "")

			if err := c.UpdateQuantity(0, tt.newQuantity); err != nil {
				t.Fatalf("UpdateQuantity() failed: %v", err)
			}
			if c.Len() != tt.wantLines {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.wantLines)
			}
			if c.Count() != tt.wantCount {
				t.Errorf("Count() = %d, want %d", c.Count(), tt.wantCount)
			}
			// The other line is never disturbed
			last := c.Lines()[c.Len()-1]
			if last.Product.ID != juice.ID || last.Quantity != 1 {
				t.Errorf("unrelated line changed: %+v", last)
			}
		})
	}
}

func TestUpdateQuantity_OutOfRange(t *testing.T) {
	c := New(nil)
	c.Add(pizza, 2, "")

	if err := c.UpdateQuantity(5, 3); !errors.Is(err, core.ErrLineNotFound) {
		t.Errorf("UpdateQuantity(5, 3) error = %v, want ErrLineNotFound", err)
	}
	if err := c.UpdateQuantity(-1, 3); !errors.Is(err, core.ErrLineNotFound) {
		t.Errorf("UpdateQuantity(-1, 3) error = %v, want ErrLineNotFound", err)
	}
	if c.Count() != 2 {
		t.Errorf("cart mutated by out-of-range update: Count() = %d, want 2", c.Count())
	}
}

func TestRemove_KeepsRelativeOrder(t *testing.T) {
	c := New(nil)
	c.Add(pizza, 1, "")
	c.Add(juice, 1, "")
	c.Add(pizza, 1, "no basil")

	if err := c.Remove(1); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("Len() = %d, want 2", len(lines))
	}
	if lines[0].Product.ID != pizza.ID || lines[0].SpecialInstructions != "" {
		t.Errorf("first line out of order: %+v", lines[0])
	}
	if lines[1].SpecialInstructions != "no basil" {
		t.Errorf("second line out of order: %+v", lines[1])
	}
}

func TestTotals(t *testing.T) {
	c := New(nil)
	c.Add(pizza, 2, "") // 600
	c.Add(juice, 3, "") // 300

	if got := c.Total(); got != 900 {
		t.Errorf("Total() = %d, want 900", got)
	}
	if got := c.Lines()[0].Total(); got != 600 {
		t.Errorf("line Total() = %d, want 600", got)
	}
}

func TestClear(t *testing.T) {
	c := New(nil)
	c.Add(pizza, 2, "")
	c.Clear()

	if c.Len() != 0 || c.Count() != 0 || c.Total() != 0 {
		t.Errorf("cart not empty after Clear(): len=%d count=%d total=%d", c.Len(), c.Count(), c.Total())
	}
}

func TestLinesReturnsSnapshot(t *testing.T) {
	c := New(nil)
	c.Add(pizza, 1, "")

	snapshot := c.Lines()
	snapshot[0].Quantity = 99

	if got := c.Lines()[0].Quantity; got != 1 {
		t.Errorf("internal line mutated through snapshot: quantity = %d, want 1", got)
	}
}
