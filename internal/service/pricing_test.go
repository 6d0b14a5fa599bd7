package service

import (
	"math"
	"saree-checkout/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name    string
		product *model.Product
		want    int64
	}{
		{"nil product", nil, 0},
		{"explicit price wins over mrp", &model.Product{Price: int64Ptr(750), MRP: float64Ptr(1000), DiscountPercent: float64Ptr(10)}, 750},
		{"explicit zero price", &model.Product{Price: int64Ptr(0), MRP: float64Ptr(1000)}, 0},
		{"mrp with discount", &model.Product{MRP: float64Ptr(1000), DiscountPercent: float64Ptr(10)}, 900},
		{"mrp without discount", &model.Product{MRP: float64Ptr(1299)}, 1299},
		{"no mrp", &model.Product{DiscountPercent: float64Ptr(10)}, 0},
		{"half rounds up", &model.Product{MRP: float64Ptr(1005), DiscountPercent: float64Ptr(10)}, 905},
		{"fraction rounds down", &model.Product{MRP: float64Ptr(999), DiscountPercent: float64Ptr(33)}, 669},
		{"discount above 100 clamps to zero", &model.Product{MRP: float64Ptr(1000), DiscountPercent: float64Ptr(150)}, 0},
		{"nan mrp", &model.Product{MRP: float64Ptr(math.NaN()), DiscountPercent: float64Ptr(10)}, 0},
		{"nan discount", &model.Product{MRP: float64Ptr(800), DiscountPercent: float64Ptr(math.NaN())}, 800},
		{"infinite mrp", &model.Product{MRP: float64Ptr(math.Inf(1))}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnitPrice(tt.product))
		})
	}
}

func TestUnitPrice_Deterministic(t *testing.T) {
	p := &model.Product{MRP: float64Ptr(2499), DiscountPercent: float64Ptr(17.5)}
	first := UnitPrice(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, UnitPrice(p))
	}
}

func TestUnitPrice_ExplicitPriceIgnoresDerivedFields(t *testing.T) {
	for _, mrp := range []float64{0, 10, 1000, math.NaN()} {
		for _, d := range []float64{0, 50, 200} {
			p := &model.Product{Price: int64Ptr(321), MRP: float64Ptr(mrp), DiscountPercent: float64Ptr(d)}
			assert.Equal(t, int64(321), UnitPrice(p))
		}
	}
}
