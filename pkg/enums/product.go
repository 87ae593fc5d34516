package enums

import "fmt"

// ProductCategory buckets catalog entries for listing filters.
type ProductCategory string

const (
	ProductCategoryVegetables ProductCategory = "vegetables"
	ProductCategoryFruits     ProductCategory = "fruits"
	ProductCategoryGrains     ProductCategory = "grains"
	ProductCategorySpices     ProductCategory = "spices"
)

var validProductCategories = []ProductCategory{
	ProductCategoryVegetables,
	ProductCategoryFruits,
	ProductCategoryGrains,
	ProductCategorySpices,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductUnit is the unit of measure a product is priced in.
type ProductUnit string

const (
	ProductUnitKg    ProductUnit = "kg"
	ProductUnitBunch ProductUnit = "bunch"
	ProductUnitPiece ProductUnit = "piece"
)

var validProductUnits = []ProductUnit{
	ProductUnitKg,
	ProductUnitBunch,
	ProductUnitPiece,
}

// String implements fmt.Stringer.
func (u ProductUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known ProductUnit.
func (u ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}
