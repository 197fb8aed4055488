package domain

import "github.com/shopspring/decimal"

// Physical parameters of a supplier's product as it arrives for delivery.
// Dimensions are outer carton dimensions in whole centimeters; weight is
// per item in kilograms. All values must be strictly positive.
type ProductSpec struct {
	LengthCM            int
	WidthCM             int
	HeightCM            int
	WeightKG            decimal.Decimal
	ItemsPerSupplierBox int
}
