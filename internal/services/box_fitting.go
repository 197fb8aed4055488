package services

import (
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
)

// How many items of one product fit into the region's standard box.
type BoxFitting struct {
	ItemsByDimensions  int
	ItemsByWeight      int
	ItemsInStandardBox int
}

// FitProduct computes standard-box capacity for a product: axis-aligned
// floor division per dimension (no rotation) bounded by the box weight
// limit. ItemsInStandardBox of zero means the product does not fit.
func FitProduct(tariff *domain.RegionTariff, product domain.ProductSpec) BoxFitting {
	nLength := tariff.BoxLengthCM / product.LengthCM
	nWidth := tariff.BoxWidthCM / product.WidthCM
	nHeight := tariff.BoxHeightCM / product.HeightCM
	byDimensions := nLength * nWidth * nHeight

	byWeight := int(tariff.BoxMaxWeightKG.Div(product.WeightKG).IntPart())

	items := byDimensions
	if byWeight < items {
		items = byWeight
	}

	return BoxFitting{
		ItemsByDimensions:  byDimensions,
		ItemsByWeight:      byWeight,
		ItemsInStandardBox: items,
	}
}
