package dto

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields render as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type SupplierLocation struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type ProductParams struct {
	LengthCM    int             `json:"length_cm" validate:"required,gt=0"`
	WidthCM     int             `json:"width_cm" validate:"required,gt=0"`
	HeightCM    int             `json:"height_cm" validate:"required,gt=0"`
	WeightKG    decimal.Decimal `json:"weight_kg" validate:"required,gt=0"`
	ItemsPerBox int             `json:"items_per_box" validate:"required,gt=0"`
}

// Point and sector counts for estimate mode. A missing num_sectors means
// "all sectors in the region".
type DeliveryParams struct {
	NumPoints  int  `json:"num_points" validate:"required,gt=0"`
	NumSectors *int `json:"num_sectors" validate:"omitempty,gt=0"`
}

type CalculateByPointsRequest struct {
	RegionID         int               `json:"region_id" validate:"required,gt=0"`
	SupplierLocation *SupplierLocation `json:"supplier_location" validate:"required"`
	Product          *ProductParams    `json:"product" validate:"required"`
	DeliveryPointIDs []int             `json:"delivery_point_ids" validate:"required,min=1,dive,gt=0"`
}

type CalculateEstimateRequest struct {
	RegionID         int               `json:"region_id" validate:"required,gt=0"`
	SupplierLocation *SupplierLocation `json:"supplier_location" validate:"required"`
	Product          *ProductParams    `json:"product" validate:"required"`
	Delivery         *DeliveryParams   `json:"delivery" validate:"required"`
}

type CalculateByPointsResponse struct {
	ItemsInStandardBox    int             `json:"items_in_standard_box"`
	CostPerItem           decimal.Decimal `json:"cost_per_item"`
	CostPerSupplierBox    decimal.Decimal `json:"cost_per_supplier_box"`
	DeliveryPointsUsed    int             `json:"delivery_points_used"`
	DeliveryPointsIgnored int             `json:"delivery_points_ignored"`
	SectorsCount          int             `json:"sectors_count"`
	DistanceToDCKM        decimal.Decimal `json:"distance_to_dc_km"`
	NearestDCName         string          `json:"nearest_dc_name"`
}

type CalculateEstimateResponse struct {
	ItemsInStandardBox int             `json:"items_in_standard_box"`
	CostPerItem        decimal.Decimal `json:"cost_per_item"`
	CostPerSupplierBox decimal.Decimal `json:"cost_per_supplier_box"`
	DistanceToDCKM     decimal.Decimal `json:"distance_to_dc_km"`
	NearestDCName      string          `json:"nearest_dc_name"`
}
