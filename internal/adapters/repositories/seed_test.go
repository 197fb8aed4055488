package repositories

import (
	"testing"

	"github.com/shopspring/decimal"
)

func validPricingSeed() PricingSeed {
	return PricingSeed{
		RegionID:                 1,
		DriverHourlyRate:         decimal.NewFromInt(500),
		PlannedWorkHours:         decimal.NewFromInt(8),
		FuelPricePerLiter:        decimal.NewFromInt(55),
		FuelConsumptionPer100KM:  decimal.NewFromInt(12),
		DepreciationCoefficient:  decimal.RequireFromString("0.15"),
		WarehouseProcessingPerKG: decimal.NewFromInt(5),
		ServiceFeePerKG:          decimal.NewFromInt(10),
		DeliveryPointCost:        decimal.NewFromInt(150),
		StandardTripWeightKG:     decimal.NewFromInt(5000),
		BoxLengthCM:              60,
		BoxWidthCM:               40,
		BoxHeightCM:              40,
		BoxMaxWeightKG:           decimal.NewFromInt(30),
		MinPointsForDiscount:     100,
		DiscountStepPoints:       50,
		InitialDiscountPercent:   decimal.NewFromInt(5),
		DiscountStepPercent:      decimal.NewFromInt(5),
	}
}

func TestPricingSeedValidate(t *testing.T) {
	if err := validPricingSeed().validate(); err != nil {
		t.Fatalf("valid seed rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*PricingSeed)
	}{
		{name: "zero discount step points", mutate: func(p *PricingSeed) { p.DiscountStepPoints = 0 }},
		{name: "zero min points", mutate: func(p *PricingSeed) { p.MinPointsForDiscount = 0 }},
		{name: "zero driver rate", mutate: func(p *PricingSeed) { p.DriverHourlyRate = decimal.Zero }},
		{name: "negative service fee", mutate: func(p *PricingSeed) { p.ServiceFeePerKG = decimal.NewFromInt(-1) }},
		{name: "zero box width", mutate: func(p *PricingSeed) { p.BoxWidthCM = 0 }},
		{name: "discount percent above 100", mutate: func(p *PricingSeed) { p.InitialDiscountPercent = decimal.NewFromInt(101) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seed := validPricingSeed()
			tc.mutate(&seed)
			if err := seed.validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestPricingSeedAllowsZeroHandlingFees(t *testing.T) {
	seed := validPricingSeed()
	seed.WarehouseProcessingPerKG = decimal.Zero
	seed.ServiceFeePerKG = decimal.Zero

	if err := seed.validate(); err != nil {
		t.Fatalf("zero handling fees rejected: %v", err)
	}
}
