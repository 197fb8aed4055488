package domain

type Country struct {
	ID   int
	Name string
	Code string
}

// Administrative region deliveries are priced within. Type is the local
// designation (krai, oblast, ...).
type Region struct {
	ID        int
	CountryID int
	Name      string
	Type      string
}

// A customer pickup location. Only active points falling inside one of the
// region's sectors participate in calculations.
type DeliveryPoint struct {
	ID           int
	SettlementID int
	Name         string
	Location     Coordinates
	IsActive     bool
}
