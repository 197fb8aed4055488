package domain

// A regional warehouse suppliers ship into. The routed leg of every
// calculation runs from the supplier to one of these.
type DistributionCenter struct {
	ID       int
	RegionID int
	Name     string
	Location Coordinates
	Address  string
	IsActive bool
}
