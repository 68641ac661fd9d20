package domain

// Space identifies a single bookable space and its grouping metadata.
// Values come straight from the input CSV; all fields are required.
type Space struct {
	SpaceID      string
	SpaceName    string
	CategoryID   string
	CategoryName string
	LocationID   string
	LocationName string
}
