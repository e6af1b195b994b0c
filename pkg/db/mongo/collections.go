package mongo

// Collection names are shared with existing datasets and must not change.
const (
	CollectionSchedules       = "Transportation Schedules"
	CollectionRentalInventory = "Rental Station Inventory"
	CollectionLocations       = "Main Locations"
	CollectionUsers           = "Users"
)
