package domain

// Default booking values
const (
	DefaultSlotStepMinutes = 30
	DefaultTimezone        = "Europe/Moscow"
)

// Business validation constants
const (
	MaxPeopleCount       = 200
	MaxResourcesPerOrder = 20
	MaxExtrasPerOrder    = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Extra codes known to the default fee table
const (
	ExtraInstructor = "instructor"
	ExtraEquipment  = "equipment"
	ExtraFood       = "food"
)
