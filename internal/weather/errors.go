package weather

import "errors"

var (
	// ErrEmptyName is returned when creating a location with a blank name.
	ErrEmptyName = errors.New("location name is empty")

	// ErrUnknownLocation is returned when creating a record whose location ID
	// does not exist. The foreign-key constraint in the schema enforces this,
	// not application logic.
	ErrUnknownLocation = errors.New("record references unknown location")
)
