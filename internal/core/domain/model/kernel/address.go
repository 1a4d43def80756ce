package kernel

import (
	"carveyor/internal/pkg/errs"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("Address must be created via NewAddress")

// Address is a postal address value object. The road address identifies the
// location for delivery-cost lookup; the detail part (building, unit) is
// free-form and optional.
type Address struct {
	road   string
	detail string

	isConstructed bool
}

// NewAddress creates an Address. The road address is required.
func NewAddress(road, detail string) (Address, error) {
	if road == "" {
		return Address{}, errs.NewValueIsRequiredError("road address")
	}

	return Address{
		road:          road,
		detail:        detail,
		isConstructed: true,
	}, nil
}

// Road returns the road address part.
func (a Address) Road() string {
	return a.road
}

// Detail returns the free-form detail part, possibly empty.
func (a Address) Detail() string {
	return a.detail
}

// String returns the full address for display and notifications.
func (a Address) String() string {
	if a.detail == "" {
		return a.road
	}
	return a.road + " " + a.detail
}

// IsEqual reports whether two addresses are the same value.
func (a Address) IsEqual(other Address) bool {
	return a.road == other.road && a.detail == other.detail
}

// Validate returns ErrAddressIsNotConstructed for the zero value.
func (a Address) Validate() error {
	if !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}
