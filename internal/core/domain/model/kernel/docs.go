// Package kernel contains the shared value objects of the domain model:
// opaque identifiers, monetary amounts, and postal addresses.
//
// All types in this package are immutable value objects. Zero values are
// invalid and rejected by Validate; instances must be created through the
// provided constructor functions.
package kernel
