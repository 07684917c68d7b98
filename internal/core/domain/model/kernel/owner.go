package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// OwnerKind identifies the type of entity holding a stock record or owning an
// order. Exactly one kind applies to any given record.
type OwnerKind int

const (
	// OwnerUnknown represents an invalid or undefined owner kind.
	OwnerUnknown OwnerKind = iota

	// OwnerFactory marks stock held at the production facility.
	OwnerFactory

	// OwnerDistributor marks stock held by a regional distributor.
	OwnerDistributor

	// OwnerFranchise marks stock held by a retail franchise outlet.
	OwnerFranchise
)

func getOwnerKindStrings() map[OwnerKind]string {
	return map[OwnerKind]string{
		OwnerUnknown:     "Unknown",
		OwnerFactory:     "Factory",
		OwnerDistributor: "Distributor",
		OwnerFranchise:   "Franchise",
	}
}

// String returns the human-readable name of the owner kind.
func (k OwnerKind) String() string {
	if s, ok := getOwnerKindStrings()[k]; ok {
		return s
	}
	return "Unknown"
}

// OwnerKindFromString parses an owner kind name. Unrecognized names fail
// with a value-is-invalid error, never a silent fallback.
func OwnerKindFromString(s string) (OwnerKind, error) {
	for kind, name := range getOwnerKindStrings() {
		if name == s && kind != OwnerUnknown {
			return kind, nil
		}
	}
	return OwnerUnknown, errs.NewValueIsInvalidErrorWithCause("owner kind",
		fmt.Errorf("%q is not a recognized owner kind", s))
}

// Validate checks that the owner kind is one of the three known kinds.
func (k OwnerKind) Validate() error {
	switch k {
	case OwnerFactory, OwnerDistributor, OwnerFranchise:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("owner kind",
			fmt.Errorf("%d is not a valid owner kind", k))
	}
}

// OwnerRef is a value object identifying the inventory-holding entity for a
// stock record: a factory, a distributor, or a franchise. The kind and the
// entity identifier travel together so that stock pools of different owner
// types can never be confused.
//
// The zero value is invalid; use NewOwnerRef.
type OwnerRef struct {
	kind OwnerKind
	id   UUID
}

// NewOwnerRef creates a validated owner reference.
func NewOwnerRef(kind OwnerKind, id UUID) (OwnerRef, error) {
	if err := kind.Validate(); err != nil {
		return OwnerRef{}, err
	}
	if err := id.Validate(); err != nil {
		return OwnerRef{}, err
	}
	return OwnerRef{kind: kind, id: id}, nil
}

// Kind returns the owner kind.
func (o OwnerRef) Kind() OwnerKind {
	return o.kind
}

// ID returns the owning entity's identifier.
func (o OwnerRef) ID() UUID {
	return o.id
}

// IsEqual compares owner references by kind and identifier.
func (o OwnerRef) IsEqual(other OwnerRef) bool {
	return o.kind == other.kind && o.id.IsEqual(other.id)
}

// String returns "Kind/uuid", used for logs and error messages.
func (o OwnerRef) String() string {
	return fmt.Sprintf("%s/%s", o.kind, o.id)
}

// Validate checks that the reference was created via NewOwnerRef.
func (o OwnerRef) Validate() error {
	if err := o.kind.Validate(); err != nil {
		return err
	}
	return o.id.Validate()
}

// Role is the closed set of caller identities that invoke core operations.
// Role-dependent behavior is expressed through the capability table below
// rather than string comparisons at call sites.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleFactory is the production facility operator.
	RoleFactory

	// RoleDistributor is a regional distributor operator.
	RoleDistributor

	// RoleFranchise is a retail franchise operator.
	RoleFranchise

	// RoleStaff is a back-office operator of the logistics network.
	RoleStaff
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:     "Unknown",
		RoleFactory:     "Factory",
		RoleDistributor: "Distributor",
		RoleFranchise:   "Franchise",
		RoleStaff:       "Staff",
	}
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

// RoleFromString parses a role name. Unrecognized names fail with a
// value-is-invalid error, never a silent fallback.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a recognized role", s))
}

// Validate checks that the role is one of the known roles.
func (r Role) Validate() error {
	switch r {
	case RoleFactory, RoleDistributor, RoleFranchise, RoleStaff:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
}

// CanCreateOrderFor reports whether the role may create orders debiting stock
// owned by the given owner kind. Factory, distributor, and franchise actors
// sell from their own pool; staff may create orders against any pool on
// behalf of an owner.
func (r Role) CanCreateOrderFor(kind OwnerKind) bool {
	caps := map[Role]map[OwnerKind]bool{
		RoleFactory:     {OwnerFactory: true},
		RoleDistributor: {OwnerDistributor: true},
		RoleFranchise:   {OwnerFranchise: true},
		RoleStaff:       {OwnerFactory: true, OwnerDistributor: true, OwnerFranchise: true},
	}
	return caps[r][kind]
}
