package models

// VehicleDefaults is the set of values substituted for absent optional fields
// when a vehicle crosses the create/update boundary. Kept as one record so the
// fallback rules live in a single place instead of scattered per-field
// expressions.
type VehicleDefaults struct {
	Owner      string
	StatusFlag string
}

// DefaultVehicle matches what the forms assume when a field is left blank.
var DefaultVehicle = VehicleDefaults{
	Owner:      "unknown owner",
	StatusFlag: StatusUnused,
}

// Apply fills the empty optional fields of v. Numeric fields need no handling:
// an absent JSON number already decodes to 0.
func (d VehicleDefaults) Apply(v *Vehicle) {
	if v.Owner == "" {
		v.Owner = d.Owner
	}
	if v.StatusFlag == "" {
		v.StatusFlag = d.StatusFlag
	}
}
