package models

import "slices"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Roles is the role set of a user, persisted as a JSON array.
type Roles []Role

// Has reports whether r is part of the set.
func (rs Roles) Has(r Role) bool {
	return slices.Contains(rs, r)
}

// OrDefault never returns an empty set: an empty stored value reads back as USER.
func (rs Roles) OrDefault() Roles {
	if len(rs) == 0 {
		return Roles{RoleUser}
	}
	return rs
}

// Strings converts the set for serialization into token claims and DTOs.
func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
