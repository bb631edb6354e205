package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Permission is a single capability granted to a user.
type Permission string

// The closed capability vocabulary.
const (
	PermReadFiles     Permission = "read_files"
	PermWriteFiles    Permission = "write_files"
	PermDeleteFiles   Permission = "delete_files"
	PermManageUsers   Permission = "manage_users"
	PermManageSystem  Permission = "manage_system"
	PermViewLogs      Permission = "view_logs"
	PermManageShares  Permission = "manage_shares"
	PermManageBackups Permission = "manage_backups"
)

// AllPermissions lists every known capability in canonical order.
var AllPermissions = []Permission{
	PermReadFiles,
	PermWriteFiles,
	PermDeleteFiles,
	PermManageUsers,
	PermManageSystem,
	PermViewLogs,
	PermManageShares,
	PermManageBackups,
}

// Valid reports whether p belongs to the capability vocabulary.
func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePermission converts a string into a Permission, rejecting unknown values.
func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.TrimSpace(s))
	if !p.Valid() {
		return "", fmt.Errorf("unknown permission %q", s)
	}
	return p, nil
}

// PermissionSet is an unordered set of capabilities.
// It serializes as a sorted JSON array and is stored in that form.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given capabilities.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// DefaultPermissions is the capability set assigned to new accounts.
func DefaultPermissions() PermissionSet {
	return NewPermissionSet(PermReadFiles)
}

// ParsePermissionSet validates every entry of a raw string list.
func ParsePermissionSet(raw []string) (PermissionSet, error) {
	set := make(PermissionSet, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		p, err := ParsePermission(s)
		if err != nil {
			return nil, err
		}
		set[p] = struct{}{}
	}
	return set, nil
}

// Has reports whether the set contains p.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Add inserts p into the set.
func (s PermissionSet) Add(p Permission) {
	s[p] = struct{}{}
}

// Slice returns the members sorted by name.
func (s PermissionSet) Slice() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes an array of capability names, rejecting unknown ones.
func (s *PermissionSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePermissionSet(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer.
func (s PermissionSet) Value() (driver.Value, error) {
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *PermissionSet) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = PermissionSet{}
		return nil
	case string:
		return s.UnmarshalJSON([]byte(v))
	case []byte:
		return s.UnmarshalJSON(v)
	default:
		return fmt.Errorf("cannot scan %T into PermissionSet", src)
	}
}
