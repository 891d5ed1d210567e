package domain

import (
	"fmt"
	"strings"
)

// Profile is the closed set of account types. The zero value is not a valid
// profile.
type Profile uint8

const (
	ProfileStudent Profile = iota + 1
	ProfileQAProfessional
	ProfileManager
	ProfileRecruiter
	ProfileAdministrator
)

// Profiles lists every valid profile in declaration order.
var Profiles = []Profile{
	ProfileStudent,
	ProfileQAProfessional,
	ProfileManager,
	ProfileRecruiter,
	ProfileAdministrator,
}

var profileNames = map[Profile]string{
	ProfileStudent:        "student",
	ProfileQAProfessional: "qa_professional",
	ProfileManager:        "manager",
	ProfileRecruiter:      "recruiter",
	ProfileAdministrator:  "administrator",
}

// ParseProfile maps the wire name onto a Profile. Names are exact.
func ParseProfile(s string) (Profile, error) {
	for p, name := range profileNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProfile, s)
}

func (p Profile) String() string {
	if name, ok := profileNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Profile(%d)", uint8(p))
}

// Valid reports whether p is one of the declared profiles.
func (p Profile) Valid() bool {
	_, ok := profileNames[p]
	return ok
}

// Privileged profiles see owner ids in listings and may read statistics.
func (p Profile) Privileged() bool {
	switch p {
	case ProfileAdministrator, ProfileManager:
		return true
	case ProfileStudent, ProfileQAProfessional, ProfileRecruiter:
		return false
	default:
		panic(fmt.Sprintf("domain: unknown profile %d", uint8(p)))
	}
}

// Administrative profiles may list and inspect other accounts.
func (p Profile) Administrative() bool {
	switch p {
	case ProfileAdministrator:
		return true
	case ProfileStudent, ProfileQAProfessional, ProfileManager, ProfileRecruiter:
		return false
	default:
		panic(fmt.Sprintf("domain: unknown profile %d", uint8(p)))
	}
}

func (p Profile) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProfile, uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *Profile) UnmarshalText(b []byte) error {
	parsed, err := ParseProfile(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ProfileSet is the list of profiles an operation admits.
type ProfileSet []Profile

// Contains reports whether p is in the set.
func (s ProfileSet) Contains(p Profile) bool {
	for _, q := range s {
		if q == p {
			return true
		}
	}
	return false
}

func (s ProfileSet) String() string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}

// ProfileNames returns the wire names of every profile, for messages.
func ProfileNames() []string {
	names := make([]string, len(Profiles))
	for i, p := range Profiles {
		names[i] = p.String()
	}
	return names
}
