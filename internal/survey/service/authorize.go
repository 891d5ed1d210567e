package service

import "github.com/aussiebroadwan/qasurvey/internal/survey/domain"

// Profile sets derived from the capability switches on domain.Profile.
var (
	AdministrativeProfiles = profilesWhere(domain.Profile.Administrative)
	PrivilegedProfiles     = profilesWhere(domain.Profile.Privileged)
)

func profilesWhere(capable func(domain.Profile) bool) domain.ProfileSet {
	var set domain.ProfileSet
	for _, p := range domain.Profiles {
		if capable(p) {
			set = append(set, p)
		}
	}
	return set
}

// Authorize admits profile if it is one of allowed.
func Authorize(profile domain.Profile, allowed domain.ProfileSet) error {
	if allowed.Contains(profile) {
		return nil
	}
	return &DeniedError{Allowed: allowed}
}
