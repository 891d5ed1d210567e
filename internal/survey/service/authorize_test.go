package service

import (
	"testing"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/stretchr/testify/require"
)

func TestProfileSets(t *testing.T) {
	require.Equal(t, domain.ProfileSet{domain.ProfileAdministrator}, AdministrativeProfiles)
	require.Equal(t, domain.ProfileSet{domain.ProfileManager, domain.ProfileAdministrator}, PrivilegedProfiles)
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		profile domain.Profile
		allowed domain.ProfileSet
		ok      bool
	}{
		{domain.ProfileAdministrator, AdministrativeProfiles, true},
		{domain.ProfileManager, AdministrativeProfiles, false},
		{domain.ProfileManager, PrivilegedProfiles, true},
		{domain.ProfileAdministrator, PrivilegedProfiles, true},
		{domain.ProfileStudent, PrivilegedProfiles, false},
		{domain.ProfileQAProfessional, PrivilegedProfiles, false},
		{domain.ProfileRecruiter, PrivilegedProfiles, false},
		{domain.ProfileRecruiter, domain.ProfileSet{domain.ProfileRecruiter}, true},
	}

	for _, tt := range tests {
		t.Run(tt.profile.String(), func(t *testing.T) {
			err := Authorize(tt.profile, tt.allowed)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrDenied)

			var derr *DeniedError
			require.ErrorAs(t, err, &derr)
			require.Equal(t, tt.allowed, derr.Allowed)
		})
	}

	err := Authorize(domain.ProfileStudent, PrivilegedProfiles)
	require.EqualError(t, err, "access denied, allowed profiles: manager, administrator")
}
