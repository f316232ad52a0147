package extract

import (
	"testing"

	"github.com/jonathan/profile-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireName(t *testing.T) {
	named := types.NewCandidateProfile(testPageURL)
	named.FirstName = "Jane"

	lastOnly := types.NewCandidateProfile(testPageURL)
	lastOnly.LastName = "Doe"

	unnamed := types.NewCandidateProfile(testPageURL)

	tests := []struct {
		name    string
		profile *types.CandidateProfile
		pageURL string
		host    string
		wantErr bool
	}{
		{name: "name present", profile: &named, pageURL: testPageURL},
		{name: "last name only", profile: &lastOnly, pageURL: testPageURL},
		{name: "no name on host", profile: &unnamed, pageURL: testPageURL, wantErr: true},
		{name: "no name on bare host", profile: &unnamed, pageURL: "https://linkedin.com/in/x", wantErr: true},
		{name: "no name off host", profile: &unnamed, pageURL: "http://localhost:5173/preview"},
		{name: "lookalike host", profile: &unnamed, pageURL: "https://notlinkedin.com/in/x"},
		{name: "custom host", profile: &unnamed, pageURL: "https://profiles.example.org/u/1", host: "example.org", wantErr: true},
		{name: "nil profile on host", profile: nil, pageURL: testPageURL, wantErr: true},
		{name: "unparseable url", profile: &unnamed, pageURL: "://bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireName(tt.profile, tt.pageURL, tt.host)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var nameErr *NameNotFoundError
			require.ErrorAs(t, err, &nameErr)
			assert.Equal(t, tt.pageURL, nameErr.URL)
			assert.Contains(t, err.Error(), "fully loaded")
		})
	}
}

func TestOnHost(t *testing.T) {
	assert.True(t, OnHost("www.LinkedIn.com", "linkedin.com"))
	assert.True(t, OnHost("linkedin.com", ".linkedin.com"))
	assert.False(t, OnHost("linkedin.com.evil.io", "linkedin.com"))
	assert.False(t, OnHost("", "linkedin.com"))
	assert.False(t, OnHost("linkedin.com", ""))
}
