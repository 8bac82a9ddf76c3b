package domain_test

import (
	"testing"

	"go-jobreels-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		username string
		v        domain.NameVisibility
		want     string
	}{
		{
			name:     "employer sees gated seeker truncated",
			fullName: "Jane Smith",
			username: "janes",
			v: domain.NameVisibility{
				ViewerRole:       domain.RoleEmployer,
				IsAuthenticated:  true,
				HasResumeDetails: true,
			},
			want: "Jane",
		},
		{
			name:     "employer sees unlocked seeker in full",
			fullName: "Jane Smith",
			username: "janes",
			v: domain.NameVisibility{
				ViewerRole:       domain.RoleEmployer,
				IsAuthenticated:  true,
				IsUnlocked:       true,
				HasResumeDetails: true,
			},
			want: "Jane Smith",
		},
		{
			name:     "anonymous viewer sees gated seeker truncated",
			fullName: "Jane Smith",
			username: "janes",
			v: domain.NameVisibility{
				HasResumeDetails: true,
			},
			want: "Jane",
		},
		{
			name:     "signed-in seeker sees full name",
			fullName: "Jane Smith",
			username: "janes",
			v: domain.NameVisibility{
				ViewerRole:       domain.RoleSeeker,
				IsAuthenticated:  true,
				HasResumeDetails: true,
			},
			want: "Jane Smith",
		},
		{
			name:     "employer profiles are never anonymized",
			fullName: "Acme Corp",
			username: "acme",
			v: domain.NameVisibility{
				ViewerRole:      domain.RoleEmployer,
				IsAuthenticated: true,
			},
			want: "Acme Corp",
		},
		{
			name:     "gated with whitespace-only full name falls back to username",
			fullName: "   ",
			username: "janes",
			v: domain.NameVisibility{
				ViewerRole:       domain.RoleEmployer,
				IsAuthenticated:  true,
				HasResumeDetails: true,
			},
			want: "janes",
		},
		{
			name:     "gated with empty full name falls back to username",
			fullName: "",
			username: "janes",
			v: domain.NameVisibility{
				HasResumeDetails: true,
			},
			want: "janes",
		},
		{
			name:     "ungated with empty full name falls back to username",
			fullName: "",
			username: "janes",
			v:        domain.NameVisibility{IsAuthenticated: true},
			want:     "janes",
		},
		{
			name:     "single-token name is unchanged when gated",
			fullName: "Cher",
			username: "cher1",
			v: domain.NameVisibility{
				HasResumeDetails: true,
			},
			want: "Cher",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DisplayName(tt.fullName, tt.username, tt.v)
			assert.Equal(t, tt.want, got)
		})
	}
}
