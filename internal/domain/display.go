package domain

import "strings"

// NameVisibility is everything the display-name policy depends on. It must
// be applied identically everywhere a seeker name is rendered, so that an
// inconsistent view cannot leak a seeker's identity before unlock.
type NameVisibility struct {
	ViewerRole      string
	IsAuthenticated bool
	IsUnlocked      bool
	// HasResumeDetails marks the subject as a gated job-seeker profile.
	// Employer profiles are never anonymized.
	HasResumeDetails bool
}

// DisplayName returns the name to render for a profile. A gated seeker
// profile shows only the first token of the full name until the viewer has
// unlocked it; viewers who are signed out see the truncated form as well.
func DisplayName(fullName, username string, v NameVisibility) string {
	if v.HasResumeDetails && !v.IsUnlocked && (v.ViewerRole == RoleEmployer || !v.IsAuthenticated) {
		fields := strings.Fields(fullName)
		if len(fields) == 0 {
			return username
		}
		return fields[0]
	}
	if fullName != "" {
		return fullName
	}
	return username
}
