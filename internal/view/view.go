package view

import (
	"strings"
	"time"

	"github.com/okembo/profilehub/internal/models"
)

const (
	NotSpecified       = "Not specified"
	NoHobbiesSpecified = "No hobbies specified"
)

// ProfileView is the read-only rendering of a profile. Optional fields
// carry the literal fallback label when absent.
type ProfileView struct {
	Loading bool `json:"loading"`

	FullName      string   `json:"full_name,omitempty"`
	DateOfBirth   string   `json:"date_of_birth,omitempty"`
	Country       string   `json:"country,omitempty"`
	Religion      string   `json:"religion,omitempty"`
	BloodGroup    string   `json:"blood_group,omitempty"`
	MaritalStatus string   `json:"marital_status,omitempty"`
	Institution   string   `json:"institution,omitempty"`
	Hobbies       []string `json:"hobbies,omitempty"`
	HobbiesNote   string   `json:"hobbies_note,omitempty"`
	AvatarURL     string   `json:"avatar_url,omitempty"`
}

// Render produces the read-only view. A nil profile renders as the
// loading state rather than a partially-filled view.
func Render(p *models.Profile) ProfileView {
	if p == nil {
		return ProfileView{Loading: true}
	}

	v := ProfileView{
		FullName:      strings.TrimSpace(p.FirstName + " " + p.LastName),
		DateOfBirth:   formatDate(p.DateOfBirth),
		Country:       orNotSpecified(p.Country),
		Religion:      orNotSpecified(p.Religion),
		BloodGroup:    orNotSpecified(string(p.BloodGroup)),
		MaritalStatus: orNotSpecified(string(p.MaritalStatus)),
		Institution:   orNotSpecified(p.Institution),
		AvatarURL:     p.AvatarURL,
	}

	// only non-empty entries count; a legacy row holding [""] still
	// renders the fallback
	for _, h := range p.Hobbies {
		if strings.TrimSpace(h) != "" {
			v.Hobbies = append(v.Hobbies, h)
		}
	}
	if len(v.Hobbies) == 0 {
		v.HobbiesNote = NoHobbiesSpecified
	}
	return v
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotSpecified
	}
	return s
}

func formatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("2 January 2006")
}
