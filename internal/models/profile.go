package models

import (
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
)

type BloodGroup string

const (
	BloodAPositive  BloodGroup = "A+"
	BloodANegative  BloodGroup = "A-"
	BloodBPositive  BloodGroup = "B+"
	BloodBNegative  BloodGroup = "B-"
	BloodOPositive  BloodGroup = "O+"
	BloodONegative  BloodGroup = "O-"
	BloodABPositive BloodGroup = "AB+"
	BloodABNegative BloodGroup = "AB-"
)

func (b BloodGroup) Valid() bool {
	switch b {
	case BloodAPositive, BloodANegative, BloodBPositive, BloodBNegative,
		BloodOPositive, BloodONegative, BloodABPositive, BloodABNegative:
		return true
	}
	return false
}

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
	MaritalWidowed  MaritalStatus = "widowed"
)

func (m MaritalStatus) Valid() bool {
	switch m {
	case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		return true
	}
	return false
}

// Profile is the single row this application manages. user_id is the
// authenticated owner's id (Supabase Auth subject) and the primary key.
type Profile struct {
	UserID      string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FirstName   string `gorm:"column:first_name;type:text" json:"first_name"`
	LastName    string `gorm:"column:last_name;type:text" json:"last_name"`
	DateOfBirth string `gorm:"column:date_of_birth;type:date" json:"date_of_birth"` // ISO YYYY-MM-DD
	Country     string `gorm:"column:country;type:text" json:"country"`

	Religion      string        `gorm:"column:religion;type:text" json:"religion"`
	BloodGroup    BloodGroup    `gorm:"column:blood_group;type:text" json:"blood_group"`
	MaritalStatus MaritalStatus `gorm:"column:marital_status;type:text" json:"marital_status"`
	Institution   string        `gorm:"column:institution;type:text" json:"institution"`

	Hobbies pq.StringArray `gorm:"column:hobbies;type:text[]" json:"hobbies"`

	// set from the object store after a successful upload, never user-typed
	AvatarURL string `gorm:"column:avatar_url;type:text" json:"avatar_url"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// ProfileColumns is the versioned column list used for reads; fetching
// "all columns" would let schema changes silently reshape the entity.
var ProfileColumns = []string{
	"user_id", "first_name", "last_name", "date_of_birth", "country",
	"religion", "blood_group", "marital_status", "institution",
	"hobbies", "avatar_url", "updated_at",
}

const dateLayout = "2006-01-02"

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return errors.New("first_name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return errors.New("last_name is required")
	}
	if p.DateOfBirth == "" {
		return errors.New("date_of_birth is required")
	}
	if _, err := time.Parse(dateLayout, p.DateOfBirth); err != nil {
		return errors.New("date_of_birth must be an ISO date (YYYY-MM-DD)")
	}
	if strings.TrimSpace(p.Country) == "" {
		return errors.New("country is required")
	}
	if p.BloodGroup != "" && !p.BloodGroup.Valid() {
		return errors.New("unknown blood group")
	}
	if p.MaritalStatus != "" && !p.MaritalStatus.Valid() {
		return errors.New("unknown marital status")
	}
	return nil
}

// ParseHobbies turns comma-separated input into the ordered hobbies list.
// Segments are trimmed and empty segments dropped, so "" parses to an
// empty list rather than [""].
func ParseHobbies(raw string) pq.StringArray {
	out := pq.StringArray{}
	for _, part := range strings.Split(raw, ",") {
		if h := strings.TrimSpace(part); h != "" {
			out = append(out, h)
		}
	}
	return out
}
