package view

import (
	"testing"

	"github.com/lib/pq"

	"github.com/okembo/profilehub/internal/models"
)

func TestRenderNilProfileIsLoading(t *testing.T) {
	v := Render(nil)
	if !v.Loading {
		t.Fatal("expected loading view for nil profile")
	}
	if v.FullName != "" {
		t.Fatalf("loading view should not carry fields, got %q", v.FullName)
	}
}

func TestRenderFallbacks(t *testing.T) {
	v := Render(&models.Profile{
		UserID:      "u-1",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: "1815-12-10",
		Country:     "UK",
	})

	if v.Loading {
		t.Fatal("unexpected loading state")
	}
	if v.FullName != "Ada Lovelace" {
		t.Fatalf("expected full name, got %q", v.FullName)
	}
	if v.DateOfBirth != "10 December 1815" {
		t.Fatalf("expected formatted dob, got %q", v.DateOfBirth)
	}
	for name, got := range map[string]string{
		"religion":       v.Religion,
		"blood_group":    v.BloodGroup,
		"marital_status": v.MaritalStatus,
		"institution":    v.Institution,
	} {
		if got != NotSpecified {
			t.Errorf("%s: expected %q got %q", name, NotSpecified, got)
		}
	}
	if v.HobbiesNote != NoHobbiesSpecified {
		t.Fatalf("expected hobbies fallback, got %q", v.HobbiesNote)
	}
}

func TestRenderHobbiesList(t *testing.T) {
	v := Render(&models.Profile{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: "1815-12-10",
		Country:     "UK",
		Hobbies:     pq.StringArray{"chess", "reading"},
	})

	if v.HobbiesNote != "" {
		t.Fatalf("unexpected fallback with hobbies present: %q", v.HobbiesNote)
	}
	if len(v.Hobbies) != 2 || v.Hobbies[0] != "chess" || v.Hobbies[1] != "reading" {
		t.Fatalf("expected ordered hobbies, got %v", v.Hobbies)
	}
}

func TestRenderHobbiesAllEmptyEntries(t *testing.T) {
	// a legacy row can hold [""] from a naive comma split of empty input;
	// only meaningful entries count
	v := Render(&models.Profile{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: "1815-12-10",
		Country:     "UK",
		Hobbies:     pq.StringArray{"", "  "},
	})

	if len(v.Hobbies) != 0 {
		t.Fatalf("expected no rendered hobbies, got %v", v.Hobbies)
	}
	if v.HobbiesNote != NoHobbiesSpecified {
		t.Fatalf("expected hobbies fallback, got %q", v.HobbiesNote)
	}
}

func TestRenderPassesThroughFilledFields(t *testing.T) {
	v := Render(&models.Profile{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		DateOfBirth:   "1815-12-10",
		Country:       "UK",
		Religion:      "none",
		BloodGroup:    models.BloodOPositive,
		MaritalStatus: models.MaritalSingle,
		Institution:   "University of London",
		AvatarURL:     "https://storage.googleapis.com/avatars/u-1/avatar.png",
	})

	if v.Religion != "none" || v.BloodGroup != "O+" || v.MaritalStatus != "single" {
		t.Fatalf("fields not passed through: %+v", v)
	}
	if v.Institution != "University of London" {
		t.Fatalf("institution not passed through: %q", v.Institution)
	}
	if v.AvatarURL == "" {
		t.Fatal("avatar url dropped")
	}
}

func TestRenderBadDateFallsBackToRaw(t *testing.T) {
	v := Render(&models.Profile{FirstName: "A", LastName: "B", DateOfBirth: "not-a-date", Country: "UK"})
	if v.DateOfBirth != "not-a-date" {
		t.Fatalf("expected raw value for unparseable date, got %q", v.DateOfBirth)
	}
}
