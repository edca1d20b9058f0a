package model_test

import (
	"testing"

	"github.com/goliatone/go-rulegen/pkg/model"
)

func TestSanitizeDecorator_StripsMarkup(t *testing.T) {
	doc := validDocument()
	doc.Role = "<b>You review</b> Go error handling."
	doc.Goal = "No <script>alert('x')</script> surprises."
	doc.Examples[0].Title = "Wrapping <em>errors</em>"
	doc.Safeguards = []string{"Never <i>silently</i> discard an error."}

	if err := model.NewSanitizeDecorator().Decorate(&doc); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	cases := []struct {
		got  string
		want string
	}{
		{doc.Role, "You review Go error handling."},
		{doc.Goal, "No  surprises."},
		{doc.Examples[0].Title, "Wrapping errors"},
		{doc.Safeguards[0], "Never silently discard an error."},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("sanitized %q, want %q", tc.got, tc.want)
		}
	}
}

func TestSanitizeDecorator_LeavesPlainTextAlone(t *testing.T) {
	doc := validDocument()
	doc.Role = "Ensure a < b comparisons are safe."
	doc.Goal = "Plain prose with no markup."
	original := doc.Examples[0].Snippets[0].Code

	if err := model.NewSanitizeDecorator().Decorate(&doc); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	if doc.Role != "Ensure a < b comparisons are safe." {
		t.Fatalf("innocent comparison mangled: %q", doc.Role)
	}
	if doc.Goal != "Plain prose with no markup." {
		t.Fatalf("plain text changed: %q", doc.Goal)
	}
	if doc.Examples[0].Snippets[0].Code != original {
		t.Fatal("snippet code must never be sanitized")
	}
}

func TestSanitizeDecorator_NilDocument(t *testing.T) {
	if err := model.NewSanitizeDecorator().Decorate(nil); err != nil {
		t.Fatalf("decorate(nil): %v", err)
	}
}
