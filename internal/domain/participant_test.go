package domain

import (
	"errors"
	"testing"
)

func TestValidateName(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"trims whitespace", "  Alice  ", "Alice", nil},
		{"empty after trim", "   ", "", ErrNameEmpty},
		{"allows apostrophe period hyphen", "O'Brien-Smith Jr.", "O'Brien-Smith Jr.", nil},
		{"rejects control characters", "Alice\n", "", ErrNameInvalid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ValidateName(c.in)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("err = %v, want %v", err, c.wantErr)
			}
			if err == nil && got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestValidateNameTooLongExactBoundary(t *testing.T) {
	exactly30 := "123456789012345678901234567890"
	if _, err := ValidateName(exactly30); err != nil {
		t.Fatalf("30 chars should be accepted: %v", err)
	}
	if _, err := ValidateName(exactly30 + "1"); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("31 chars should be rejected with ErrNameTooLong, got %v", err)
	}
}

func TestSameNameIsCaseInsensitive(t *testing.T) {
	if !SameName("Alice", "aLICE") {
		t.Fatal("want case-insensitive match")
	}
	if SameName("Alice", "Bob") {
		t.Fatal("want distinct names to differ")
	}
}
