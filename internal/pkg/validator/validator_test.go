package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmployeeID(t *testing.T) {
	valid := []string{"3201010101010001", "EMP-001", "drv_12.a"}
	invalid := []string{"", " ", "a b", "emp/1", "012345678901234567890123456789012"}
	for _, id := range valid {
		if !IsValidEmployeeID(id) {
			t.Errorf("IsValidEmployeeID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidEmployeeID(id) {
			t.Errorf("IsValidEmployeeID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", "", "2023/01/01"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestParseDateIn(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	got, ok := ParseDateIn("2024-06-03", loc)
	if !ok {
		t.Fatalf("ParseDateIn returned !ok")
	}
	if !got.Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, loc)) {
		t.Errorf("ParseDateIn = %v, want local midnight", got)
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"35", "70"}
	if !IsInSlice("70", slice) {
		t.Errorf("IsInSlice(70) = false, want true")
	}
	if IsInSlice("42", slice) {
		t.Errorf("IsInSlice(42) = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "raw", Message: "too long"},
		{Field: "scanner_id", Message: "blank"},
	}
	if got := errs.Error(); got != "raw: too long; scanner_id: blank" {
		t.Errorf("Error() = %q", got)
	}
	m := errs.ToMap()
	if m["raw"] != "too long" || m["scanner_id"] != "blank" {
		t.Errorf("ToMap() = %v", m)
	}
}
