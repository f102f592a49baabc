package organ

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateDonor(t *testing.T) {
	valid := Donor{Name: "D1", Age: 30, BloodType: ONeg, Hospital: "H1"}
	if err := ValidateDonor(valid); err != nil {
		t.Fatalf("valid donor rejected: %v", err)
	}

	cases := map[string]Donor{
		"name":       {Name: "", Age: 30, BloodType: ONeg, Hospital: "H1"},
		"age":        {Name: "D1", Age: 121, BloodType: ONeg, Hospital: "H1"},
		"blood_type": {Name: "D1", Age: 30, BloodType: "Z+", Hospital: "H1"},
		"hospital":   {Name: "D1", Age: 30, BloodType: ONeg, Hospital: strings.Repeat("h", 101)},
	}
	for field, d := range cases {
		err := ValidateDonor(d)
		var verr ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", field, err)
		}
		if _, ok := verr[field]; !ok || len(verr) != 1 {
			t.Fatalf("%s: expected only %s to be rejected, got %v", field, field, verr)
		}
	}
}

func TestValidateRecipient(t *testing.T) {
	valid := Recipient{Name: "R1", Age: 0, BloodType: ABNeg, Urgency: "high"}
	if err := ValidateRecipient(valid); err != nil {
		t.Fatalf("valid recipient rejected: %v", err)
	}

	err := ValidateRecipient(Recipient{Name: "  ", Age: -1, BloodType: "", Urgency: strings.Repeat("u", 201)})
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "age", "blood_type", "medical_urgency"} {
		if _, ok := verr[field]; !ok {
			t.Fatalf("expected %s to be rejected, got %v", field, verr)
		}
	}
	if !strings.HasPrefix(verr.Error(), "invalid record: age:") {
		t.Fatalf("fields should be reported in sorted order: %s", verr.Error())
	}
}

func TestBloodTypeValid(t *testing.T) {
	for _, b := range BloodTypes {
		if !b.Valid() {
			t.Fatalf("%s should be valid", b)
		}
	}
	for _, b := range []BloodType{"", "a+", "O", "AB"} {
		if b.Valid() {
			t.Fatalf("%q should be invalid", b)
		}
	}
}

func TestNewRecordID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRecordID()
		if len(id) != 32 {
			t.Fatalf("expected 32 hex characters, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
