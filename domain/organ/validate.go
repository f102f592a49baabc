package organ

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLen     = 100
	maxHospitalLen = 100
	maxUrgencyLen  = 200
	maxAge         = 120
)

// ValidationError maps each rejected field to a message.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = f + ": " + v[f]
	}
	return "invalid record: " + strings.Join(msgs, "; ")
}

// ValidateDonor checks the fields a hospital submits for a donor.
func ValidateDonor(d Donor) error {
	errs := ValidationError{}
	checkText(errs, "name", d.Name, maxNameLen)
	checkAge(errs, d.Age)
	checkBloodType(errs, d.BloodType)
	checkText(errs, "hospital", d.Hospital, maxHospitalLen)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateRecipient checks the fields submitted for a recipient.
func ValidateRecipient(r Recipient) error {
	errs := ValidationError{}
	checkText(errs, "name", r.Name, maxNameLen)
	checkAge(errs, r.Age)
	checkBloodType(errs, r.BloodType)
	checkText(errs, "medical_urgency", r.Urgency, maxUrgencyLen)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkText(errs ValidationError, field, value string, max int) {
	if n := utf8.RuneCountInString(strings.TrimSpace(value)); n == 0 || n > max {
		errs[field] = fmt.Sprintf("must be between 1 and %d characters", max)
	}
}

func checkAge(errs ValidationError, age int) {
	if age < 0 || age > maxAge {
		errs["age"] = fmt.Sprintf("must be between 0 and %d", maxAge)
	}
}

func checkBloodType(errs ValidationError, b BloodType) {
	if !b.Valid() {
		names := make([]string, len(BloodTypes))
		for i, t := range BloodTypes {
			names[i] = string(t)
		}
		errs["blood_type"] = "must be one of: " + strings.Join(names, ", ")
	}
}
