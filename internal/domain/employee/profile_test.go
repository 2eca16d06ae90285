package employee

import (
	"errors"
	"testing"
)

func validMarriedSubmission() ProfileSubmission {
	return ProfileSubmission{
		EmployeeID:    "EMP001",
		Name:          "Ramesh",
		Phone:         "9876543210",
		Email:         "ramesh@example.com",
		Gender:        "Male",
		DOB:           "1988-02-14",
		MaritalStatus: "married",
		SpouseName:    "Asha",
		SpouseDOB:     "1990-05-20",
		SpouseGender:  "Female",
	}
}

func TestValidateIdentity(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProfileSubmission)
		wantErr string
	}{
		{"valid", func(sub *ProfileSubmission) {}, ""},
		{"nine digit phone", func(sub *ProfileSubmission) { sub.Phone = "987654321" }, "Phone number must be exactly 10 digits."},
		{"eleven digit phone", func(sub *ProfileSubmission) { sub.Phone = "98765432100" }, "Phone number must be exactly 10 digits."},
		{"phone with letters", func(sub *ProfileSubmission) { sub.Phone = "98765x3210" }, "Phone number must be exactly 10 digits."},
		{"bad email", func(sub *ProfileSubmission) { sub.Email = "not-an-email" }, "Invalid email format."},
		{"email missing tld", func(sub *ProfileSubmission) { sub.Email = "a@b" }, "Invalid email format."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sub := validMarriedSubmission()
			tc.mutate(&sub)
			err := ValidateIdentity(sub)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("got %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestBuildFamilyMarriedRequiresSpouse(t *testing.T) {
	sub := validMarriedSubmission()
	sub.SpouseName = ""

	_, err := BuildFamily(sub)
	if err == nil || err.Error() != "All spouse details are required for married employees." {
		t.Fatalf("got %v", err)
	}
}

func TestBuildFamilySingleSkipsDependents(t *testing.T) {
	sub := validMarriedSubmission()
	sub.MaritalStatus = "single"
	sub.TotalChildren = "2"
	sub.Children = []ChildSubmission{
		{Name: "Ravi", DateOfBirth: "2020-01-05", Gender: "Male"},
		{Name: "Mira", DateOfBirth: "2022-03-09", Gender: "Female"},
	}

	family, err := BuildFamily(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(family) != 0 {
		t.Fatalf("expected no dependents for single status, got %d", len(family))
	}
}

func TestBuildFamilyRejectsDuplicateChildNames(t *testing.T) {
	sub := validMarriedSubmission()
	sub.TotalChildren = "2"
	sub.Children = []ChildSubmission{
		{Name: "Ravi", DateOfBirth: "2020-01-05", Gender: "Male"},
		{Name: "ravi", DateOfBirth: "2022-03-09", Gender: "Male"},
	}

	_, err := BuildFamily(sub)
	if err == nil || err.Error() != "Duplicate family member name 'ravi' is not allowed." {
		t.Fatalf("got %v", err)
	}
}

func TestBuildFamilyRejectsDuplicateChildPhones(t *testing.T) {
	sub := validMarriedSubmission()
	sub.TotalChildren = "2"
	sub.Children = []ChildSubmission{
		{Name: "Ravi", DateOfBirth: "2020-01-05", Phone: "9999999999", Gender: "Male"},
		{Name: "Mira", DateOfBirth: "2022-03-09", Phone: "9999999999", Gender: "Female"},
	}

	_, err := BuildFamily(sub)
	if err == nil || err.Error() != "Duplicate phone '9999999999' among family members." {
		t.Fatalf("got %v", err)
	}
}

func TestBuildFamilyRejectsIncompleteChild(t *testing.T) {
	sub := validMarriedSubmission()
	sub.MaritalStatus = "divorced/widowed"
	sub.SpouseName = ""
	sub.TotalChildren = "1"
	sub.Children = []ChildSubmission{{Name: "Ravi", DateOfBirth: "", Gender: "Male"}}

	_, err := BuildFamily(sub)
	if err == nil || err.Error() != "All fields for child 1 are required." {
		t.Fatalf("got %v", err)
	}
}

func TestBuildFamilyRejectsDuplicateParentRelationship(t *testing.T) {
	sub := validMarriedSubmission()
	sub.TotalParents = "2"
	sub.Parents = []ParentSubmission{
		{Relationship: "Mother", Name: "Lakshmi", DateOfBirth: "1965-02-20"},
		{Relationship: "Mother", Name: "Devi", DateOfBirth: "1966-07-11"},
	}

	_, err := BuildFamily(sub)
	if err == nil || err.Error() != "Duplicate parent relationship 'Mother' is not allowed." {
		t.Fatalf("got %v", err)
	}
}

func TestBuildFamilyAcceptsAnyParentLabel(t *testing.T) {
	sub := validMarriedSubmission()
	sub.TotalParents = "1"
	sub.Parents = []ParentSubmission{
		{Relationship: "Guardian", Name: "Uncle", DateOfBirth: "1970-01-01"},
	}

	family, err := BuildFamily(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := family[len(family)-1]
	if last.Relationship != "Guardian" || last.Name != "Uncle" {
		t.Fatalf("parent label not stored as submitted: %+v", last)
	}
}

func TestBuildFamilyNonNumericCountsTreatedAsZero(t *testing.T) {
	sub := validMarriedSubmission()
	sub.TotalChildren = "many"
	sub.Children = []ChildSubmission{{Name: "Ravi", DateOfBirth: "2020-01-05", Gender: "Male"}}
	sub.TotalParents = "-3"

	family, err := BuildFamily(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(family) != 1 {
		t.Fatalf("expected spouse only, got %d members", len(family))
	}
	if family[0].Relationship != RelationSpouse {
		t.Fatalf("unexpected member: %+v", family[0])
	}
}

func TestBuildFamilyOrderAndAges(t *testing.T) {
	sub := validMarriedSubmission()
	sub.TotalChildren = "1"
	sub.Children = []ChildSubmission{{Name: "Ravi", DateOfBirth: "2020-01-05", Gender: "Male"}}
	sub.TotalParents = "1"
	sub.Parents = []ParentSubmission{{Relationship: "Father", Name: "Mohan", Age: "66 years"}}

	family, err := BuildFamily(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(family) != 3 {
		t.Fatalf("expected spouse, child, parent; got %d", len(family))
	}
	if family[0].Relationship != RelationSpouse || family[1].Relationship != RelationChild || family[2].Relationship != "Father" {
		t.Fatalf("unexpected order: %+v", family)
	}
	if family[0].Age == "" || family[1].Age == "" {
		t.Fatal("expected derived ages for spouse and child")
	}
	if family[2].Age != "66 years" {
		t.Fatalf("submitted parent age not honored: %q", family[2].Age)
	}
}

func TestValidationErrorIsMatchable(t *testing.T) {
	_, err := BuildFamily(ProfileSubmission{MaritalStatus: "married"})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}
