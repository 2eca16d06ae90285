package employee

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaritalMarried         = "married"
	MaritalDivorcedWidowed = "divorced/widowed"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// ProfileSubmission carries one profile-completion form. TotalChildren and
// TotalParents are the declared counts as submitted; non-numeric values are
// treated as zero.
type ProfileSubmission struct {
	EmployeeID    string `json:"employeeId"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Designation   string `json:"designation"`
	Department    string `json:"department"`
	Gender        string `json:"gender"`
	DOB           string `json:"dob"`
	MaritalStatus string `json:"maritalStatus"`
	DateOfJoining string `json:"dateOfJoining"`
	SumInsuredGMC string `json:"sumInsuredGMC"`
	SumInsuredGPA string `json:"sumInsuredGPA"`
	SumInsuredGTL string `json:"sumInsuredGTL"`

	SpouseName   string `json:"spouseName"`
	SpouseDOB    string `json:"spouseDob"`
	SpouseGender string `json:"spouseGender"`

	TotalChildren string            `json:"totalChildren"`
	Children      []ChildSubmission `json:"children"`

	TotalParents string             `json:"totalParents"`
	Parents      []ParentSubmission `json:"parents"`
}

type ChildSubmission struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender"`
}

type ParentSubmission struct {
	Relationship string `json:"relationship"`
	Name         string `json:"name"`
	DateOfBirth  string `json:"dateOfBirth"`
	Age          string `json:"age"`
}

// ValidationError is a user-facing rejection of a profile submission. Only
// the first rule violated is ever reported; nothing is written on rejection.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ValidateIdentity checks the identifying fields of a submission in form
// order. Employee ID uniqueness is a store concern handled by the service
// layer between the ID presence check and these field checks.
func ValidateIdentity(sub ProfileSubmission) error {
	if !isDigits(sub.Phone) || len(sub.Phone) != 10 {
		return invalid("Phone number must be exactly 10 digits.")
	}
	if !emailPattern.MatchString(strings.TrimSpace(sub.Email)) {
		return invalid("Invalid email format.")
	}
	return nil
}

// BuildFamily validates the dependent section of a submission and assembles
// the replacement family_members list: the spouse (married only), then the
// declared children (married or divorced/widowed only), then the declared
// parents. Duplicate names are rejected case-insensitively across the whole
// set, duplicate non-empty phones across children, and duplicate
// relationship labels across parents.
func BuildFamily(sub ProfileSubmission) ([]FamilyMember, error) {
	family := []FamilyMember{}
	names := map[string]bool{}
	phones := map[string]bool{}

	if sub.MaritalStatus == MaritalMarried {
		name := strings.TrimSpace(sub.SpouseName)
		if name == "" || sub.SpouseDOB == "" || sub.SpouseGender == "" {
			return nil, invalid("All spouse details are required for married employees.")
		}
		names[strings.ToLower(name)] = true
		family = append(family, FamilyMember{
			Relationship: RelationSpouse,
			Name:         name,
			DateOfBirth:  sub.SpouseDOB,
			Gender:       sub.SpouseGender,
			Age:          Age(sub.SpouseDOB),
		})
	}

	if sub.MaritalStatus == MaritalMarried || sub.MaritalStatus == MaritalDivorcedWidowed {
		for i := 0; i < declaredCount(sub.TotalChildren); i++ {
			var child ChildSubmission
			if i < len(sub.Children) {
				child = sub.Children[i]
			}
			name := strings.TrimSpace(child.Name)
			phone := strings.TrimSpace(child.Phone)
			if name == "" || child.DateOfBirth == "" || child.Gender == "" {
				return nil, invalid("All fields for child %d are required.", i+1)
			}
			lower := strings.ToLower(name)
			if names[lower] {
				return nil, invalid("Duplicate family member name '%s' is not allowed.", name)
			}
			if phone != "" && phones[phone] {
				return nil, invalid("Duplicate phone '%s' among family members.", phone)
			}
			names[lower] = true
			if phone != "" {
				phones[phone] = true
			}
			family = append(family, FamilyMember{
				Relationship: RelationChild,
				Name:         name,
				DateOfBirth:  child.DateOfBirth,
				Phone:        phone,
				Gender:       child.Gender,
				Age:          Age(child.DateOfBirth),
			})
		}
	}

	seenRelations := map[string]bool{}
	for i := 0; i < declaredCount(sub.TotalParents); i++ {
		var parent ParentSubmission
		if i < len(sub.Parents) {
			parent = sub.Parents[i]
		}
		name := strings.TrimSpace(parent.Name)
		if seenRelations[parent.Relationship] {
			return nil, invalid("Duplicate parent relationship '%s' is not allowed.", parent.Relationship)
		}
		if names[strings.ToLower(name)] {
			return nil, invalid("Duplicate parent name '%s' is not allowed.", name)
		}
		seenRelations[parent.Relationship] = true
		names[strings.ToLower(name)] = true
		age := parent.Age
		if age == "" && parent.DateOfBirth != "" {
			age = Age(parent.DateOfBirth)
		}
		family = append(family, FamilyMember{
			Relationship: parent.Relationship,
			Name:         name,
			DateOfBirth:  parent.DateOfBirth,
			Age:          age,
		})
	}

	return family, nil
}

// declaredCount parses a submitted count, treating anything non-numeric as
// zero rather than rejecting the submission.
func declaredCount(raw string) int {
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || count < 0 {
		return 0
	}
	return count
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
