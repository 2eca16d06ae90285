package employee

import "time"

// Normalize projects the flat family_members list into the Spouse, Children
// and Parents views and back-fills any blank dependent age from its date of
// birth. It mutates only the in-memory record; the projection is recomputed
// on every read and never persisted. Safe to call repeatedly.
func Normalize(emp *Employee) *Employee {
	return normalizeAt(emp, time.Now())
}

func normalizeAt(emp *Employee, today time.Time) *Employee {
	emp.Spouse = FamilyMember{}
	emp.Children = []FamilyMember{}
	emp.Parents = []FamilyMember{}

	for _, member := range emp.FamilyMembers {
		age := member.Age
		if age == "" && member.DateOfBirth != "" {
			age = AgeAt(member.DateOfBirth, today)
		}
		switch member.Relationship {
		case RelationSpouse:
			emp.Spouse = FamilyMember{
				Relationship: RelationSpouse,
				Name:         member.Name,
				DateOfBirth:  member.DateOfBirth,
				Phone:        member.Phone,
				Gender:       member.Gender,
				Age:          age,
			}
		case RelationChild:
			emp.Children = append(emp.Children, FamilyMember{
				Relationship: RelationChild,
				Name:         member.Name,
				DateOfBirth:  member.DateOfBirth,
				Phone:        member.Phone,
				Gender:       member.Gender,
				Age:          age,
			})
		case RelationMother, RelationFather:
			emp.Parents = append(emp.Parents, FamilyMember{
				Relationship: member.Relationship,
				Name:         member.Name,
				DateOfBirth:  member.DateOfBirth,
				Age:          age,
			})
		}
	}

	for i := range emp.FamilyMembers {
		member := &emp.FamilyMembers[i]
		if member.Age == "" && member.DateOfBirth != "" {
			member.Age = AgeAt(member.DateOfBirth, today)
		}
	}
	return emp
}
