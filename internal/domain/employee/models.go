package employee

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	RelationSpouse = "Spouse"
	RelationChild  = "Child"
	RelationMother = "Mother"
	RelationFather = "Father"
)

// FamilyMember is one dependent sub-record inside an employee document.
// Age is derived from DateOfBirth and back-filled during normalization when
// blank; Phone is only ever set for children.
type FamilyMember struct {
	Relationship string `bson:"relationship" json:"relationship"`
	Name         string `bson:"name" json:"name"`
	DateOfBirth  string `bson:"date_of_birth" json:"dateOfBirth"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender       string `bson:"gender,omitempty" json:"gender,omitempty"`
	Age          string `bson:"age,omitempty" json:"age,omitempty"`
}

// Employee is the single durable document. Spouse, Children and Parents are
// read-side projections computed by Normalize and never written back.
type Employee struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID       string             `bson:"employee_id,omitempty" json:"employeeId"`
	Name             string             `bson:"name" json:"name"`
	Phone            string             `bson:"phone" json:"phone"`
	Password         string             `bson:"password" json:"-"`
	Role             string             `bson:"role,omitempty" json:"role"`
	DetailsCompleted bool               `bson:"details_completed" json:"detailsCompleted"`

	Designation   string `bson:"designation,omitempty" json:"designation"`
	Department    string `bson:"department,omitempty" json:"department"`
	Gender        string `bson:"gender,omitempty" json:"gender"`
	DOB           string `bson:"dob,omitempty" json:"dob"`
	Email         string `bson:"email,omitempty" json:"email"`
	MaritalStatus string `bson:"marital_status,omitempty" json:"maritalStatus"`
	DateOfJoining string `bson:"date_of_joining,omitempty" json:"dateOfJoining"`
	SumInsuredGMC string `bson:"sum_insured_gmc,omitempty" json:"sumInsuredGMC"`
	SumInsuredGPA string `bson:"sum_insured_gpa,omitempty" json:"sumInsuredGPA"`
	SumInsuredGTL string `bson:"sum_insured_gtl,omitempty" json:"sumInsuredGTL"`

	FamilyMembers []FamilyMember `bson:"family_members,omitempty" json:"familyMembers"`

	Spouse   FamilyMember   `bson:"-" json:"spouse"`
	Children []FamilyMember `bson:"-" json:"children"`
	Parents  []FamilyMember `bson:"-" json:"parents"`
}
