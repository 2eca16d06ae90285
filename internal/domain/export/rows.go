package export

import (
	"strconv"
	"strings"

	"staffbook/internal/domain/employee"
)

// ColumnCount is the fixed width of every exported row.
const ColumnCount = 15

// Header is the literal first row of every export, in column order.
var Header = []string{
	"Sr. No", "Employee Code", "Name of Employee/Dependent", "DOB", "Age", "Relation", "Gender",
	"Designation", "Contact No.", "Date of Joining",
	"Sum Insured - GMC", "Sum Insured - GPA", "Sum Insured - GTL", "Email ID", "Marital Status",
}

type RowKind int

const (
	RowEmployee RowKind = iota
	RowDependent
	RowBlank
)

// Row is one exported line. Block is the 1-based employee sequence number
// the row belongs to; renderers shade alternate blocks, not alternate
// physical rows.
type Row struct {
	Cells []string
	Kind  RowKind
	Block int
}

// dependentStatuses are the marital statuses for which dependent rows are
// emitted under the employee's primary row.
var dependentStatuses = map[string]bool{
	"married":  true,
	"widowed":  true,
	"divorced": true,
}

// BuildRows expands each employee into its export block: one primary row,
// one row per dependent when the marital status calls for it, then two
// blank separator rows. Records are normalized first so dependent ages are
// always resolved.
func BuildRows(employees []employee.Employee) []Row {
	rows := make([]Row, 0, len(employees)*3)

	for i := range employees {
		emp := &employees[i]
		employee.Normalize(emp)
		block := i + 1

		rows = append(rows, Row{
			Kind:  RowEmployee,
			Block: block,
			Cells: []string{
				strconv.Itoa(block),
				emp.EmployeeID,
				emp.Name,
				FormatDMY(emp.DOB),
				"",
				"Employee",
				emp.Gender,
				emp.Designation,
				emp.Phone,
				FormatDMY(emp.DateOfJoining),
				emp.SumInsuredGMC,
				emp.SumInsuredGPA,
				emp.SumInsuredGTL,
				emp.Email,
				emp.MaritalStatus,
			},
		})

		if dependentStatuses[strings.ToLower(strings.TrimSpace(emp.MaritalStatus))] {
			for _, member := range emp.FamilyMembers {
				rows = append(rows, Row{
					Kind:  RowDependent,
					Block: block,
					Cells: []string{
						"", "",
						member.Name,
						FormatDMY(member.DateOfBirth),
						member.Age,
						member.Relationship,
						member.Gender,
						"", "", "", "", "", "", "", "",
					},
				})
			}
		}

		for i := 0; i < 2; i++ {
			rows = append(rows, Row{Kind: RowBlank, Block: block, Cells: make([]string, ColumnCount)})
		}
	}

	return rows
}
