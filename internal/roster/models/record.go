package models

import (
	"strings"
	"time"

	id "rosterd/pkg/domain"
	dErrors "rosterd/pkg/domain-errors"
)

// Department is the fixed set of organizational units a record can belong to.
type Department string

const (
	DepartmentIT         Department = "IT"
	DepartmentHR         Department = "HR"
	DepartmentFinance    Department = "Finance"
	DepartmentMarketing  Department = "Marketing"
	DepartmentOperations Department = "Operations"
)

var departments = map[Department]struct{}{
	DepartmentIT:         {},
	DepartmentHR:         {},
	DepartmentFinance:    {},
	DepartmentMarketing:  {},
	DepartmentOperations: {},
}

// ParseDepartment validates a raw department value against the enum.
func ParseDepartment(raw string) (Department, error) {
	d := Department(raw)
	if _, ok := departments[d]; !ok {
		return "", dErrors.New(dErrors.CodeValidation, "department must be one of IT, HR, Finance, Marketing, Operations")
	}
	return d, nil
}

// Record is a mutable employee record. Identity is stable across updates.
// Creator is a weak reference: clearing it never cascades into deleting the
// record.
type Record struct {
	ID         id.RecordID `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Department Department  `json:"department"`
	// CreatorID is nil when the creating user has since been removed.
	CreatorID *id.UserID `json:"creator_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Fields are the mutable parts of a Record, validated as a unit.
type Fields struct {
	Name       string
	Email      string
	Department Department
}

// NewFields validates the submitted values and normalizes whitespace.
// All three fields are required.
func NewFields(name, email, department string) (Fields, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || department == "" {
		return Fields{}, dErrors.New(dErrors.CodeValidation, "name, email and department are required")
	}
	dept, err := ParseDepartment(department)
	if err != nil {
		return Fields{}, err
	}
	return Fields{Name: name, Email: email, Department: dept}, nil
}
