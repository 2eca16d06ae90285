package employee

import (
	"context"
	"errors"
	"strings"

	"staffbook/internal/domain/auth"
)

var (
	// ErrInvalidCredentials covers every login failure; callers report it
	// generically without saying which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProfileLocked marks a self-service resubmission after the profile
	// was completed. Only an administrator may edit from then on.
	ErrProfileLocked = errors.New("profile already submitted")
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Register creates the minimal record for a self-service signup. The full
// profile is filled in later through CompleteProfile.
func (s *Service) Register(ctx context.Context, name, phone, password string) (*Employee, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" || password == "" {
		return nil, invalid("All fields are required.")
	}
	if !isDigits(phone) || len(phone) != 10 {
		return nil, invalid("Mobile number must be exactly 10 digits.")
	}

	exists, err := s.Store.PhoneExists(ctx, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, invalid("An account with this phone already exists.")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	emp := Employee{
		Name:             name,
		Phone:            phone,
		Password:         hash,
		Role:             RoleUser,
		DetailsCompleted: false,
	}
	id, err := s.Store.Insert(ctx, emp)
	if err != nil {
		return nil, err
	}
	emp.ID = id
	return &emp, nil
}

func (s *Service) LoginAdmin(ctx context.Context, password string) (*Employee, error) {
	admin, err := s.Store.FindAdmin(ctx)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(admin.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

func (s *Service) LoginUser(ctx context.Context, identifier, password string) (*Employee, error) {
	if !isDigits(identifier) || len(identifier) != 10 {
		return nil, invalid("Mobile number must be exactly 10 digits.")
	}
	emp, err := s.Store.FindByPhone(ctx, identifier)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(emp.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return emp, nil
}

// CompleteProfile validates and persists one profile submission against the
// loaded target record. Checks run in submission order and the first
// violation aborts with nothing written. selfService submissions flip
// details_completed permanently; admin edits leave the flag untouched.
//
// The uniqueness checks and the final write are separate store calls; two
// racing submissions are resolved by the collection as last-writer-wins.
func (s *Service) CompleteProfile(ctx context.Context, target *Employee, sub ProfileSubmission, selfService bool) (*Employee, error) {
	if selfService && target.DetailsCompleted {
		return nil, ErrProfileLocked
	}

	employeeID := strings.TrimSpace(sub.EmployeeID)
	if employeeID == "" {
		return nil, invalid("Employee ID is required.")
	}
	taken, err := s.Store.EmployeeIDTaken(ctx, employeeID, target.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, invalid("Employee ID already exists.")
	}

	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Email = strings.TrimSpace(sub.Email)
	if err := ValidateIdentity(sub); err != nil {
		return nil, err
	}

	family, err := BuildFamily(sub)
	if err != nil {
		return nil, err
	}

	updated := *target
	updated.EmployeeID = employeeID
	updated.Name = strings.TrimSpace(sub.Name)
	updated.Phone = sub.Phone
	updated.Email = sub.Email
	updated.Designation = sub.Designation
	updated.Department = sub.Department
	updated.Gender = sub.Gender
	updated.DOB = sub.DOB
	updated.MaritalStatus = sub.MaritalStatus
	updated.DateOfJoining = sub.DateOfJoining
	updated.SumInsuredGMC = sub.SumInsuredGMC
	updated.SumInsuredGPA = sub.SumInsuredGPA
	updated.SumInsuredGTL = sub.SumInsuredGTL
	updated.FamilyMembers = family
	if selfService {
		updated.DetailsCompleted = true
	}

	if err := s.Store.UpdateProfile(ctx, target.ID, updated, selfService); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Directory lists non-admin records for the admin view, normalized for
// display.
func (s *Service) Directory(ctx context.Context, search string) ([]Employee, error) {
	employees, err := s.Store.List(ctx, DirectoryFilter(search))
	if err != nil {
		return nil, err
	}
	for i := range employees {
		Normalize(&employees[i])
	}
	return employees, nil
}

// ExportSelection resolves the record set for an export request: explicit
// IDs win over a search term, neither selects everything non-admin.
func (s *Service) ExportSelection(ctx context.Context, search string, selectedIDs []string) ([]Employee, error) {
	ids := make([]string, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return s.Store.List(ctx, ExportFilter(strings.TrimSpace(search), ids))
}

func (s *Service) Delete(ctx context.Context, employeeID string) error {
	if employeeID == RoleAdmin {
		return invalid("Cannot delete the admin account.")
	}
	deleted, err := s.Store.DeleteByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkDelete removes the selected records, silently dropping the admin ID
// from the selection.
func (s *Service) BulkDelete(ctx context.Context, employeeIDs []string) (int64, error) {
	filtered := make([]string, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		if id != RoleAdmin && id != "" {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) == 0 {
		return 0, invalid("No valid employees selected.")
	}
	return s.Store.DeleteByEmployeeIDs(ctx, filtered)
}

func (s *Service) ChangeAdminPassword(ctx context.Context, current, newPassword, confirm string) error {
	if newPassword == "" || newPassword != confirm {
		return invalid("New password and confirmation do not match.")
	}
	admin, err := s.Store.FindAdmin(ctx)
	if err != nil {
		return err
	}
	if err := auth.CheckPassword(admin.Password, current); err != nil {
		return invalid("Current password is incorrect.")
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Store.UpdatePassword(ctx, admin.ID, hash)
}

func (s *Service) SetEmployeePassword(ctx context.Context, employeeID, newPassword, confirm string) error {
	if _, err := s.Store.FindByEmployeeID(ctx, employeeID); err != nil {
		return err
	}
	if newPassword == "" || newPassword != confirm {
		return invalid("New password and confirmation do not match.")
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Store.UpdatePasswordByEmployeeID(ctx, employeeID, hash)
}
