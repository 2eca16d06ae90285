package employee

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no employee document matches a lookup.
var ErrNotFound = errors.New("employee not found")

// Store reads and writes the one employees collection. Every operation is a
// single non-transactional call; concurrent writers race with last-write-wins
// semantics at the collection.
type Store struct {
	Collection *mongo.Collection
}

func NewStore(collection *mongo.Collection) *Store {
	return &Store{Collection: collection}
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*Employee, error) {
	var emp Employee
	err := s.Collection.FindOne(ctx, filter).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*Employee, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByRef resolves an identifier that may be either a document ID in hex
// form or a human-facing employee ID. A malformed hex string is not an
// error; it falls back to the employee_id lookup.
func (s *Store) FindByRef(ctx context.Context, ref string) (*Employee, error) {
	if ref == "" {
		return nil, ErrNotFound
	}
	if id, err := primitive.ObjectIDFromHex(ref); err == nil {
		return s.FindByID(ctx, id)
	}
	return s.FindByEmployeeID(ctx, ref)
}

func (s *Store) FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	return s.findOne(ctx, bson.M{"employee_id": employeeID})
}

func (s *Store) FindByPhone(ctx context.Context, phone string) (*Employee, error) {
	return s.findOne(ctx, bson.M{"phone": phone})
}

func (s *Store) FindAdmin(ctx context.Context) (*Employee, error) {
	return s.findOne(ctx, bson.M{"role": RoleAdmin})
}

func (s *Store) List(ctx context.Context, filter bson.M) ([]Employee, error) {
	cursor, err := s.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "name", Value: 1},
		{Key: "_id", Value: 1},
	}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []Employee{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) PhoneExists(ctx context.Context, phone string) (bool, error) {
	count, err := s.Collection.CountDocuments(ctx, bson.M{"phone": phone})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EmployeeIDTaken reports whether another record already carries the given
// employee ID. The record being edited is excluded so re-submitting an
// unchanged ID is never a collision.
func (s *Store) EmployeeIDTaken(ctx context.Context, employeeID string, exclude primitive.ObjectID) (bool, error) {
	count, err := s.Collection.CountDocuments(ctx, bson.M{
		"employee_id": employeeID,
		"_id":         bson.M{"$ne": exclude},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Insert(ctx context.Context, emp Employee) (primitive.ObjectID, error) {
	result, err := s.Collection.InsertOne(ctx, emp)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected inserted id type")
	}
	return id, nil
}

// UpdateProfile overwrites the full profile field set including the rebuilt
// family_members list; any previous list is replaced wholesale, never
// merged. markCompleted flips details_completed true and it stays true.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, emp Employee, markCompleted bool) error {
	fields := bson.M{
		"employee_id":     emp.EmployeeID,
		"name":            emp.Name,
		"phone":           emp.Phone,
		"email":           emp.Email,
		"designation":     emp.Designation,
		"department":      emp.Department,
		"gender":          emp.Gender,
		"dob":             emp.DOB,
		"marital_status":  emp.MaritalStatus,
		"date_of_joining": emp.DateOfJoining,
		"sum_insured_gmc": emp.SumInsuredGMC,
		"sum_insured_gpa": emp.SumInsuredGPA,
		"sum_insured_gtl": emp.SumInsuredGTL,
		"family_members":  emp.FamilyMembers,
	}
	if markCompleted {
		fields["details_completed"] = true
	}

	result, err := s.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	result, err := s.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdatePasswordByEmployeeID(ctx context.Context, employeeID, passwordHash string) error {
	result, err := s.Collection.UpdateOne(ctx, bson.M{"employee_id": employeeID}, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByEmployeeID removes one record. The role guard keeps the seeded
// admin record deletable by nobody.
func (s *Store) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	result, err := s.Collection.DeleteOne(ctx, bson.M{
		"employee_id": employeeID,
		"role":        bson.M{"$ne": RoleAdmin},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (s *Store) DeleteByEmployeeIDs(ctx context.Context, employeeIDs []string) (int64, error) {
	result, err := s.Collection.DeleteMany(ctx, bson.M{
		"employee_id": bson.M{"$in": employeeIDs},
		"role":        bson.M{"$ne": RoleAdmin},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
