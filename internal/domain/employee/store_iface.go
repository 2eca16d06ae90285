package employee

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StoreAPI interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*Employee, error)
	FindByRef(ctx context.Context, ref string) (*Employee, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)
	FindByPhone(ctx context.Context, phone string) (*Employee, error)
	FindAdmin(ctx context.Context) (*Employee, error)
	List(ctx context.Context, filter bson.M) ([]Employee, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	EmployeeIDTaken(ctx context.Context, employeeID string, exclude primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, emp Employee) (primitive.ObjectID, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, emp Employee, markCompleted bool) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	UpdatePasswordByEmployeeID(ctx context.Context, employeeID, passwordHash string) error
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)
	DeleteByEmployeeIDs(ctx context.Context, employeeIDs []string) (int64, error)
}
