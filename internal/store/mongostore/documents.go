package mongostore

import (
	"time"

	"github.com/taskflow-dev/taskflow/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection and field names follow the existing MongoDB layout of the service.
const (
	usersCollection    = "users"
	rolesCollection    = "roleassignments"
	projectsCollection = "projects"
	tasksCollection    = "tasks"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDoc) model() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         models.Role(d.Role),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type roleDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Email string             `bson:"email"`
	Role  string             `bson:"role"`
}

func (d roleDoc) model() models.RoleAssignment {
	return models.RoleAssignment{ID: d.ID.Hex(), Email: d.Email, Role: models.Role(d.Role)}
}

type projectDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	StartDate   *time.Time         `bson:"startDate,omitempty"`
	EndDate     *time.Time         `bson:"endDate,omitempty"`
	Owner       primitive.ObjectID `bson:"owner"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d projectDoc) model() models.Project {
	return models.Project{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		OwnerID:     hexOrEmpty(d.Owner),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Description string             `bson:"description"`
	DueDate     *time.Time         `bson:"dueDate"`
	Status      string             `bson:"status"`
	Owner       primitive.ObjectID `bson:"owner,omitempty"`
	Project     primitive.ObjectID `bson:"project,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d taskDoc) model() models.Task {
	return models.Task{
		ID:          d.ID.Hex(),
		Description: d.Description,
		DueDate:     d.DueDate,
		Status:      models.TaskStatus(d.Status),
		OwnerID:     hexOrEmpty(d.Owner),
		ProjectID:   hexOrEmpty(d.Project),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}
