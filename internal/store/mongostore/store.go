// Package mongostore implements store.Store on a MongoDB database.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Store struct {
	users    *mongo.Collection
	roles    *mongo.Collection
	projects *mongo.Collection
	tasks    *mongo.Collection
	now      func() time.Time
}

var _ store.Store = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{
		users:    db.Collection(usersCollection),
		roles:    db.Collection(rolesCollection),
		projects: db.Collection(projectsCollection),
		tasks:    db.Collection(tasksCollection),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Connect dials uri, verifies the connection and ensures the unique email
// indexes exist. The caller owns the returned client.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))

	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := New(client.Database(database))

	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	return client, s, nil
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, coll := range []*mongo.Collection{s.users, s.roles} {
		if _, err := coll.Indexes().CreateOne(ctx, unique); err != nil {
			return fmt.Errorf("create email index on %s: %w", coll.Name(), err)
		}
	}

	if _, err := s.tasks.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "project", Value: 1}}}); err != nil {
		return fmt.Errorf("create project index on tasks: %w", err)
	}

	return nil
}

// Atomically runs fn directly against s. Multi-document transactions need a
// replica set, so callers order their writes dependent-first and keep them
// idempotent instead.
func (s *Store) Atomically(_ context.Context, fn func(store.Store) error) error {
	return fn(s)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	}
	return err
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return oid, nil
}

// optionalRef converts an optional reference; an empty id becomes the zero ObjectID.
func optionalRef(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid reference %q", id)
	}
	return oid, nil
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range store.UniqueIDs(ids) {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// Users

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	now := s.now()
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      string(u.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}

	*u = doc.model()
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDoc

	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, translate(err)
	}

	u := doc.model()
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "email": 1, "role": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := s.users.Find(ctx, bson.M{}, opts)

	if err != nil {
		return nil, err
	}

	var docs []userDoc

	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.UserSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model().Summary())
	}

	return out, nil
}

func (s *Store) UsersByID(ctx context.Context, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User)
	oids := objectIDs(ids)

	if len(oids) == 0 {
		return out, nil
	}

	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})

	if err != nil {
		return nil, err
	}

	var docs []userDoc

	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	for _, d := range docs {
		out[d.ID.Hex()] = d.model()
	}

	return out, nil
}

func (s *Store) UpdateUserByEmail(ctx context.Context, email, newEmail string, role models.Role) error {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"email": newEmail, "role": string(role), "updatedAt": s.now()}},
	)

	if err != nil {
		return translate(err)
	}

	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteUserByEmail(ctx context.Context, email string) error {
	res, err := s.users.DeleteOne(ctx, bson.M{"email": email})

	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}

	return nil
}

// Authorization registry

func (s *Store) ListRoleAssignments(ctx context.Context) ([]models.RoleAssignment, error) {
	cur, err := s.roles.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))

	if err != nil {
		return nil, err
	}

	var docs []roleDoc

	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.RoleAssignment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}

	return out, nil
}

func (s *Store) FindRoleAssignment(ctx context.Context, email string) (*models.RoleAssignment, error) {
	var doc roleDoc

	if err := s.roles.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, translate(err)
	}

	r := doc.model()
	return &r, nil
}

func (s *Store) CreateRoleAssignment(ctx context.Context, r *models.RoleAssignment) error {
	doc := roleDoc{ID: primitive.NewObjectID(), Email: r.Email, Role: string(r.Role)}

	if _, err := s.roles.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}

	*r = doc.model()
	return nil
}

func (s *Store) UpdateRoleAssignment(ctx context.Context, email, newEmail string, role models.Role) (*models.RoleAssignment, error) {
	var doc roleDoc

	err := s.roles.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"email": newEmail, "role": string(role)}},
		afterUpdate(),
	).Decode(&doc)

	if err != nil {
		return nil, translate(err)
	}

	r := doc.model()
	return &r, nil
}

func (s *Store) DeleteRoleAssignment(ctx context.Context, email string) (*models.RoleAssignment, error) {
	var doc roleDoc

	if err := s.roles.FindOneAndDelete(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, translate(err)
	}

	r := doc.model()
	return &r, nil
}

func (s *Store) DeleteAllRoleAssignments(ctx context.Context) (int64, error) {
	res, err := s.roles.DeleteMany(ctx, bson.M{})

	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

// Projects

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	owner, err := optionalRef(p.OwnerID)

	if err != nil {
		return err
	}

	now := s.now()
	doc := projectDoc{
		ID:          primitive.NewObjectID(),
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Owner:       owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.projects.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}

	*p = doc.model()
	return nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	var doc projectDoc

	if err := s.projects.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}

	p := doc.model()
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context, f store.ProjectFilter) ([]models.Project, error) {
	filter := bson.M{}

	if f.OwnerID != "" {
		owner, err := primitive.ObjectIDFromHex(f.OwnerID)
		if err != nil {
			return []models.Project{}, nil
		}
		filter["owner"] = owner
	}

	cur, err := s.projects.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))

	if err != nil {
		return nil, err
	}

	var docs []projectDoc

	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.Project, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}

	return out, nil
}

func (s *Store) ProjectsByID(ctx context.Context, ids []string) (map[string]models.Project, error) {
	out := make(map[string]models.Project)
	oids := objectIDs(ids)

	if len(oids) == 0 {
		return out, nil
	}

	cur, err := s.projects.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})

	if err != nil {
		return nil, err
	}

	var docs []projectDoc

	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	for _, d := range docs {
		out[d.ID.Hex()] = d.model()
	}

	return out, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, u models.ProjectUpdate) (*models.Project, error) {
	if u.Empty() {
		return s.GetProject(ctx, id)
	}

	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": s.now()}

	if u.Name.Set {
		set["name"] = u.Name.Value
	}
	if u.Description.Set {
		set["description"] = u.Description.Value
	}
	if u.StartDate.Set {
		set["startDate"] = u.StartDate.Value
	}
	if u.EndDate.Set {
		set["endDate"] = u.EndDate.Value
	}
	if u.OwnerID.Set {
		owner, err := optionalRef(derefString(u.OwnerID.Value))
		if err != nil {
			return nil, err
		}
		set["owner"] = owner
	}

	var doc projectDoc

	if err := s.projects.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, afterUpdate()).Decode(&doc); err != nil {
		return nil, translate(err)
	}

	p := doc.model()
	return &p, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) (*models.Project, error) {
	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	var doc projectDoc

	if err := s.projects.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}

	p := doc.model()
	return &p, nil
}

// Tasks

func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	owner, err := optionalRef(t.OwnerID)

	if err != nil {
		return err
	}

	project, err := optionalRef(t.ProjectID)

	if err != nil {
		return err
	}

	status := t.Status
	if status == "" {
		status = models.StatusNew
	}

	now := s.now()
	doc := taskDoc{
		ID:          primitive.NewObjectID(),
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(status),
		Owner:       owner,
		Project:     project,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.tasks.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}

	*t = doc.model()
	return nil
}

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	var doc taskDoc

	if err := s.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}

	t := doc.model()
	return &t, nil
}

func (s *Store) ListTasks(ctx context.Context, f store.TaskFilter) ([]models.Task, error) {
	filter := bson.M{}

	if f.OwnerID != "" {
		oid, err := primitive.ObjectIDFromHex(f.OwnerID)
		if err != nil {
			return []models.Task{}, nil
		}
		filter["owner"] = oid
	}

	cur, err := s.tasks.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))

	if err != nil {
		return nil, err
	}

	var docs []taskDoc

	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]models.Task, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}

	return out, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, u models.TaskUpdate) (*models.Task, error) {
	if u.Empty() {
		return s.GetTask(ctx, id)
	}

	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": s.now()}

	if u.Description.Set {
		set["description"] = u.Description.Value
	}
	if u.DueDate.Set {
		set["dueDate"] = u.DueDate.Value
	}
	if u.Status.Set && u.Status.Value != nil {
		set["status"] = string(*u.Status.Value)
	}
	if u.OwnerID.Set {
		owner, err := optionalRef(derefString(u.OwnerID.Value))
		if err != nil {
			return nil, err
		}
		set["owner"] = owner
	}
	if u.ProjectID.Set {
		project, err := optionalRef(derefString(u.ProjectID.Value))
		if err != nil {
			return nil, err
		}
		set["project"] = project
	}

	var doc taskDoc

	if err := s.tasks.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, afterUpdate()).Decode(&doc); err != nil {
		return nil, translate(err)
	}

	t := doc.model()
	return &t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	var doc taskDoc

	if err := s.tasks.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}

	t := doc.model()
	return &t, nil
}

func (s *Store) DeleteTasksByProject(ctx context.Context, projectID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)

	if err != nil {
		return 0, nil
	}

	res, err := s.tasks.DeleteMany(ctx, bson.M{"project": oid})

	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
