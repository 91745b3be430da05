package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitwise74/files-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDoc struct {
	ID           string `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password"`
	CreatedAt    int64  `bson:"createdAt"`
}

type fileDoc struct {
	ID        string `bson:"_id"`
	UserID    string `bson:"userId"`
	Name      string `bson:"name"`
	Type      string `bson:"type"`
	ParentID  string `bson:"parentId"`
	IsPublic  bool   `bson:"isPublic"`
	LocalPath string `bson:"localPath,omitempty"`
	CreatedAt int64  `bson:"createdAt"`
}

func (d *fileDoc) toModel() *model.File {
	return &model.File{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Type:      model.FileType(d.Type),
		ParentID:  model.ParentOf(d.ParentID),
		IsPublic:  d.IsPublic,
		LocalPath: d.LocalPath,
		CreatedAt: d.CreatedAt,
	}
}

// Mongo is a Store keeping users and files in two collections
type Mongo struct {
	client *mongo.Client
	users  *mongo.Collection
	files  *mongo.Collection
}

// NewMongo connects to uri and makes sure the indexes exist
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo, %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo, %w", err)
	}

	db := client.Database(database)
	m := &Mongo{
		client: client,
		users:  db.Collection("users"),
		files:  db.Collection("files"),
	}

	_, err = m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create users index, %w", err)
	}

	_, err = m.files.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "parentId", Value: 1}},
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create files index, %w", err)
	}

	return m, nil
}

func (m *Mongo) CreateUser(ctx context.Context, u *model.User) error {
	_, err := m.users.InsertOne(ctx, userDoc{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}

	return err
}

func (m *Mongo) findUser(ctx context.Context, filter bson.M) (*model.User, error) {
	var d userDoc

	err := m.users.FindOne(ctx, filter).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &model.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}, nil
}

func (m *Mongo) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.findUser(ctx, bson.M{"email": email})
}

func (m *Mongo) UserByID(ctx context.Context, id string) (*model.User, error) {
	return m.findUser(ctx, bson.M{"_id": id})
}

func (m *Mongo) CountUsers(ctx context.Context) (int64, error) {
	return m.users.CountDocuments(ctx, bson.M{})
}

func (m *Mongo) InsertFile(ctx context.Context, f *model.File) error {
	_, err := m.files.InsertOne(ctx, fileDoc{
		ID:        f.ID,
		UserID:    f.UserID,
		Name:      f.Name,
		Type:      string(f.Type),
		ParentID:  f.ParentID.ID(),
		IsPublic:  f.IsPublic,
		LocalPath: f.LocalPath,
		CreatedAt: f.CreatedAt,
	})

	return err
}

func (m *Mongo) findFile(ctx context.Context, filter bson.M) (*model.File, error) {
	var d fileDoc

	err := m.files.FindOne(ctx, filter).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return d.toModel(), nil
}

func (m *Mongo) FileByID(ctx context.Context, id string) (*model.File, error) {
	return m.findFile(ctx, bson.M{"_id": id})
}

func (m *Mongo) FileByOwner(ctx context.Context, id, userID string) (*model.File, error) {
	return m.findFile(ctx, bson.M{"_id": id, "userId": userID})
}

func (m *Mongo) FilesByParent(ctx context.Context, userID string, parent model.ParentID, page, pageSize int) ([]model.File, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID, "parentId": parent.ID()}}},
		{{Key: "$skip", Value: int64(page * pageSize)}},
		{{Key: "$limit", Value: int64(pageSize)}},
	}

	cur, err := m.files.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []model.File{}
	for cur.Next(ctx) {
		var d fileDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}

		entries = append(entries, *d.toModel())
	}

	return entries, cur.Err()
}

func (m *Mongo) UpdateVisibility(ctx context.Context, id string, isPublic bool) error {
	r, err := m.files.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isPublic": isPublic}})
	if err != nil {
		return err
	}

	if r.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *Mongo) CountFiles(ctx context.Context) (int64, error) {
	return m.files.CountDocuments(ctx, bson.M{})
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return m.client.Disconnect(ctx)
}
