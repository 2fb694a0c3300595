package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

const (
	defaultMongoDatabase = "todo_db"
	todosCollection      = "todos"

	codeNamespaceExists = 48
)

var _ Store = (*MongoRepo)(nil)

// mongoTask is the stored document: _id, text, completed, createdAt.
type mongoTask struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d mongoTask) toModel() model.Task {
	return model.Task{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		Completed: d.Completed,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type MongoRepo struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoRepo connects to uri and pings the primary. The database name is
// taken from the URI path and defaults to todo_db.
func NewMongoRepo(ctx context.Context, uri string, logger *zap.Logger) (*MongoRepo, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("mongo parse uri: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = defaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoRepo{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

func (r *MongoRepo) collection() *mongo.Collection {
	return r.db.Collection(todosCollection)
}

func (r *MongoRepo) Bootstrap(ctx context.Context) (bool, error) {
	created := true
	err := r.db.CreateCollection(ctx, todosCollection)
	if err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Code != codeNamespaceExists {
			return false, fmt.Errorf("create collection: %w", err)
		}
		r.logger.Info("todos collection already exists", zap.String("database", r.db.Name()))
		created = false
	} else {
		r.logger.Info("todos collection created", zap.String("database", r.db.Name()))
	}

	_, err = r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return created, fmt.Errorf("create index: %w", err)
	}
	return created, nil
}

func (r *MongoRepo) List(ctx context.Context) ([]model.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var docs []mongoTask
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toModel())
	}
	return tasks, nil
}

func (r *MongoRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	doc := mongoTask{
		ID:   primitive.NewObjectID(),
		Text: t.Text,
		// BSON dates have millisecond precision
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.collection().InsertOne(ctx, doc); err != nil {
		return model.Task{}, err
	}
	return doc.toModel(), nil
}

func (r *MongoRepo) SetCompleted(ctx context.Context, id string, completed bool) (model.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Task{}, ErrorNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoTask
	err = r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"completed": completed}},
		opts,
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Task{}, ErrorNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	return doc.toModel(), nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrorNotFound
	}

	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *MongoRepo) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.client.Disconnect(ctx); err != nil {
		r.logger.Warn("mongo disconnect", zap.Error(err))
	}
}
