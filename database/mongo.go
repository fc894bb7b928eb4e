package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"spendbook/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultMongoDatabase is used when neither the config nor the URI names a database.
const DefaultMongoDatabase = "spendbook"

const expenseCollection = "expenses"

// MongoStore keeps expenses as documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// expenseDocument is the stored shape; _id never leaves this package.
type expenseDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Amount    float64       `bson:"amount"`
	Category  string        `bson:"category"`
	Date      time.Time     `bson:"date"`
	Version   int64         `bson:"version"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

// mapDocument exposes a stored document with a client-facing id. nil maps to nil.
func mapDocument(doc *expenseDocument) *models.Expense {
	if doc == nil {
		return nil
	}
	return &models.Expense{
		ID:        doc.ID.Hex(),
		Title:     doc.Title,
		Amount:    doc.Amount,
		Category:  doc.Category,
		Date:      doc.Date.UTC(),
		Version:   uint(doc.Version),
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}
}

// MongoDatabaseName picks the database: explicit name, then the URI path, then the default.
func MongoDatabaseName(uri, name string) string {
	if name != "" {
		return name
	}
	if u, err := url.Parse(uri); err == nil {
		if db := strings.Trim(u.Path, "/"); db != "" {
			return db
		}
	}
	return DefaultMongoDatabase
}

// OpenMongo connects to MongoDB and prepares the expenses collection.
func OpenMongo(ctx context.Context, uri, name string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	store := &MongoStore{
		client: client,
		coll:   client.Database(MongoDatabaseName(uri, name)).Collection(expenseCollection),
	}

	if err := store.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	_, err = store.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("creating date index: %w", err)
	}

	return store, nil
}

// objectID parses a client id. Ids that cannot be ObjectIDs match nothing.
func objectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// mongo stores millisecond precision
func mongoTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Create inserts a new document
func (s *MongoStore) Create(ctx context.Context, f models.ExpenseFields) (*models.Expense, error) {
	now := mongoTime(time.Now())
	doc := &expenseDocument{
		ID:        bson.NewObjectID(),
		Title:     f.Title,
		Amount:    f.Amount,
		Category:  f.Category,
		Date:      mongoTime(f.Date),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}
	return mapDocument(doc), nil
}

// List returns all documents sorted by date descending
func (s *MongoStore) List(ctx context.Context) ([]models.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	var docs []expenseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding expenses: %w", err)
	}

	expenses := make([]models.Expense, 0, len(docs))
	for i := range docs {
		expenses = append(expenses, *mapDocument(&docs[i]))
	}
	return expenses, nil
}

// Get loads one document
func (s *MongoStore) Get(ctx context.Context, id string) (*models.Expense, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc expenseDocument
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading expense %s: %w", id, err)
	}
	return mapDocument(&doc), nil
}

// Update is a single atomic find-and-modify guarded by the version field
func (s *MongoStore) Update(ctx context.Context, current *models.Expense, f models.ExpenseFields) (*models.Expense, error) {
	oid, err := objectID(current.ID)
	if err != nil {
		return nil, err
	}

	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "version", Value: int64(current.Version)},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "title", Value: f.Title},
			{Key: "amount", Value: f.Amount},
			{Key: "category", Value: f.Category},
			{Key: "date", Value: mongoTime(f.Date)},
			{Key: "updatedAt", Value: mongoTime(time.Now())},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc expenseDocument
	err = s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, err := s.Get(ctx, current.ID); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("updating expense %s: %w", current.ID, err)
	}
	return mapDocument(&doc), nil
}

// Delete removes one document
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("deleting expense %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks the connection
func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
