package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/totegamma/portalgun/internal/domain"
	"github.com/totegamma/portalgun/internal/infra/database"
	"github.com/totegamma/portalgun/internal/infra/database/models"
)

type MongoDocumentRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMongoDocumentRepository(db *mongo.Database) *MongoDocumentRepository {
	return &MongoDocumentRepository{db: db, coll: db.Collection(database.CharactersCollection)}
}

func (r *MongoDocumentRepository) NewID() string {
	return bson.NewObjectID().Hex()
}

func (r *MongoDocumentRepository) ValidID(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}

func (r *MongoDocumentRepository) InsertOne(ctx context.Context, doc domain.Document) (string, error) {
	row, err := toMongoDocument(doc)
	if err != nil {
		return "", err
	}
	_, err = r.coll.InsertOne(ctx, row)
	if err != nil {
		return "", err
	}
	return row.ID.Hex(), nil
}

func (r *MongoDocumentRepository) FindOneAndUpdate(ctx context.Context, filter domain.Filter, patch domain.Patch) (*domain.Document, error) {
	query, err := mongoFilter(filter)
	if err != nil {
		return nil, err
	}

	var row models.MongoDocument
	err = r.coll.FindOneAndUpdate(
		ctx,
		query,
		mongoUpdate(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFoundError{Resource: "document"}
		}
		return nil, err
	}

	doc := fromMongoDocument(row)
	return &doc, nil
}

func (r *MongoDocumentRepository) SampleOne(ctx context.Context, filter domain.Filter) (*domain.Document, error) {
	query, err := mongoFilter(filter)
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: query}},
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, domain.NotFoundError{Resource: "document"}
	}

	var row models.MongoDocument
	if err := cursor.Decode(&row); err != nil {
		return nil, err
	}
	doc := fromMongoDocument(row)
	return &doc, nil
}

func (r *MongoDocumentRepository) Find(ctx context.Context, filter domain.Filter, opts domain.FindOptions) ([]domain.Document, error) {
	query, err := mongoFilter(filter)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find()
	if sort := mongoSort(opts); sort != nil {
		findOpts.SetSort(sort)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}

	var rows []models.MongoDocument
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, fromMongoDocument(row))
	}
	return docs, nil
}

func (r *MongoDocumentRepository) DeleteOne(ctx context.Context, filter domain.Filter) (int64, error) {
	query, err := mongoFilter(filter)
	if err != nil {
		return 0, err
	}
	result, err := r.coll.DeleteOne(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *MongoDocumentRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

func mongoField(field string) string {
	if field == domain.FieldID {
		return "_id"
	}
	return field
}

func mongoFilter(f domain.Filter) (bson.M, error) {
	query := bson.M{}

	if f.ID != "" {
		oid, err := bson.ObjectIDFromHex(f.ID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		query["_id"] = oid
	}

	switch {
	case f.Kind != "":
		query[domain.FieldKind] = string(f.Kind)
	case f.NotKind != "":
		// documents without a kind are characters
		query[domain.FieldKind] = bson.M{"$ne": string(f.NotKind)}
	}

	dimension := bson.M{}
	if f.Dimension != "" {
		dimension["$eq"] = f.Dimension
	}
	if f.ExcludeDimension != "" {
		dimension["$ne"] = f.ExcludeDimension
	}
	if len(dimension) > 0 {
		query[domain.FieldCurrentDimension] = dimension
	}

	return query, nil
}

func mongoUpdate(p domain.Patch) bson.M {
	set := bson.M{}
	for field, value := range p.Fields() {
		set[mongoField(field)] = value
	}
	return bson.M{"$set": set}
}

func mongoSort(opts domain.FindOptions) bson.D {
	if opts.SortBy == "" {
		return nil
	}
	direction := 1
	if opts.Order == domain.Descending {
		direction = -1
	}
	return bson.D{{Key: mongoField(opts.SortBy), Value: direction}}
}

func toMongoDocument(doc domain.Document) (models.MongoDocument, error) {
	id := bson.NewObjectID()
	if doc.ID != "" {
		var err error
		id, err = bson.ObjectIDFromHex(doc.ID)
		if err != nil {
			return models.MongoDocument{}, domain.ErrInvalidID
		}
	}

	row := models.MongoDocument{
		ID:                  id,
		Kind:                string(doc.Kind),
		Name:                doc.Name,
		Status:              doc.Status,
		Species:             doc.Species,
		OriginDimension:     doc.OriginDimension,
		CurrentDimension:    doc.CurrentDimension,
		ImageURL:            doc.ImageURL,
		CapturedAt:          timePtr(doc.CapturedAt),
		StolenByRickPrime:   doc.StolenByRickPrime,
		OriginalDimension:   doc.OriginalDimension,
		PreviousCharacterID: doc.PreviousCharacterID,
		Dimension:           doc.Dimension,
		CreatedAt:           timePtr(doc.CreatedAt),
	}
	return row, nil
}

func fromMongoDocument(row models.MongoDocument) domain.Document {
	doc := domain.Document{
		ID:                  row.ID.Hex(),
		Kind:                domain.Kind(row.Kind),
		Name:                row.Name,
		Status:              row.Status,
		Species:             row.Species,
		OriginDimension:     row.OriginDimension,
		CurrentDimension:    row.CurrentDimension,
		ImageURL:            row.ImageURL,
		StolenByRickPrime:   row.StolenByRickPrime,
		OriginalDimension:   row.OriginalDimension,
		PreviousCharacterID: row.PreviousCharacterID,
		Dimension:           row.Dimension,
	}
	if row.CapturedAt != nil {
		doc.CapturedAt = row.CapturedAt.UTC()
	}
	if row.CreatedAt != nil {
		doc.CreatedAt = row.CreatedAt.UTC()
	}
	return doc
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
