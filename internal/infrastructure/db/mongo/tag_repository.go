package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskify/taskify-api/internal/core/domain"
)

const tagsCollection = "tags"

// TagRepository implements ports.TagRepository.
type TagRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{coll: db.Collection(tagsCollection)}
}

type tagDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, tagDoc{Name: tag.Name, CreatedAt: tag.CreatedAt})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTagExists
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}

	created := *tag
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tagDoc
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return &domain.Tag{ID: doc.ID.Hex(), Name: doc.Name, CreatedAt: doc.CreatedAt.UTC()}, nil
}

func (r *TagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer cursor.Close(ctx)

	var tags []*domain.Tag
	for cursor.Next(ctx) {
		var doc tagDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tag: %w", err)
		}
		tags = append(tags, &domain.Tag{ID: doc.ID.Hex(), Name: doc.Name, CreatedAt: doc.CreatedAt.UTC()})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}
