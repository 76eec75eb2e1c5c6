package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

const collectionFiches = "fiches"

type FicheRepository struct {
	col *mongo.Collection
}

func NewFicheRepository(db *mongo.Database) *FicheRepository {
	return &FicheRepository{col: db.Collection(collectionFiches)}
}

// FindAll returns every fiche in insertion order.
func (r *FicheRepository) FindAll(ctx context.Context) ([]domain.Fiche, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find fiches: %w", err)
	}
	fiches := []domain.Fiche{}
	if err := cur.All(ctx, &fiches); err != nil {
		return nil, fmt.Errorf("decode fiches: %w", err)
	}
	return fiches, nil
}

// ReplaceAll makes the collection hold exactly fiches.
func (r *FicheRepository) ReplaceAll(ctx context.Context, fiches []domain.Fiche) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ids := make([]string, len(fiches))
	models := make([]mongo.WriteModel, len(fiches))
	for i, f := range fiches {
		ids[i] = f.ID
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": f.ID}).
			SetReplacement(f).
			SetUpsert(true)
	}
	return replaceAll(ctx, r.col, ids, models)
}

// EnsureIndexes creates necessary indexes on the fiches collection.
func (r *FicheRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "advisor_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// replaceAll upserts models and deletes every document whose id is not in ids.
func replaceAll(ctx context.Context, col *mongo.Collection, ids []string, models []mongo.WriteModel) error {
	if len(models) > 0 {
		if _, err := col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return fmt.Errorf("bulk write %s: %w", col.Name(), err)
		}
	}
	if _, err := col.DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": ids}}); err != nil {
		return fmt.Errorf("prune %s: %w", col.Name(), err)
	}
	return nil
}
