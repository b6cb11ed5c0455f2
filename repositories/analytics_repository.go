package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/davidjirca/dreamhome/domain"
)

// AnalyticsRepository is the append-only store for search analytics.
// Records are written fire-and-forget and never read back here.
type AnalyticsRepository interface {
	LogSearch(ctx context.Context, query *domain.SearchQuery) error
}

// mongoAnalyticsRepository implements AnalyticsRepository on MongoDB.
type mongoAnalyticsRepository struct {
	collection *mongo.Collection
}

// NewAnalyticsRepository creates an AnalyticsRepository backed by the
// search_queries collection.
func NewAnalyticsRepository(client *mongo.Client, database string) AnalyticsRepository {
	return &mongoAnalyticsRepository{
		collection: client.Database(database).Collection("search_queries"),
	}
}

// LogSearch appends one search-analytics record.
func (r *mongoAnalyticsRepository) LogSearch(ctx context.Context, query *domain.SearchQuery) error {
	if _, err := r.collection.InsertOne(ctx, query); err != nil {
		return fmt.Errorf("inserting search query: %w", err)
	}
	return nil
}
