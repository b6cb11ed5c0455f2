package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
)

// PropertyRepository defines the data-access contract for properties.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Property, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Property, error)
	Save(ctx context.Context, property *domain.Property) error
	SetLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params dto.PropertySearchParams) ([]domain.Property, int64, error)
}

// propertyRepository implements PropertyRepository on top of gorm/PostGIS.
type propertyRepository struct {
	db         *gorm.DB
	dictionary string
}

// NewPropertyRepository creates a new PropertyRepository. The dictionary is
// the Postgres text-search configuration used for full-text queries.
func NewPropertyRepository(db *gorm.DB, dictionary string) PropertyRepository {
	return &propertyRepository{db: db, dictionary: dictionary}
}

// Create inserts a new property.
func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// GetByID fetches a property by ID. Soft-deleted rows are excluded unless
// includeDeleted is set.
func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.Property, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var property domain.Property
	if err := query.First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

// GetBySlug fetches a non-deleted property by its slug.
func (r *propertyRepository) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	var property domain.Property
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Where("deleted_at IS NULL").
		First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

// Save persists all fields of an existing property.
func (r *propertyRepository) Save(ctx context.Context, property *domain.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

// SetLocation derives the geography point column from coordinates. The
// point is written with a parameterized expression; it is never built by
// string concatenation.
func (r *propertyRepository) SetLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("id = ?", id).
		Update("location", gorm.Expr("ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography", lng, lat)).
		Error
}

// IncrementViewCount bumps the view counter without touching updated_at.
func (r *propertyRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).
		Error
}

// Search runs the count query and the page query over the identical
// predicate conjunction: the returned total always reflects the same WHERE
// conditions as the page.
func (r *propertyRepository) Search(ctx context.Context, params dto.PropertySearchParams) ([]domain.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Property{})
	for _, c := range buildSearchConditions(params, r.dictionary) {
		query = query.Where(c.Expr, c.Args...)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting properties: %w", err)
	}

	order := resolveOrder(params, r.dictionary)
	if len(order.Args) > 0 {
		query = query.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                order.Expr,
			Vars:               order.Args,
			WithoutParentheses: true,
		}})
	} else {
		query = query.Order(order.Expr)
	}

	offset, limit := pageOffsetLimit(params.Page, params.PageSize)

	var properties []domain.Property
	if err := query.Offset(offset).Limit(limit).Find(&properties).Error; err != nil {
		return nil, 0, fmt.Errorf("fetching properties: %w", err)
	}

	return properties, total, nil
}

// EnsureSearchSchema creates the pieces of the properties schema that gorm
// cannot express: the PostGIS geography column, the generated full-text
// vector and its indexes. Mirrors the production migrations; safe to run
// repeatedly.
func EnsureSearchSchema(db *gorm.DB, dictionary string) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis`,

		`ALTER TABLE properties ADD COLUMN IF NOT EXISTS location geography(Point,4326)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_location ON properties USING gist (location)`,

		// Weighted full-text vector: title > description > neighborhood > city.
		// The dictionary identifier comes from configuration, not user input.
		fmt.Sprintf(`ALTER TABLE properties ADD COLUMN IF NOT EXISTS search_vector tsvector
			GENERATED ALWAYS AS (
				setweight(to_tsvector('%[1]s', coalesce(title, '')), 'A') ||
				setweight(to_tsvector('%[1]s', coalesce(description, '')), 'B') ||
				setweight(to_tsvector('%[1]s', coalesce(neighborhood, '')), 'C') ||
				setweight(to_tsvector('simple', coalesce(city, '')), 'D')
			) STORED`, dictionary),
		`CREATE INDEX IF NOT EXISTS idx_properties_search_vector ON properties USING gin (search_vector)`,

		`CREATE INDEX IF NOT EXISTS idx_properties_search_filters ON properties (city, property_type, listing_type, status, price)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_active_published ON properties (status, published_at DESC, expires_at) WHERE status = 'active' AND deleted_at IS NULL`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensuring search schema: %w", err)
		}
	}
	return nil
}
