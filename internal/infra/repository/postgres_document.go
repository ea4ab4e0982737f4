package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/portalgun/internal/domain"
	"github.com/totegamma/portalgun/internal/infra/database/models"
)

type PostgresDocumentRepository struct {
	db *gorm.DB
}

func NewPostgresDocumentRepository(db *gorm.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

func (r *PostgresDocumentRepository) NewID() string {
	return uuid.NewString()
}

func (r *PostgresDocumentRepository) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *PostgresDocumentRepository) InsertOne(ctx context.Context, doc domain.Document) (string, error) {
	if doc.ID == "" {
		doc.ID = r.NewID()
	}
	row := toDocumentRow(doc)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

func (r *PostgresDocumentRepository) FindOneAndUpdate(ctx context.Context, filter domain.Filter, patch domain.Patch) (*domain.Document, error) {
	where, args := buildWhere(filter)

	var rows []models.Document
	query := r.db.WithContext(ctx).
		Model(&rows).
		Clauses(clause.Returning{}).
		Where(where, args...)
	if filter.ID == "" {
		// the conditions are repeated so a row changed after the subquery
		// picked it is skipped
		sub := r.db.WithContext(ctx).Model(&models.Document{}).Select("id").Where(where, args...).Limit(1)
		query = query.Where("id = (?)", sub)
	}

	result := query.Updates(patch.Fields())
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(rows) == 0 {
		return nil, domain.NotFoundError{Resource: "document"}
	}

	doc := fromDocumentRow(rows[0])
	return &doc, nil
}

func (r *PostgresDocumentRepository) SampleOne(ctx context.Context, filter domain.Filter) (*domain.Document, error) {
	where, args := buildWhere(filter)

	var row models.Document
	err := r.db.WithContext(ctx).
		Where(where, args...).
		Order("random()").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "document"}
		}
		return nil, err
	}

	doc := fromDocumentRow(row)
	return &doc, nil
}

func (r *PostgresDocumentRepository) Find(ctx context.Context, filter domain.Filter, opts domain.FindOptions) ([]domain.Document, error) {
	where, args := buildWhere(filter)

	query := r.db.WithContext(ctx).Where(where, args...)
	if opts.SortBy != "" {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: opts.SortBy},
			Desc:   opts.Order == domain.Descending,
		})
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var rows []models.Document
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, fromDocumentRow(row))
	}
	return docs, nil
}

func (r *PostgresDocumentRepository) DeleteOne(ctx context.Context, filter domain.Filter) (int64, error) {
	if filter.ID == "" {
		return 0, errors.New("refusing to delete without an id")
	}
	where, args := buildWhere(filter)
	result := r.db.WithContext(ctx).Where(where, args...).Delete(&models.Document{})
	return result.RowsAffected, result.Error
}

func (r *PostgresDocumentRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// buildWhere renders f as a SQL condition over the documents table.
func buildWhere(f domain.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.ID != "" {
		conds = append(conds, "id = ?")
		args = append(args, f.ID)
	}
	if f.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.NotKind != "" {
		conds = append(conds, "kind <> ?")
		args = append(args, string(f.NotKind))
	}
	if f.Dimension != "" {
		conds = append(conds, "current_dimension = ?")
		args = append(args, f.Dimension)
	}
	if f.ExcludeDimension != "" {
		conds = append(conds, "current_dimension <> ?")
		args = append(args, f.ExcludeDimension)
	}
	if len(conds) == 0 {
		return "1 = 1", nil
	}
	return strings.Join(conds, " AND "), args
}

func toDocumentRow(doc domain.Document) models.Document {
	row := models.Document{
		ID:                doc.ID,
		Kind:              string(doc.Kind),
		Name:              doc.Name,
		Status:            doc.Status,
		Species:           doc.Species,
		OriginDimension:   doc.OriginDimension,
		CurrentDimension:  doc.CurrentDimension,
		ImageURL:          doc.ImageURL,
		CapturedAt:        timePtr(doc.CapturedAt),
		StolenByRickPrime: doc.StolenByRickPrime,
		OriginalDimension: doc.OriginalDimension,
		CreatedAt:         doc.CreatedAt,
	}
	if row.Kind == "" {
		row.Kind = string(domain.KindCharacter)
	}
	if doc.Kind == domain.KindStone {
		row.PreviousCharacterID = &doc.PreviousCharacterID
		row.Dimension = &doc.Dimension
	}
	return row
}

func fromDocumentRow(row models.Document) domain.Document {
	doc := domain.Document{
		ID:                row.ID,
		Kind:              domain.Kind(row.Kind),
		Name:              row.Name,
		Status:            row.Status,
		Species:           row.Species,
		OriginDimension:   row.OriginDimension,
		CurrentDimension:  row.CurrentDimension,
		ImageURL:          row.ImageURL,
		StolenByRickPrime: row.StolenByRickPrime,
		OriginalDimension: row.OriginalDimension,
	}
	if row.CapturedAt != nil {
		doc.CapturedAt = row.CapturedAt.UTC()
	}
	if row.PreviousCharacterID != nil {
		doc.PreviousCharacterID = *row.PreviousCharacterID
	}
	if row.Dimension != nil {
		doc.Dimension = *row.Dimension
	}
	if doc.Kind == domain.KindStone {
		doc.CreatedAt = row.CreatedAt.UTC()
	}
	return doc
}
