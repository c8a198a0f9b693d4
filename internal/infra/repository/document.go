package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/zeebo/xxh3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/domain"
	"github.com/totegamma/tptech/internal/infra/database/models"
)

// DocumentRepository stores published documents in postgres.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Fetch(ctx context.Context, locale tptech.Locale, d tptech.ContentDomain) ([]byte, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).
		Where("locale = ? AND domain = ?", string(locale), string(d)).
		Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "content " + string(locale) + "/" + string(d)}
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Body), nil
}

// Upsert publishes body as the document for the pair, replacing any previous version.
func (r *DocumentRepository) Upsert(ctx context.Context, locale tptech.Locale, d tptech.ContentDomain, body []byte) error {
	doc := models.Document{
		Locale:   string(locale),
		Domain:   string(d),
		Body:     string(body),
		Checksum: strconv.FormatUint(xxh3.Hash(body), 16),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "locale"}, {Name: "domain"}},
		DoUpdates: clause.Assignments(map[string]any{"body": doc.Body, "checksum": doc.Checksum, "m_date": gorm.Expr("clock_timestamp()")}),
	}).Create(&doc).Error
}
