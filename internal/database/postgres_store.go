package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restoran-pos/internal/apperr"
	"restoran-pos/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const documentRowID = 1

// documentRow holds the whole document as jsonb in a single row.
type documentRow struct {
	ID        uint   `gorm:"primaryKey"`
	Data      string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (documentRow) TableName() string { return "pos_documents" }

// PostgresStore keeps the document in PostgreSQL. Update locks the row
// (SELECT ... FOR UPDATE), so read-modify-write is atomic across processes.
type PostgresStore struct {
	db  *gorm.DB
	log zerolog.Logger
}

func OpenPostgres(ctx context.Context, dsn string, log zerolog.Logger) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return newPostgresStore(ctx, db, log)
}

func newPostgresStore(ctx context.Context, db *gorm.DB, log zerolog.Logger) (*PostgresStore, error) {
	if err := db.WithContext(ctx).AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("migrate pos_documents: %w", err)
	}

	s := &PostgresStore{db: db, log: log}

	var row documentRow
	err := db.WithContext(ctx).First(&row, documentRowID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		doc := DefaultDocument()
		if _, err := Normalize(doc); err != nil {
			return nil, err
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode document: %w", err)
		}
		row = documentRow{ID: documentRowID, Data: string(data)}
		if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return nil, fmt.Errorf("seed pos_documents: %w", err)
		}
		log.Info().Msg("postgres document initialized")
	case err != nil:
		return nil, fmt.Errorf("load pos_documents: %w", err)
	default:
		// persist whatever Normalize fills in for an older document
		if err := s.Update(ctx, func(*models.Document) error { return nil }); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *PostgresStore) View(ctx context.Context, fn func(doc *models.Document) error) error {
	var row documentRow
	if err := s.db.WithContext(ctx).First(&row, documentRowID).Error; err != nil {
		s.log.Error().Err(err).Msg("document could not be loaded")
		return apperr.LoadFailed(err)
	}
	doc, err := decodeDocument(row.Data)
	if err != nil {
		return apperr.LoadFailed(err)
	}
	return fn(doc)
}

func (s *PostgresStore) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	var fnErr error

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, documentRowID).Error; err != nil {
			return fmt.Errorf("lock document: %w", err)
		}
		doc, err := decodeDocument(row.Data)
		if err != nil {
			return err
		}

		if fnErr = fn(doc); fnErr != nil {
			return fnErr
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		return tx.Model(&documentRow{}).
			Where("id = ?", documentRowID).
			Updates(map[string]interface{}{
				"data":       string(data),
				"updated_at": time.Now(),
			}).Error
	})

	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		s.log.Error().Err(err).Msg("document could not be saved")
		return apperr.Persistence(err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func decodeDocument(data string) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if _, err := Normalize(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
