// Copyright 2025 The specgrade Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/specgrade/specgrade/evaluation"
)

// resultsColumn serializes a run's results into a single JSON column.
type resultsColumn []evaluation.Result

// GormDataType declares the schema type used for migrations.
func (resultsColumn) GormDataType() string {
	return "text"
}

// GormDBDataType picks a dialect-specific column type.
func (resultsColumn) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "LONGTEXT"
	default:
		return ""
	}
}

// Value implements driver.Valuer.
func (rc resultsColumn) Value() (driver.Value, error) {
	if rc == nil {
		rc = resultsColumn{} // serialize as '[]' instead of NULL
	}
	b, err := json.Marshal(rc)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (rc *resultsColumn) Scan(value any) error {
	if value == nil {
		*rc = resultsColumn{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal results value: %T", value)
	}
	if len(bytes) == 0 {
		*rc = resultsColumn{}
		return nil
	}
	return json.Unmarshal(bytes, rc)
}

// runRecord is the table shape for persisted runs.
type runRecord struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Passed    bool
	CreatedAt time.Time
	Results   resultsColumn
}

func (runRecord) TableName() string {
	return "evaluation_runs"
}

// DatabaseStore persists runs in a relational database through gorm.
type DatabaseStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at path and
// migrates the run table. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*DatabaseStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return NewDatabaseStore(db)
}

// NewDatabaseStore wraps an existing gorm connection.
func NewDatabaseStore(db *gorm.DB) (*DatabaseStore, error) {
	if err := db.AutoMigrate(&runRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate run table: %w", err)
	}
	return &DatabaseStore{db: db}, nil
}

// SaveRun stores a run.
func (s *DatabaseStore) SaveRun(ctx context.Context, run *Run) error {
	if run == nil || run.ID == "" {
		return ErrInvalidInput
	}
	record := runRecord{
		ID:        run.ID,
		Name:      run.Name,
		Passed:    run.Passed,
		CreatedAt: run.CreatedAt,
		Results:   resultsColumn(run.Results),
	}
	return s.db.WithContext(ctx).Save(&record).Error
}

// GetRun retrieves a run by ID.
func (s *DatabaseStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	var record runRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", runID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return record.toRun(), nil
}

// ListRuns returns all stored runs, newest first.
func (s *DatabaseStore) ListRuns(ctx context.Context) ([]Run, error) {
	var records []runRecord
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	runs := make([]Run, 0, len(records))
	for _, record := range records {
		runs = append(runs, *record.toRun())
	}
	return runs, nil
}

// AppendResults adds results to an existing run.
func (s *DatabaseStore) AppendResults(ctx context.Context, runID string, results []evaluation.Result) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record runRecord
		if err := tx.First(&record, "id = ?", runID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load run: %w", err)
		}
		record.Results = append(record.Results, results...)
		return tx.Save(&record).Error
	})
}

// DeleteRun removes a run.
func (s *DatabaseStore) DeleteRun(ctx context.Context, runID string) error {
	result := s.db.WithContext(ctx).Delete(&runRecord{}, "id = ?", runID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *runRecord) toRun() *Run {
	return &Run{
		ID:        r.ID,
		Name:      r.Name,
		Passed:    r.Passed,
		CreatedAt: r.CreatedAt,
		Results:   []evaluation.Result(r.Results),
	}
}
