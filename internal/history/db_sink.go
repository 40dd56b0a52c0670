package history

import (
	"time"

	"gorm.io/gorm"

	"main/internal/schema"
	"main/pkg/conn"
)

// Record is the database row for one persisted entity snapshot.
type Record struct {
	ID        uint      `gorm:"primaryKey"`
	Kind      string    `gorm:"index;size:16"`
	RecordKey string    `gorm:"index;size:64"`
	At        time.Time `gorm:"index"`
	Body      string
}

func (Record) TableName() string { return "historical_records" }

// DBSink writes historical records into Postgres alongside the file sinks.
type DBSink struct {
	db *gorm.DB
}

// NewDBSink migrates the record table and returns a database sink.
func NewDBSink(client *conn.Client) (*DBSink, error) {
	db := client.DB()
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &DBSink{db: db}, nil
}

// Write inserts one record row.
func (s *DBSink) Write(kind schema.PersistKind, at time.Time, key, body string) error {
	return s.db.Create(&Record{
		Kind:      kind.String(),
		RecordKey: key,
		At:        at,
		Body:      body,
	}).Error
}

// TeeSink fans each record out to several sinks; the first error wins.
type TeeSink []Sink

func (t TeeSink) Write(kind schema.PersistKind, at time.Time, key, body string) error {
	for _, s := range t {
		if err := s.Write(kind, at, key, body); err != nil {
			return err
		}
	}
	return nil
}
