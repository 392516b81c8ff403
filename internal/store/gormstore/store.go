package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"stockpilot/internal/decision"
	"stockpilot/internal/news"
)

type recommendationModel struct {
	ID        uint   `gorm:"primaryKey"`
	TraceID   string `gorm:"column:trace_id;uniqueIndex"`
	Ticker    string `gorm:"index"`
	Action    string
	Rationale string
	News      datatypes.JSON
	LatencyMS int64
	CreatedAt time.Time `gorm:"index"`
}

func (recommendationModel) TableName() string { return "recommendations" }

type newsEntry struct {
	Headline    string    `json:"headline"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Store is the recommendation audit log: completed analyses only, written
// after the fact and read by the HTTP API. The decision pipeline itself
// never consults it.
type Store struct {
	db *gorm.DB
}

func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("gormstore: path cannot be empty")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	// Route gorm through the registered pure-Go sqlite driver; no cgo needed.
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&recommendationModel{}); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite + WAL: a little parallelism for concurrent HTTP reads while
	// keeping lock contention low.
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(2)
	return &Store{db: db}, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) Save(ctx context.Context, rec decision.Recommendation, digest news.Digest, latency time.Duration) error {
	entries := make([]newsEntry, 0, len(digest.Items))
	for _, it := range digest.Items {
		entries = append(entries, newsEntry{
			Headline:    it.Headline,
			Source:      it.Source,
			URL:         it.URL,
			PublishedAt: it.PublishedAt,
		})
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	row := recommendationModel{
		TraceID:   rec.TraceID,
		Ticker:    rec.Ticker,
		Action:    string(rec.Action),
		Rationale: rec.Rationale,
		News:      datatypes.JSON(blob),
		LatencyMS: latency.Milliseconds(),
		CreatedAt: rec.GeneratedAt,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// ListRecent returns the newest recommendations, optionally filtered by
// ticker.
func (s *Store) ListRecent(ctx context.Context, ticker string, limit int) ([]decision.Recommendation, error) {
	if limit <= 0 {
		limit = 20
	}
	q := s.db.WithContext(ctx).Model(&recommendationModel{}).Order("created_at DESC").Limit(limit)
	if ticker = strings.ToUpper(strings.TrimSpace(ticker)); ticker != "" {
		q = q.Where("ticker = ?", ticker)
	}
	var rows []recommendationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]decision.Recommendation, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRecommendation(row))
	}
	return out, nil
}

func (s *Store) GetByTraceID(ctx context.Context, traceID string) (decision.Recommendation, bool, error) {
	var row recommendationModel
	err := s.db.WithContext(ctx).Where("trace_id = ?", traceID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decision.Recommendation{}, false, nil
	}
	if err != nil {
		return decision.Recommendation{}, false, err
	}
	return toRecommendation(row), true, nil
}

func toRecommendation(row recommendationModel) decision.Recommendation {
	return decision.Recommendation{
		TraceID:     row.TraceID,
		Ticker:      row.Ticker,
		Action:      decision.Action(row.Action),
		Rationale:   row.Rationale,
		GeneratedAt: row.CreatedAt,
	}
}
