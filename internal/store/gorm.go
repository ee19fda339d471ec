// Package store persists webinar sessions and their live flag.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mentorlink/webicast/internal/core"
	"github.com/mentorlink/webicast/internal/domain"
)

// WebinarModel is the GORM model for the webinars table. It mirrors the
// platform's webinar record; the signaling server only reads metadata and
// writes the live columns.
type WebinarModel struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	HostID      string `gorm:"type:varchar(36);index;not null"`
	ScheduledAt time.Time
	VideoType   string    `gorm:"type:varchar(20);not null;default:'live'"`
	IsLive      bool      `gorm:"index;not null;default:false"`
	LiveRoomID  *string   `gorm:"type:varchar(64)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (WebinarModel) TableName() string { return "webinars" }

func (m *WebinarModel) toDomain() *domain.Session {
	s := &domain.Session{
		ID:     domain.SessionID(m.ID),
		Title:  m.Title,
		HostID: domain.UserID(m.HostID),
		IsLive: m.IsLive,
	}
	if m.LiveRoomID != nil {
		s.LiveRoom = domain.RoomID(*m.LiveRoomID)
	}
	return s
}

// Config selects the database backend.
type Config struct {
	Driver string `mapstructure:"driver"` // mysql, sqlite
	DSN    string `mapstructure:"dsn"`
}

// Open connects to the configured database and migrates the webinars table.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&WebinarModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate webinars table: %w", err)
	}
	return db, nil
}

// GormSessionStore implements core.SessionStore over GORM, with an optional
// read-through cache in front of session lookups.
type GormSessionStore struct {
	db    *gorm.DB
	cache Cache
}

// NewGormSessionStore wraps db; cache may be nil.
func NewGormSessionStore(db *gorm.DB, cache Cache) *GormSessionStore {
	return &GormSessionStore{db: db, cache: cache}
}

func (s *GormSessionStore) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	if s.cache != nil {
		if sess, err := s.cache.Get(ctx, id); err == nil {
			return sess, nil
		} else if !errors.Is(err, ErrCacheMiss) {
			log.Warn().Err(err).Str("module", "store").Str("session", string(id)).Msg("cache read failed")
		}
	}

	var model WebinarModel
	result := s.db.WithContext(ctx).First(&model, "id = ?", string(id))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, core.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", result.Error)
	}

	sess := model.toDomain()
	if s.cache != nil {
		if err := s.cache.Set(ctx, sess); err != nil {
			log.Warn().Err(err).Str("module", "store").Str("session", string(id)).Msg("cache write failed")
		}
	}
	return sess, nil
}

func (s *GormSessionStore) IsLive(ctx context.Context, id domain.SessionID) (bool, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return false, err
	}
	return sess.IsLive, nil
}

func (s *GormSessionStore) MarkLive(ctx context.Context, id domain.SessionID, room domain.RoomID) error {
	return s.setLive(ctx, id, map[string]interface{}{
		"is_live":      true,
		"live_room_id": string(room),
	})
}

func (s *GormSessionStore) ClearLive(ctx context.Context, id domain.SessionID) error {
	return s.setLive(ctx, id, map[string]interface{}{
		"is_live":      false,
		"live_room_id": nil,
	})
}

func (s *GormSessionStore) setLive(ctx context.Context, id domain.SessionID, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&WebinarModel{}).
		Where("id = ?", string(id)).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update live state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return core.ErrSessionNotFound
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("module", "store").Str("session", string(id)).Msg("cache invalidation failed")
		}
	}
	return nil
}
