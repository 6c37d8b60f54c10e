package mirror

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MirrorRecord is one mirrored entity row in the remote store.
type MirrorRecord struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Table     string `gorm:"column:table_name;type:varchar(50);not null;uniqueIndex:idx_mirror_table_entity"`
	EntityID  string `gorm:"type:varchar(64);not null;uniqueIndex:idx_mirror_table_entity"`
	Payload   string `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MirrorRecord) TableName() string {
	return "mirror_records"
}

// GormGateway implements the Gateway contract against a postgres remote store.
type GormGateway struct {
	DB *gorm.DB
}

func NewGormGateway(dsn string) (*GormGateway, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&MirrorRecord{}); err != nil {
		return nil, err
	}
	return &GormGateway{DB: db}, nil
}

func (g *GormGateway) Fetch(ctx context.Context, table string) []json.RawMessage {
	var records []MirrorRecord
	err := g.DB.WithContext(ctx).
		Where("table_name = ?", table).
		Order("entity_id").
		Find(&records).Error
	if err != nil {
		return []json.RawMessage{}
	}

	out := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		out = append(out, json.RawMessage(rec.Payload))
	}
	return out
}

func (g *GormGateway) Create(ctx context.Context, table, id string, payload json.RawMessage) bool {
	rec := MirrorRecord{Table: table, EntityID: id, Payload: string(payload)}
	err := g.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "table_name"}, {Name: "entity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&rec).Error
	return err == nil
}

func (g *GormGateway) Update(ctx context.Context, table, id string, payload json.RawMessage) bool {
	// Mirrored mutations upsert: the remote row may not exist yet if an earlier
	// create was dropped.
	return g.Create(ctx, table, id, payload)
}

func (g *GormGateway) Delete(ctx context.Context, table, id string) bool {
	err := g.DB.WithContext(ctx).
		Where("table_name = ? AND entity_id = ?", table, id).
		Delete(&MirrorRecord{}).Error
	return err == nil
}
