package postgres

import "time"

// TickRecord is one applied live tick archived for later inspection. The
// in-memory series is never restored from here; this is an audit trail only.
type TickRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index
	Ticker string    `gorm:"type:text;not null;index:idx_tick_ticker;index:idx_ticker_time,unique"`
	Time   time.Time `gorm:"not null;index:idx_ticker_time,unique"`

	Price float64 `gorm:"type:numeric;not null"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (TickRecord) TableName() string {
	return "tick_record"
}
