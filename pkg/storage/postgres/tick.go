package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/danielyekini/moodswing-trading/internal/market/series"

	"gorm.io/gorm/clause"
)

func (p *PostgresClient) InsertTick(ctx context.Context, record *TickRecord) error {
	tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "ticker"},
			{Name: "time"},
		},
		DoNothing: true,
	}).Create(record)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return fmt.Errorf(
			"duplicate tick skipped: ticker=%s time=%s",
			record.Ticker,
			record.Time.Format(time.RFC3339),
		)
	}

	return nil
}

func (p *PostgresClient) GetTicksSince(ctx context.Context, ticker string, since time.Time) ([]TickRecord, error) {
	var ticks []TickRecord
	err := p.DB.WithContext(ctx).
		Where("ticker = ? AND time >= ?", ticker, since).
		Order("time asc").
		Find(&ticks).Error

	if err != nil {
		return nil, err
	}
	return ticks, nil
}

func (p *PostgresClient) DeleteOldTicks(ctx context.Context, before time.Time) error {
	return p.DB.WithContext(ctx).
		Where("time < ?", before).
		Delete(&TickRecord{}).Error
}

// ToTickRecord converts a live tick and its ticker into a TickRecord for DB insertion.
func ToTickRecord(ticker string, t series.Tick) *TickRecord {
	return &TickRecord{
		Ticker: ticker,
		Time:   t.Time,
		Price:  t.Price,
	}
}
