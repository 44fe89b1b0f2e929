package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"statusplay/internal/models"
)

// Client records court occupancy samples in ClickHouse and answers
// aggregate questions over them. Production only; development runs use
// the in-memory mock.
type Client struct {
	conn driver.Conn
}

// NewClient connects to ClickHouse and ensures the occupancy table exists
func NewClient(addr, database, username, password string) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	ddl := `
		CREATE TABLE IF NOT EXISTS court_occupancy (
			ts            DateTime,
			total         Int32,
			available     Int32,
			indoor_total  Int32,
			outdoor_total Int32
		)
		ENGINE = MergeTree()
		ORDER BY ts
		TTL ts + INTERVAL 90 DAY
	`
	if err := conn.Exec(context.Background(), ddl); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create occupancy table: %w", err)
	}

	return &Client{conn: conn}, nil
}

// RecordOccupancy stores one court occupancy sample taken from a snapshot
func (c *Client) RecordOccupancy(ctx context.Context, cs models.CourtStatus) error {
	query := `
		INSERT INTO court_occupancy (ts, total, available, indoor_total, outdoor_total)
		VALUES ($1, $2, $3, $4, $5)
	`
	return c.conn.Exec(ctx, query,
		time.Now().UTC(), int32(cs.Total), int32(cs.Available),
		int32(cs.Indoor.Total), int32(cs.Outdoor.Total))
}

// PeakHour returns the hour of day (0-23) with the highest average number
// of booked courts over the last 30 days
func (c *Client) PeakHour(ctx context.Context) (int, error) {
	var hour uint8

	query := `
		SELECT toHour(ts) AS hour
		FROM court_occupancy
		WHERE ts >= now() - INTERVAL 30 DAY
		GROUP BY hour
		ORDER BY avg(total - available) DESC
		LIMIT 1
	`

	row := c.conn.QueryRow(ctx, query)
	if err := row.Scan(&hour); err != nil {
		return 0, err
	}

	return int(hour), nil
}

// PeakNote formats the peak-hour finding for display on the rankings view
func (c *Client) PeakNote(ctx context.Context) (string, error) {
	hour, err := c.PeakHour(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Courts are busiest around %02d:00. Book early.", hour), nil
}

// Close closes the ClickHouse connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
