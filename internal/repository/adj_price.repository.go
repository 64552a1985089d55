package repository

import (
	"context"
	"database/sql"
	"fmt"
	"growthprojection/internal/domain"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"

	dateLayout = "2006-01-02"
)

const adjustedPriceSchema = `
CREATE TABLE IF NOT EXISTS adjusted_price (
    symbol     TEXT             NOT NULL,
    date       TEXT             NOT NULL,
    price      DOUBLE PRECISION NOT NULL,
    created_at TEXT             NOT NULL,
    PRIMARY KEY (symbol, date)
);
`

// AdjustedPriceRepository persists daily adjusted closes so repeat
// projections don't go back to the upstream source
type AdjustedPriceRepository interface {
	Migrate(ctx context.Context) error
	Add(ctx context.Context, prices []domain.AssetPrice) error
	List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error)
	ListSymbols(ctx context.Context) ([]string, error)
}

type adjustedPriceRepositoryHandler struct {
	Db     *sql.DB
	Driver string
}

func NewAdjustedPriceRepository(db *sql.DB, driver string) AdjustedPriceRepository {
	return adjustedPriceRepositoryHandler{
		Db:     db,
		Driver: driver,
	}
}

// OpenPriceDb opens the price store with either the embedded sqlite driver
// or postgres
func OpenPriceDb(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSqlite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported price db driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s price db: %w", driver, err)
	}
	if driver == DriverSqlite {
		// single writer
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	return db, nil
}

// rebind converts ? placeholders to $n for postgres
func (h adjustedPriceRepositoryHandler) rebind(query string) string {
	if h.Driver != DriverPostgres {
		return query
	}
	sb := strings.Builder{}
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (h adjustedPriceRepositoryHandler) Migrate(ctx context.Context) error {
	if _, err := h.Db.ExecContext(ctx, adjustedPriceSchema); err != nil {
		return fmt.Errorf("failed to apply adjusted_price schema: %w", err)
	}
	return nil
}

func (h adjustedPriceRepositoryHandler) Add(ctx context.Context, prices []domain.AssetPrice) error {
	if len(prices) == 0 {
		return nil
	}

	tx, err := h.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, h.rebind(`
		INSERT INTO adjusted_price (symbol, date, price, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (symbol, date) DO UPDATE SET
			price = excluded.price
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare adjusted price upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range prices {
		if _, err := stmt.ExecContext(ctx, p.Symbol, p.Date.UTC().Format(dateLayout), p.Price, now); err != nil {
			return fmt.Errorf("failed to upsert price for %s on %s: %w", p.Symbol, p.Date.Format(dateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit adjusted prices: %w", err)
	}
	return nil
}

// List returns prices for symbol in [start, end], ordered by date
func (h adjustedPriceRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	rows, err := h.Db.QueryContext(ctx, h.rebind(`
		SELECT date, price
		FROM adjusted_price
		WHERE symbol = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`), symbol, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query prices for %s: %w", symbol, err)
	}
	defer rows.Close()

	out := []domain.AssetPrice{}
	for rows.Next() {
		var dateStr string
		var price float64
		if err := rows.Scan(&dateStr, &price); err != nil {
			return nil, fmt.Errorf("failed to scan price row for %s: %w", symbol, err)
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored date %q for %s: %w", dateStr, symbol, err)
		}
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Date:   date,
			Price:  price,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prices for %s: %w", symbol, err)
	}

	return out, nil
}

func (h adjustedPriceRepositoryHandler) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := h.Db.QueryContext(ctx, `SELECT DISTINCT symbol FROM adjusted_price ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored symbols: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		out = append(out, symbol)
	}
	return out, rows.Err()
}
