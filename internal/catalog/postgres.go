package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"printquote/internal/pricing"
	"printquote/pkg/redis"
)

const pqUniqueViolation = "23505"

type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Store reads catalog configuration (anchors, sheets, specs, rules)
// from Postgres with a Redis cache in front of the hot lookups, and
// carries the admin CRUD for anchor prices.
type Store struct {
	db     *sqlx.DB
	cache  *redis.Client
	logger *zap.Logger
}

func NewStore(ctx context.Context, cfg Config, cache *redis.Client, logger *zap.Logger) (*Store, error) {
	const operation = "catalog.NewStore"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &Store{
		db:     db,
		cache:  cache,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for migrations.
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

func anchorCacheKey(product, material, size string) string {
	return fmt.Sprintf("anchors:%s:%s:%s", product, material, size)
}

// AnchorTiers returns the quantity→price tier map for one
// (product, material, size) combination.
func (s *Store) AnchorTiers(ctx context.Context, product, material, size string) (map[int]float64, error) {
	cacheKey := anchorCacheKey(product, material, size)

	// Try Redis first
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var tiers map[int]float64
		if err := json.Unmarshal(cached, &tiers); err == nil {
			return tiers, nil
		}
	}

	const query = `
        SELECT anchor_qty, anchor_price
        FROM anchor_prices
        WHERE product_code = $1 AND material_code = $2 AND size_key = $3
        ORDER BY anchor_qty
    `

	rows, err := s.db.QueryxContext(ctx, query, product, material, size)
	if err != nil {
		return nil, fmt.Errorf("failed to get anchors: %w", err)
	}
	defer rows.Close()

	tiers := make(map[int]float64)
	for rows.Next() {
		var qty int
		var price float64
		if err := rows.Scan(&qty, &price); err != nil {
			return nil, fmt.Errorf("failed to scan anchor: %w", err)
		}
		tiers[qty] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read anchors: %w", err)
	}

	if len(tiers) == 0 {
		return nil, fmt.Errorf("anchors %s/%s/%s: %w", product, material, size, pricing.ErrNoPriceData)
	}

	// Cache the result
	if data, err := json.Marshal(tiers); err == nil {
		if err := s.cache.Set(ctx, cacheKey, data); err != nil {
			s.logger.Warn("Failed to cache anchors", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return tiers, nil
}

// ProductByCode returns the product family configuration, including
// its pricing mode.
func (s *Store) ProductByCode(ctx context.Context, code string) (Product, error) {
	const query = `
        SELECT code, name, pricing_mode, default_sheet_code, currency
        FROM products
        WHERE code = $1
    `

	var product Product
	if err := s.db.GetContext(ctx, &product, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, fmt.Errorf("product %s: %w", code, pricing.ErrNoPriceData)
		}
		return Product{}, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// SheetByCode returns one production sheet.
func (s *Store) SheetByCode(ctx context.Context, code string) (pricing.Sheet, error) {
	const query = `
        SELECT code, width_mm, height_mm, printable_width_mm, printable_height_mm
        FROM sheets
        WHERE code = $1
    `

	var row sheetRow
	if err := s.db.GetContext(ctx, &row, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.Sheet{}, fmt.Errorf("sheet %s: %w", code, pricing.ErrNoPriceData)
		}
		return pricing.Sheet{}, fmt.Errorf("failed to get sheet: %w", err)
	}

	return pricing.Sheet{
		Code:              row.Code,
		WidthMM:           row.WidthMM,
		HeightMM:          row.HeightMM,
		PrintableWidthMM:  row.PrintableWidthMM,
		PrintableHeightMM: row.PrintableHeightMM,
	}, nil
}

// SheetPriceFor returns the rate for one (sheet, print mode) pair.
func (s *Store) SheetPriceFor(ctx context.Context, sheetCode, printMode string) (pricing.SheetPrice, error) {
	const query = `
        SELECT sheet_code, print_mode, base_price_per_sheet, setup_fee
        FROM sheet_prices
        WHERE sheet_code = $1 AND print_mode = $2
    `

	var row sheetPriceRow
	if err := s.db.GetContext(ctx, &row, query, sheetCode, printMode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.SheetPrice{}, fmt.Errorf("sheet price %s/%s: %w", sheetCode, printMode, pricing.ErrNoPriceData)
		}
		return pricing.SheetPrice{}, fmt.Errorf("failed to get sheet price: %w", err)
	}

	return pricing.SheetPrice{
		SheetCode:         row.SheetCode,
		PrintMode:         row.PrintMode,
		BasePricePerSheet: row.BasePricePerSheet,
		SetupFee:          row.SetupFee,
	}, nil
}

// ProductSpecFor returns the finished-size spec for a product,
// preferring a size-specific row over the product-wide one.
func (s *Store) ProductSpecFor(ctx context.Context, product, size string) (pricing.ProductSpec, error) {
	const query = `
        SELECT product_code, size_key, finished_w_mm, finished_h_mm, bleed_mm, default_sheet_code
        FROM product_specs
        WHERE product_code = $1 AND (size_key = $2 OR size_key = '')
        ORDER BY size_key DESC
        LIMIT 1
    `

	var row productSpecRow
	if err := s.db.GetContext(ctx, &row, query, product, size); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.ProductSpec{}, fmt.Errorf("product spec %s/%s: %w", product, size, pricing.ErrNoPriceData)
		}
		return pricing.ProductSpec{}, fmt.Errorf("failed to get product spec: %w", err)
	}

	return pricing.ProductSpec{
		ProductCode:      row.ProductCode,
		FinishedWidthMM:  row.FinishedWidthMM,
		FinishedHeightMM: row.FinishedHeightMM,
		BleedMM:          row.BleedMM,
		DefaultSheetCode: row.DefaultSheetCode,
	}, nil
}

// SurchargeRulesFor returns the surcharge constants for one product
// family.
func (s *Store) SurchargeRulesFor(ctx context.Context, product string) (pricing.RuleSet, error) {
	const query = `
        SELECT product_code, heavy_paper, heavy_paper_fee,
               color_single, color_single_fee, color_double, color_double_fee,
               lamination_fee, min_price
        FROM surcharge_rules
        WHERE product_code = $1
    `

	var row surchargeRuleRow
	if err := s.db.GetContext(ctx, &row, query, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.RuleSet{}, fmt.Errorf("surcharge rules %s: %w", product, pricing.ErrNoPriceData)
		}
		return pricing.RuleSet{}, fmt.Errorf("failed to get surcharge rules: %w", err)
	}

	return pricing.RuleSet{
		HeavyPaper:     row.HeavyPaper,
		HeavyPaperFee:  row.HeavyPaperFee,
		ColorSingle:    row.ColorSingle,
		ColorSingleFee: row.ColorSingleFee,
		ColorDouble:    row.ColorDouble,
		ColorDoubleFee: row.ColorDoubleFee,
		LaminationFee:  row.LaminationFee,
		MinPrice:       row.MinPrice,
	}, nil
}

// Snapshot assembles everything the pricing engine needs for one
// quote. The engine treats the result as an immutable view of the
// catalog; concurrent admin edits are picked up by the next request.
func (s *Store) Snapshot(ctx context.Context, req pricing.Request) (pricing.Snapshot, error) {
	product, err := s.ProductByCode(ctx, req.Product)
	if err != nil {
		return pricing.Snapshot{}, err
	}

	rules, err := s.SurchargeRulesFor(ctx, req.Product)
	if err != nil {
		return pricing.Snapshot{}, err
	}

	snap := pricing.Snapshot{
		Mode:     pricing.PricingMode(product.PricingMode),
		Currency: product.Currency,
		Rules:    rules,
	}

	switch snap.Mode {
	case pricing.ModeAnchor:
		tiers, err := s.AnchorTiers(ctx, req.Product, req.Material, req.Size)
		if err != nil {
			return pricing.Snapshot{}, err
		}
		snap.AnchorTiers = tiers

	case pricing.ModeSheet:
		spec, err := s.ProductSpecFor(ctx, req.Product, req.Size)
		if err != nil {
			return pricing.Snapshot{}, err
		}

		sheetCode := spec.DefaultSheetCode
		if sheetCode == "" {
			sheetCode = product.DefaultSheetCode
		}

		sheet, err := s.SheetByCode(ctx, sheetCode)
		if err != nil {
			return pricing.Snapshot{}, err
		}

		price, err := s.SheetPriceFor(ctx, sheetCode, req.Color)
		if err != nil {
			return pricing.Snapshot{}, err
		}

		snap.Spec = spec
		snap.Sheet = sheet
		snap.SheetPrice = price
	}

	return snap, nil
}

// ListAnchors returns anchors matching the filter, newest tiers last.
func (s *Store) ListAnchors(ctx context.Context, filter AnchorFilter) ([]AnchorPrice, error) {
	query := `
        SELECT id, product_code, material_code, size_key, anchor_qty, anchor_price, currency, created_at
        FROM anchor_prices
        WHERE 1=1
    `
	var args []interface{}

	if filter.ProductCode != "" {
		args = append(args, filter.ProductCode)
		query += " AND product_code = $" + strconv.Itoa(len(args))
	}
	if filter.MaterialCode != "" {
		args = append(args, filter.MaterialCode)
		query += " AND material_code = $" + strconv.Itoa(len(args))
	}
	if filter.SizeKey != "" {
		args = append(args, filter.SizeKey)
		query += " AND size_key = $" + strconv.Itoa(len(args))
	}
	if filter.AnchorQty > 0 {
		args = append(args, filter.AnchorQty)
		query += " AND anchor_qty = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY product_code, material_code, size_key, anchor_qty"

	var anchors []AnchorPrice
	if err := s.db.SelectContext(ctx, &anchors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list anchors: %w", err)
	}

	return anchors, nil
}

// CreateAnchor inserts a new anchor price point.
func (s *Store) CreateAnchor(ctx context.Context, in AnchorInput) (*AnchorPrice, error) {
	const query = `
        INSERT INTO anchor_prices (product_code, material_code, size_key, anchor_qty, anchor_price, currency)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, product_code, material_code, size_key, anchor_qty, anchor_price, currency, created_at
    `

	currency := in.Currency
	if currency == "" {
		currency = "HUF"
	}

	var anchor AnchorPrice
	err := s.db.GetContext(ctx, &anchor, query,
		in.ProductCode,
		in.MaterialCode,
		in.SizeKey,
		in.AnchorQty,
		in.AnchorPrice,
		currency,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateAnchor
		}
		return nil, fmt.Errorf("failed to create anchor: %w", err)
	}

	s.invalidateAnchors(ctx, anchor.ProductCode, anchor.MaterialCode, anchor.SizeKey)
	return &anchor, nil
}

// UpdateAnchor rewrites an existing anchor price point.
func (s *Store) UpdateAnchor(ctx context.Context, id int64, in AnchorInput) (*AnchorPrice, error) {
	// Fetch the old key so a moved anchor invalidates both cache entries.
	var old AnchorPrice
	const getQuery = `
        SELECT id, product_code, material_code, size_key, anchor_qty, anchor_price, currency, created_at
        FROM anchor_prices
        WHERE id = $1
    `
	if err := s.db.GetContext(ctx, &old, getQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnchorNotFound
		}
		return nil, fmt.Errorf("failed to get anchor: %w", err)
	}

	const query = `
        UPDATE anchor_prices
        SET product_code = $1, material_code = $2, size_key = $3,
            anchor_qty = $4, anchor_price = $5, currency = $6
        WHERE id = $7
        RETURNING id, product_code, material_code, size_key, anchor_qty, anchor_price, currency, created_at
    `

	currency := in.Currency
	if currency == "" {
		currency = old.Currency
	}

	var anchor AnchorPrice
	err := s.db.GetContext(ctx, &anchor, query,
		in.ProductCode,
		in.MaterialCode,
		in.SizeKey,
		in.AnchorQty,
		in.AnchorPrice,
		currency,
		id,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateAnchor
		}
		return nil, fmt.Errorf("failed to update anchor: %w", err)
	}

	s.invalidateAnchors(ctx, old.ProductCode, old.MaterialCode, old.SizeKey)
	s.invalidateAnchors(ctx, anchor.ProductCode, anchor.MaterialCode, anchor.SizeKey)
	return &anchor, nil
}

// DeleteAnchor removes an anchor price point.
func (s *Store) DeleteAnchor(ctx context.Context, id int64) error {
	const query = `
        DELETE FROM anchor_prices
        WHERE id = $1
        RETURNING product_code, material_code, size_key
    `

	var product, material, size string
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&product, &material, &size); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAnchorNotFound
		}
		return fmt.Errorf("failed to delete anchor: %w", err)
	}

	s.invalidateAnchors(ctx, product, material, size)
	return nil
}

func (s *Store) invalidateAnchors(ctx context.Context, product, material, size string) {
	key := anchorCacheKey(product, material, size)
	if err := s.cache.Del(ctx, key); err != nil {
		s.logger.Warn("Failed to invalidate anchor cache", zap.String("key", key), zap.Error(err))
	}
}
