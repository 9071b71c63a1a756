// Package catalog serves equipment products and add-ons from Postgres with
// a Redis cache in front.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"quote-engine/internal/common/errors"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/common/metrics"
	"quote-engine/internal/models"
)

const productKeyPrefix = "product:"

// Catalog looks up products cache-aside: Redis first, Postgres on a miss,
// then backfill. A Redis outage degrades to Postgres-only lookups.
type Catalog struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func New(db *sql.DB, redisClient *redis.Client, cacheTTL time.Duration, log logger.Logger) *Catalog {
	return &Catalog{
		db:       db,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// Panel resolves a panel product id.
func (c *Catalog) Panel(ctx context.Context, id string) (*models.Product, error) {
	return c.product(ctx, id, models.ProductPanel)
}

// Inverter resolves an inverter product id.
func (c *Catalog) Inverter(ctx context.Context, id string) (*models.Product, error) {
	return c.product(ctx, id, models.ProductInverter)
}

// Battery resolves a battery product id.
func (c *Catalog) Battery(ctx context.Context, id string) (*models.Product, error) {
	return c.product(ctx, id, models.ProductBattery)
}

func (c *Catalog) product(ctx context.Context, id string, wantType models.ProductType) (*models.Product, error) {
	if id == "" {
		return nil, errors.NewUnknownProductError(id)
	}

	if cached := c.fromCache(ctx, id); cached != nil {
		if cached.Type != wantType {
			return nil, errors.NewUnknownProductError(id)
		}
		return cached, nil
	}

	product, err := c.fromDB(ctx, id)
	if err != nil {
		return nil, err
	}
	c.backfillCache(ctx, id, product)

	if product.Type != wantType {
		return nil, errors.NewUnknownProductError(id)
	}
	return product, nil
}

func (c *Catalog) fromCache(ctx context.Context, id string) *models.Product {
	if c.redis == nil {
		return nil
	}

	raw, err := c.redis.Get(ctx, productKeyPrefix+id).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warn("Catalog cache read failed", map[string]interface{}{
				"product_id": id,
			})
		}
		metrics.CatalogCacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	var product models.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		c.logger.WithError(err).Warn("Catalog cache entry corrupt", map[string]interface{}{
			"product_id": id,
		})
		metrics.CatalogCacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	metrics.CatalogCacheHits.WithLabelValues("hit").Inc()
	return &product
}

func (c *Catalog) fromDB(ctx context.Context, id string) (*models.Product, error) {
	var (
		product     models.Product
		wattage     sql.NullFloat64
		capacity    sql.NullFloat64
		rated       sql.NullFloat64
		tier        sql.NullString
		productType string
	)

	err := c.db.QueryRowContext(ctx, `
		SELECT id, name, manufacturer, product_type, wattage_w, capacity_kwh,
		       rated_kw, unit_price_cents, warranty_years, tier
		FROM products
		WHERE id = $1`, id).Scan(
		&product.ID, &product.Name, &product.Manufacturer, &productType,
		&wattage, &capacity, &rated, &product.UnitPriceCents,
		&product.WarrantyYears, &tier,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewUnknownProductError(id)
	}
	if err != nil {
		return nil, errors.NewCatalogUnavailableError(err)
	}

	product.Type = models.ProductType(productType)
	product.WattageW = wattage.Float64
	product.CapacityKwh = capacity.Float64
	product.RatedKw = rated.Float64
	product.Tier = tier.String
	return &product, nil
}

func (c *Catalog) backfillCache(ctx context.Context, id string, product *models.Product) {
	if c.redis == nil {
		return
	}

	payload, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, productKeyPrefix+id, payload, c.cacheTTL).Err(); err != nil {
		c.logger.WithError(err).Warn("Catalog cache write failed", map[string]interface{}{
			"product_id": id,
		})
	}
}

// Addons resolves add-on ids in one query. Any unknown id fails the lookup.
func (c *Catalog) Addons(ctx context.Context, ids []string) ([]models.Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, category, retail_price_cents, install_cost_cents
		FROM addons
		WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, errors.NewCatalogUnavailableError(err)
	}
	defer rows.Close()

	found := make(map[string]models.Addon, len(ids))
	for rows.Next() {
		var addon models.Addon
		if err := rows.Scan(&addon.ID, &addon.Name, &addon.Category,
			&addon.RetailPriceCents, &addon.InstallCostCents); err != nil {
			return nil, errors.NewCatalogUnavailableError(err)
		}
		found[addon.ID] = addon
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogUnavailableError(err)
	}

	out := make([]models.Addon, 0, len(ids))
	for _, id := range ids {
		addon, ok := found[id]
		if !ok {
			return nil, errors.NewUnknownProductError(id)
		}
		out = append(out, addon)
	}
	return out, nil
}
