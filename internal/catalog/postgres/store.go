// Package postgres provides the Postgres-backed catalog store.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/supplementstack/internal/catalog"
	"example.com/supplementstack/internal/domain"
)

// Store loads the catalog from Postgres. Every Load reads items, tiers and
// archetypes inside one repeatable-read transaction so a snapshot never mixes
// two catalog versions.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const (
	selectItems = `SELECT item_id, name, brand, category, price_cents, evidence_level, study_count,
        vegan_safe, vegetarian_safe, dairy_free, gluten_free, COALESCE(substitute_id, ''), dosage, timing, rationale
        FROM catalog_items ORDER BY position, item_id`
	selectTiers      = `SELECT item_id, goal, tier FROM catalog_item_tiers`
	selectArchetypes = `SELECT archetype_id, name, age_min, age_max, gender, activity_levels, goals, budget_reference_cents, supplement_ids
        FROM archetypes ORDER BY position, archetype_id`
)

// Load implements catalog.Store.
func (s *Store) Load(ctx context.Context) (catalog.Data, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return catalog.Data{}, fmt.Errorf("begin catalog load: %w", err)
	}
	defer tx.Rollback(ctx)

	items, err := loadItems(ctx, tx)
	if err != nil {
		return catalog.Data{}, err
	}
	if err := loadTiers(ctx, tx, items); err != nil {
		return catalog.Data{}, err
	}
	archetypes, err := loadArchetypes(ctx, tx)
	if err != nil {
		return catalog.Data{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return catalog.Data{}, fmt.Errorf("commit catalog load: %w", err)
	}
	return catalog.Data{Items: items, Archetypes: archetypes}, nil
}

func loadItems(ctx context.Context, tx pgx.Tx) ([]domain.CatalogItem, error) {
	rows, err := tx.Query(ctx, selectItems)
	if err != nil {
		return nil, fmt.Errorf("query catalog items: %w", err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var (
			item     domain.CatalogItem
			price    int64
			evidence string
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Brand, &item.Category, &price, &evidence, &item.StudyCount,
			&item.Dietary.VeganSafe, &item.Dietary.VegetarianSafe, &item.Dietary.DairyFree, &item.Dietary.GlutenFree,
			&item.SubstituteID, &item.Dosage, &item.Timing, &item.Rationale); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		item.Price = domain.Cents(price)
		item.EvidenceLevel = domain.EvidenceLevel(evidence)
		item.Tiers = make(map[domain.Goal]domain.Tier)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog items: %w", err)
	}
	return items, nil
}

func loadTiers(ctx context.Context, tx pgx.Tx, items []domain.CatalogItem) error {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.ID] = i
	}

	rows, err := tx.Query(ctx, selectTiers)
	if err != nil {
		return fmt.Errorf("query catalog tiers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, goal, tier string
		if err := rows.Scan(&id, &goal, &tier); err != nil {
			return fmt.Errorf("scan catalog tier: %w", err)
		}
		if i, ok := index[id]; ok {
			items[i].Tiers[domain.Goal(goal)] = domain.Tier(tier)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate catalog tiers: %w", err)
	}
	return nil
}

func loadArchetypes(ctx context.Context, tx pgx.Tx) ([]domain.Archetype, error) {
	rows, err := tx.Query(ctx, selectArchetypes)
	if err != nil {
		return nil, fmt.Errorf("query archetypes: %w", err)
	}
	defer rows.Close()

	var out []domain.Archetype
	for rows.Next() {
		var (
			a                 domain.Archetype
			gender            string
			activities, goals []string
			budget            int64
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.AgeMin, &a.AgeMax, &gender, &activities, &goals, &budget, &a.SupplementIDs); err != nil {
			return nil, fmt.Errorf("scan archetype: %w", err)
		}
		a.Gender = domain.Gender(gender)
		a.BudgetReference = domain.Cents(budget)
		for _, level := range activities {
			a.ActivityLevels = append(a.ActivityLevels, domain.ActivityLevel(level))
		}
		for _, g := range goals {
			a.Goals = append(a.Goals, domain.Goal(g))
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archetypes: %w", err)
	}
	return out, nil
}

const (
	upsertItem = `INSERT INTO catalog_items (item_id, position, name, brand, category, price_cents, evidence_level, study_count,
        vegan_safe, vegetarian_safe, dairy_free, gluten_free, substitute_id, dosage, timing, rationale, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15, $16, NOW())
        ON CONFLICT (item_id) DO UPDATE SET position = EXCLUDED.position, name = EXCLUDED.name, brand = EXCLUDED.brand,
            category = EXCLUDED.category, price_cents = EXCLUDED.price_cents, evidence_level = EXCLUDED.evidence_level,
            study_count = EXCLUDED.study_count, vegan_safe = EXCLUDED.vegan_safe, vegetarian_safe = EXCLUDED.vegetarian_safe,
            dairy_free = EXCLUDED.dairy_free, gluten_free = EXCLUDED.gluten_free, substitute_id = EXCLUDED.substitute_id,
            dosage = EXCLUDED.dosage, timing = EXCLUDED.timing, rationale = EXCLUDED.rationale, updated_at = NOW()`
	deleteTiers = `DELETE FROM catalog_item_tiers WHERE item_id = $1`
	insertTier  = `INSERT INTO catalog_item_tiers (item_id, goal, tier) VALUES ($1, $2, $3)`
	upsertArch  = `INSERT INTO archetypes (archetype_id, position, name, age_min, age_max, gender, activity_levels, goals,
        budget_reference_cents, supplement_ids, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
        ON CONFLICT (archetype_id) DO UPDATE SET position = EXCLUDED.position, name = EXCLUDED.name,
            age_min = EXCLUDED.age_min, age_max = EXCLUDED.age_max, gender = EXCLUDED.gender,
            activity_levels = EXCLUDED.activity_levels, goals = EXCLUDED.goals,
            budget_reference_cents = EXCLUDED.budget_reference_cents, supplement_ids = EXCLUDED.supplement_ids, updated_at = NOW()`
)

// Seed upserts items and archetypes in one transaction. Slice order becomes
// catalog order. Existing rows not named are left in place.
func (s *Store) Seed(ctx context.Context, data catalog.Data) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin catalog seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	batch := &pgx.Batch{}
	for pos, item := range data.Items {
		batch.Queue(upsertItem, item.ID, pos, item.Name, item.Brand, item.Category, int64(item.Price), string(item.EvidenceLevel),
			item.StudyCount, item.Dietary.VeganSafe, item.Dietary.VegetarianSafe, item.Dietary.DairyFree, item.Dietary.GlutenFree,
			item.SubstituteID, item.Dosage, item.Timing, item.Rationale)
		batch.Queue(deleteTiers, item.ID)
		for goal, tier := range item.Tiers {
			if tier == domain.TierNone {
				continue
			}
			batch.Queue(insertTier, item.ID, string(goal), string(tier))
		}
	}
	for pos, a := range data.Archetypes {
		activities := make([]string, 0, len(a.ActivityLevels))
		for _, level := range a.ActivityLevels {
			activities = append(activities, string(level))
		}
		goals := make([]string, 0, len(a.Goals))
		for _, g := range a.Goals {
			goals = append(goals, string(g))
		}
		ids := a.SupplementIDs
		if ids == nil {
			ids = []string{}
		}
		batch.Queue(upsertArch, a.ID, pos, a.Name, a.AgeMin, a.AgeMax, string(a.Gender), activities, goals, int64(a.BudgetReference), ids)
	}

	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit catalog seed: %w", err)
	}
	return nil
}
