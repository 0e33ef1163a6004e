package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/inventory"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/stats"
)

// Location kind discriminators stored in the item_instances table.
const (
	locPack      = "pack"
	locEquipped  = "equipped"
	locContainer = "container"
	locRoom      = "room"
)

// ErrUnknownTemplate is returned when a persisted row references a template
// ID that is not in the catalog.
var ErrUnknownTemplate = errors.New("unknown item template")

// InventoryRepository persists item instance locations and modifier ledger
// totals. The registry stays the single source of truth at runtime; this
// repository only checkpoints and restores it.
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates an InventoryRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// instanceRow is the flattened persisted form of an instance and its location.
type instanceRow struct {
	instanceID  string
	templateID  string
	kind        string
	characterID *string
	slot        *string
	containerID *string
	roomID      *string
	gold        int
	closed      bool
}

func encodeRow(il inventory.InstanceLocation) (instanceRow, error) {
	row := instanceRow{
		instanceID: il.Instance.ID,
		templateID: il.Instance.Template.ID,
		gold:       il.Instance.Gold,
		closed:     il.Instance.Closed,
	}
	loc := il.Location
	switch loc.Kind {
	case inventory.InPack:
		row.kind = locPack
		row.characterID = &loc.CharacterID
	case inventory.Equipped:
		row.kind = locEquipped
		row.characterID = &loc.CharacterID
		s := string(loc.Slot)
		row.slot = &s
	case inventory.InContainer:
		row.kind = locContainer
		row.containerID = &loc.ContainerID
	case inventory.InRoom:
		row.kind = locRoom
		row.roomID = &loc.RoomID
	default:
		return instanceRow{}, fmt.Errorf("invalid location kind %d for instance %q", loc.Kind, il.Instance.ID)
	}
	return row, nil
}

func decodeLocation(row instanceRow) (inventory.Location, error) {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	switch row.kind {
	case locPack:
		return inventory.PackLocation(deref(row.characterID)), nil
	case locEquipped:
		return inventory.SlotLocation(deref(row.characterID), inventory.Slot(deref(row.slot))), nil
	case locContainer:
		return inventory.ContainerLocation(deref(row.containerID)), nil
	case locRoom:
		return inventory.RoomLocation(deref(row.roomID)), nil
	default:
		return inventory.Location{}, fmt.Errorf("unknown location kind %q for instance %q", row.kind, row.instanceID)
	}
}

// SaveAll replaces the persisted instance set with a snapshot of the
// registry. The whole replacement runs in one transaction so readers never
// see a partial snapshot.
//
// Precondition: reg must pass CheckIntegrity.
func (r *InventoryRepository) SaveAll(ctx context.Context, reg *inventory.Registry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning inventory save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM item_instances`); err != nil {
		return fmt.Errorf("clearing item instances: %w", err)
	}

	for _, il := range reg.AllInstances() {
		row, err := encodeRow(il)
		if err != nil {
			return fmt.Errorf("encoding instance: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO item_instances
				(instance_id, template_id, location_kind, character_id, slot, container_id, room_id, gold, closed)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			row.instanceID, row.templateID, row.kind,
			row.characterID, row.slot, row.containerID, row.roomID,
			row.gold, row.closed,
		); err != nil {
			return fmt.Errorf("inserting instance %q: %w", row.instanceID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing inventory save: %w", err)
	}
	return nil
}

// LoadInto restores every persisted instance into reg, resolving templates
// through the catalog. Container contents are adopted only after their
// container, so arbitrary nesting restores correctly.
//
// Precondition: reg must be empty; cat must contain every referenced template.
// Postcondition: reg passes CheckIntegrity, or an error is returned.
func (r *InventoryRepository) LoadInto(ctx context.Context, reg *inventory.Registry, cat *inventory.Catalog) error {
	rows, err := r.db.Query(ctx, `
		SELECT instance_id, template_id, location_kind, character_id, slot, container_id, room_id, gold, closed
		FROM item_instances`)
	if err != nil {
		return fmt.Errorf("querying item instances: %w", err)
	}
	defer rows.Close()

	var records []instanceRow
	for rows.Next() {
		var row instanceRow
		if err := rows.Scan(
			&row.instanceID, &row.templateID, &row.kind,
			&row.characterID, &row.slot, &row.containerID, &row.roomID,
			&row.gold, &row.closed,
		); err != nil {
			return fmt.Errorf("scanning item instance row: %w", err)
		}
		records = append(records, row)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading item instance rows: %w", err)
	}

	// Adopt top-level instances first, then contained ones in dependency
	// order: a row inside a container becomes adoptable once its container
	// has been adopted.
	pending := records
	for len(pending) > 0 {
		var deferred []instanceRow
		progress := false
		for _, row := range pending {
			if row.kind == locContainer {
				if row.containerID == nil {
					return fmt.Errorf("inventory load: instance %q has container location but no container id", row.instanceID)
				}
				if _, ok := reg.Instance(*row.containerID); !ok {
					deferred = append(deferred, row)
					continue
				}
			}
			if err := r.adopt(reg, cat, row); err != nil {
				return err
			}
			progress = true
		}
		if !progress {
			return fmt.Errorf("inventory load: %d instances reference missing or cyclic containers", len(deferred))
		}
		pending = deferred
	}

	if err := reg.CheckIntegrity(); err != nil {
		return fmt.Errorf("inventory load: %w", err)
	}
	return nil
}

func (r *InventoryRepository) adopt(reg *inventory.Registry, cat *inventory.Catalog, row instanceRow) error {
	tmpl, ok := cat.Template(row.templateID)
	if !ok {
		return fmt.Errorf("%w: %q referenced by instance %q", ErrUnknownTemplate, row.templateID, row.instanceID)
	}
	loc, err := decodeLocation(row)
	if err != nil {
		return err
	}
	inst := &inventory.Instance{
		ID:       row.instanceID,
		Template: tmpl,
		Gold:     row.gold,
		Closed:   row.closed,
	}
	if err := reg.Adopt(inst, loc); err != nil {
		return fmt.Errorf("adopting instance %q: %w", row.instanceID, err)
	}
	return nil
}

// SaveLedger replaces the persisted modifier totals for one character.
//
// Precondition: characterID must be non-empty; totals come from Ledger.Totals.
func (r *InventoryRepository) SaveLedger(ctx context.Context, characterID string, totals map[stats.Kind]int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning ledger save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ledger_totals WHERE character_id = $1`, characterID); err != nil {
		return fmt.Errorf("clearing ledger totals: %w", err)
	}
	for kind, value := range totals {
		if value == 0 {
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO ledger_totals (character_id, kind, value) VALUES ($1, $2, $3)`,
			characterID, string(kind), value,
		); err != nil {
			return fmt.Errorf("inserting ledger total %s: %w", kind, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing ledger save: %w", err)
	}
	return nil
}

// LoadLedger reads the persisted modifier totals for one character.
//
// Postcondition: the returned map holds only non-zero totals; it is empty
// for characters with no persisted ledger.
func (r *InventoryRepository) LoadLedger(ctx context.Context, characterID string) (map[stats.Kind]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT kind, value FROM ledger_totals WHERE character_id = $1`, characterID)
	if err != nil {
		return nil, fmt.Errorf("querying ledger totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[stats.Kind]int)
	for rows.Next() {
		var kind string
		var value int
		if err := rows.Scan(&kind, &value); err != nil {
			return nil, fmt.Errorf("scanning ledger total row: %w", err)
		}
		k, err := stats.ParseKind(kind)
		if err != nil {
			return nil, fmt.Errorf("ledger total for %q: %w", characterID, err)
		}
		if value != 0 {
			totals[k] = value
		}
	}
	return totals, rows.Err()
}
