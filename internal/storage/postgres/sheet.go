package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/character"
)

// ErrSheetNotFound is returned when a character sheet lookup yields no results.
var ErrSheetNotFound = errors.New("character sheet not found")

// ErrSheetNameTaken is returned when creating a sheet with a name already in use.
var ErrSheetNameTaken = errors.New("character name already taken")

// SheetRepository provides character sheet persistence operations.
type SheetRepository struct {
	db *pgxpool.Pool
}

// NewSheetRepository creates a SheetRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSheetRepository(db *pgxpool.Pool) *SheetRepository {
	return &SheetRepository{db: db}
}

// Create inserts a new character sheet, assigning an ID when the sheet has none.
//
// Precondition: s.Name must be non-empty.
// Postcondition: Returns the created sheet with ID set, or ErrSheetNameTaken
// on a duplicate name.
func (r *SheetRepository) Create(ctx context.Context, s *character.Sheet) (*character.Sheet, error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	var out character.Sheet
	err := r.db.QueryRow(ctx, `
		INSERT INTO character_sheets
			(id, name, class, level, alignment,
			 strength, dexterity, constitution, intelligence, wisdom, charisma,
			 gold, max_hp, current_hp, max_mana, current_mana)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id, name, class, level, alignment,
		          strength, dexterity, constitution, intelligence, wisdom, charisma,
		          gold, max_hp, current_hp, max_mana, current_mana`,
		s.ID, s.Name, s.Class, s.Level, string(s.Alignment),
		s.Abilities.Strength, s.Abilities.Dexterity, s.Abilities.Constitution,
		s.Abilities.Intelligence, s.Abilities.Wisdom, s.Abilities.Charisma,
		s.Gold, s.MaxHP, s.CurrentHP, s.MaxMana, s.CurrentMana,
	).Scan(
		&out.ID, &out.Name, &out.Class, &out.Level, &out.Alignment,
		&out.Abilities.Strength, &out.Abilities.Dexterity, &out.Abilities.Constitution,
		&out.Abilities.Intelligence, &out.Abilities.Wisdom, &out.Abilities.Charisma,
		&out.Gold, &out.MaxHP, &out.CurrentHP, &out.MaxMana, &out.CurrentMana,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrSheetNameTaken
		}
		return nil, fmt.Errorf("inserting character sheet: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a character sheet by its primary key.
//
// Precondition: id must be non-empty.
// Postcondition: Returns the Sheet or ErrSheetNotFound.
func (r *SheetRepository) GetByID(ctx context.Context, id string) (*character.Sheet, error) {
	var s character.Sheet
	err := r.db.QueryRow(ctx, `
		SELECT id, name, class, level, alignment,
		       strength, dexterity, constitution, intelligence, wisdom, charisma,
		       gold, max_hp, current_hp, max_mana, current_mana
		FROM character_sheets WHERE id = $1`,
		id,
	).Scan(
		&s.ID, &s.Name, &s.Class, &s.Level, &s.Alignment,
		&s.Abilities.Strength, &s.Abilities.Dexterity, &s.Abilities.Constitution,
		&s.Abilities.Intelligence, &s.Abilities.Wisdom, &s.Abilities.Charisma,
		&s.Gold, &s.MaxHP, &s.CurrentHP, &s.MaxMana, &s.CurrentMana,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSheetNotFound
		}
		return nil, fmt.Errorf("querying character sheet: %w", err)
	}
	return &s, nil
}

// SaveState persists the mutable part of a sheet after engine operations:
// the gold balance and the current vital pools.
//
// Precondition: id must be non-empty.
// Postcondition: Returns nil on success, ErrSheetNotFound if no row updated.
func (r *SheetRepository) SaveState(ctx context.Context, s *character.Sheet) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE character_sheets
		SET gold = $2, current_hp = $3, current_mana = $4, updated_at = NOW()
		WHERE id = $1`,
		s.ID, s.Gold, s.CurrentHP, s.CurrentMana,
	)
	if err != nil {
		return fmt.Errorf("saving character sheet state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSheetNotFound
	}
	return nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
