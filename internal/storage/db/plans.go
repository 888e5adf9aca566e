package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DonovanMods/modkit/internal/domain"
)

// SavePlan records a resolved plan and sets its ID and CreatedAt
func (d *DB) SavePlan(plan *domain.Plan) error {
	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.Exec(`
		INSERT INTO plans (game_id, mod_name, archive, created_at)
		VALUES (?, ?, ?, ?)
	`, plan.GameID, plan.ModName, plan.Archive, now)
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting plan id: %w", err)
	}

	for pos, inst := range plan.Instructions {
		var value *string
		if inst.Value != nil {
			data, err := json.Marshal(inst.Value)
			if err != nil {
				return fmt.Errorf("encoding attribute %s: %w", inst.Key, err)
			}
			s := string(data)
			value = &s
		}

		if _, err := tx.Exec(`
			INSERT INTO plan_instructions (plan_id, position, type, source, destination, key, value)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, pos, string(inst.Type), inst.Source, inst.Destination, inst.Key, value); err != nil {
			return fmt.Errorf("saving instruction %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing plan: %w", err)
	}

	plan.ID = id
	plan.CreatedAt = now
	return nil
}

// GetPlan returns a recorded plan with its instructions
func (d *DB) GetPlan(id int64) (*domain.Plan, error) {
	var plan domain.Plan
	err := d.QueryRow(`
		SELECT id, game_id, mod_name, archive, created_at
		FROM plans WHERE id = ?
	`, id).Scan(&plan.ID, &plan.GameID, &plan.ModName, &plan.Archive, &plan.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	instructions, err := d.planInstructions(id)
	if err != nil {
		return nil, err
	}
	plan.Instructions = instructions

	return &plan, nil
}

// ListPlans returns recorded plans, newest first, without instructions.
// An empty gameID lists plans for every game.
func (d *DB) ListPlans(gameID string) ([]domain.Plan, error) {
	rows, err := d.Query(`
		SELECT id, game_id, mod_name, archive, created_at
		FROM plans
		WHERE ? = '' OR game_id = ?
		ORDER BY id DESC
	`, gameID, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		var plan domain.Plan
		if err := rows.Scan(&plan.ID, &plan.GameID, &plan.ModName, &plan.Archive, &plan.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

// DeletePlan removes a recorded plan and its instructions
func (d *DB) DeletePlan(id int64) error {
	result, err := d.Exec("DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrPlanNotFound
	}

	return nil
}

// PlansInstalling returns the IDs of plans for gameID that copy to destination
func (d *DB) PlansInstalling(gameID, destination string) ([]int64, error) {
	rows, err := d.Query(`
		SELECT DISTINCT p.id
		FROM plans p
		JOIN plan_instructions i ON i.plan_id = p.id
		WHERE p.game_id = ? AND i.type = ? AND i.destination = ?
		ORDER BY p.id
	`, gameID, string(domain.InstructionCopy), destination)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning plan id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (d *DB) planInstructions(planID int64) ([]domain.Instruction, error) {
	rows, err := d.Query(`
		SELECT type, source, destination, key, value
		FROM plan_instructions
		WHERE plan_id = ?
		ORDER BY position
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying instructions: %w", err)
	}
	defer rows.Close()

	instructions := []domain.Instruction{}
	for rows.Next() {
		var (
			inst                     domain.Instruction
			typ                      string
			source, destination, key sql.NullString
			value                    *string
		)
		if err := rows.Scan(&typ, &source, &destination, &key, &value); err != nil {
			return nil, fmt.Errorf("scanning instruction: %w", err)
		}
		inst.Type = domain.InstructionType(typ)
		inst.Source = source.String
		inst.Destination = destination.String
		inst.Key = key.String
		if value != nil {
			if err := json.Unmarshal([]byte(*value), &inst.Value); err != nil {
				return nil, fmt.Errorf("decoding attribute %s: %w", inst.Key, err)
			}
		}
		instructions = append(instructions, inst)
	}

	return instructions, rows.Err()
}
