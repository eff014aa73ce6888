package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

type sqlRegistrationRepo struct{ db *sql.DB }

func NewSQLRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &sqlRegistrationRepo{db}
}

func (r *sqlRegistrationRepo) Create(reg *Registration) error {
	var participants any
	if reg.Participants != nil {
		b, err := json.Marshal(reg.Participants)
		if err != nil {
			return fmt.Errorf("encode participants: %w", err)
		}
		participants = b
	}

	err := r.db.QueryRow(
		`INSERT INTO registrations(user_id, event_id, is_team, team_name, participants)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`,
		reg.UserID, reg.EventID, reg.IsTeam, nullable(reg.TeamName), participants,
	).Scan(&reg.ID, &reg.CreatedAt)
	// UNIQUE(user_id, event_id) closes the pre-check race: two concurrent
	// inserts for the same pair collapse into one caller-facing error.
	if isUniqueViolation(err) {
		return ErrAlreadyRegistered
	}
	return err
}

func (r *sqlRegistrationRepo) Exists(userID int64, eventID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM registrations WHERE user_id=$1 AND event_id=$2)`,
		userID, eventID).Scan(&exists)
	return exists, err
}

// DeleteOwned removes a registration only when it belongs to userID. The
// ownership check lives in the WHERE clause, so a foreign id deletes nothing.
func (r *sqlRegistrationRepo) DeleteOwned(id, userID int64) error {
	res, err := r.db.Exec(`DELETE FROM registrations WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

const registrationColumns = `id, user_id, event_id, is_team, COALESCE(team_name, ''), participants, created_at`

func scanRegistrations(rows *sql.Rows) ([]Registration, error) {
	out := []Registration{}
	for rows.Next() {
		var reg Registration
		var participants []byte
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.IsTeam, &reg.TeamName, &participants, &reg.CreatedAt); err != nil {
			return nil, err
		}
		if len(participants) > 0 {
			if err := json.Unmarshal(participants, &reg.Participants); err != nil {
				return nil, fmt.Errorf("decode participants: %w", err)
			}
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *sqlRegistrationRepo) ListByUser(userID int64) ([]Registration, error) {
	rows, err := r.db.Query(
		`SELECT `+registrationColumns+` FROM registrations WHERE user_id=$1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func (r *sqlRegistrationRepo) ListByEvent(eventID string) ([]Registration, error) {
	rows, err := r.db.Query(
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id=$1 ORDER BY created_at DESC`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func (r *sqlRegistrationRepo) CountByEvent(eventID string) (int64, error) {
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM registrations WHERE event_id=$1`, eventID).Scan(&n)
	return n, err
}

func (r *sqlRegistrationRepo) Count() (int64, error) {
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM registrations`).Scan(&n)
	return n, err
}
