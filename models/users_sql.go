package models

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type sqlUserRepo struct{ db *sql.DB }

func NewSQLUserRepository(db *sql.DB) UserRepository { return &sqlUserRepo{db} }

// isUniqueViolation reports whether err is a Postgres duplicate-key error.
// The unique constraints are the authoritative backstop for duplicate emails
// and double registrations.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *sqlUserRepo) Create(u *User) error {
	err := r.db.QueryRow(
		`INSERT INTO users(name, email, password, role, is_approved, college_id)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at`,
		u.Name, u.Email, u.Password, u.Role, u.IsApproved, nullable(u.CollegeID),
	).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return ErrEmailExists
	}
	return err
}

const userColumns = `id, name, email, password, role, is_approved, COALESCE(college_id, ''), created_at`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsApproved, &u.CollegeID, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *sqlUserRepo) GetByEmail(email string) (User, error) {
	return scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *sqlUserRepo) GetByID(id int64) (User, error) {
	return scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *sqlUserRepo) UpdateProfile(id int64, name, collegeID string) (User, error) {
	return scanUser(r.db.QueryRow(
		`UPDATE users SET name=$2, college_id=$3 WHERE id=$1 RETURNING `+userColumns,
		id, name, nullable(collegeID)))
}

func (r *sqlUserRepo) UpdatePassword(id int64, passwordHash string) error {
	res, err := r.db.Exec(`UPDATE users SET password=$2 WHERE id=$1`, id, passwordHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqlUserRepo) SetApproval(id int64, approved bool) (User, error) {
	return scanUser(r.db.QueryRow(
		`UPDATE users SET is_approved=$2 WHERE id=$1 RETURNING `+userColumns,
		id, approved))
}

func (r *sqlUserRepo) ListOrganizers(approved bool) ([]User, error) {
	rows, err := r.db.Query(
		`SELECT `+userColumns+` FROM users WHERE role=$1 AND is_approved=$2 ORDER BY created_at DESC`,
		RoleOrganizer, approved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsApproved, &u.CollegeID, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *sqlUserRepo) CountByRole(role Role) (int64, error) {
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role=$1`, role).Scan(&n)
	return n, err
}
