package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists profiles. Create must enforce uniqueness of the contact
// number atomically; callers never get to observe a partial write.
type Repository interface {
	Create(ctx context.Context, p Profile) error
	FindByID(ctx context.Context, id string) (Profile, error)
	FindByContact(ctx context.Context, contactNumber string) (Profile, error)
	All(ctx context.Context) ([]Profile, error)
}

const uniqueViolationCode = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed profile repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new profile. The UNIQUE constraint on contact_number maps
// to ErrDuplicateContact.
func (r *PostgresRepository) Create(ctx context.Context, p Profile) error {
	profileID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO profiles (id, full_name, contact_number, emergency_number, secret_hash, allow_emergency_call, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		profileID, p.FullName, p.ContactNumber, p.EmergencyNumber, p.SecretHash, p.AllowEmergencyCall, p.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateContact
	}
	return err
}

// FindByID fetches a profile by its identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Profile, error) {
	profileID, err := uuid.Parse(id)
	if err != nil {
		return Profile{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, full_name, contact_number, emergency_number, secret_hash, allow_emergency_call, created_at
        FROM profiles WHERE id = $1`, profileID)
	return scanProfile(row)
}

// FindByContact fetches a profile by its primary contact number.
func (r *PostgresRepository) FindByContact(ctx context.Context, contactNumber string) (Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT id, full_name, contact_number, emergency_number, secret_hash, allow_emergency_call, created_at
        FROM profiles WHERE contact_number = $1`, contactNumber)
	return scanProfile(row)
}

// All returns every profile in insertion order.
func (r *PostgresRepository) All(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT id, full_name, contact_number, emergency_number, secret_hash, allow_emergency_call, created_at
        FROM profiles ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func scanProfile(row pgx.Row) (Profile, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		p         Profile
	)
	if err := row.Scan(&id, &p.FullName, &p.ContactNumber, &p.EmergencyNumber, &p.SecretHash, &p.AllowEmergencyCall, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	p.ID = id.String()
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
