package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meritoapp/merito/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// defaultInstitutions seeds the registration dropdown on a fresh database.
var defaultInstitutions = []struct {
	Name    string
	Address string
}{
	{"Universidade Federal de Minas Gerais", "Av. Antonio Carlos 6627, Belo Horizonte"},
	{"Pontificia Universidade Catolica de Minas Gerais", "Av. Dom Jose Gaspar 500, Belo Horizonte"},
	{"Universidade de Sao Paulo", "R. da Reitoria 374, Sao Paulo"},
}

const defaultAdminEmail = "admin@merito.app"

// CreateDefaultData seeds institutions and the admin account on first start.
// It is idempotent and safe to run on every boot.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	if err := seedInstitutions(ctx, db, lgr); err != nil {
		return err
	}
	return seedAdmin(ctx, db, lgr)
}

func seedInstitutions(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int64
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM institutions").Scan(&count); err != nil {
		return fmt.Errorf("failed to count institutions: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, inst := range defaultInstitutions {
		_, err := db.Exec(ctx,
			"INSERT INTO institutions (name, address) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING",
			inst.Name, inst.Address)
		if err != nil {
			return fmt.Errorf("failed to seed institution %q: %w", inst.Name, err)
		}
	}
	lgr.Info().Int("count", len(defaultInstitutions)).Msg("Default institutions created")
	return nil
}

func seedAdmin(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var exists bool
	err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE role = 'admin')").Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if exists {
		return nil
	}

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		password = "ChangeMe!123"
		lgr.Warn().Str("email", defaultAdminEmail).Msg("Seeding admin with the default password, change it immediately")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = db.Exec(ctx,
		"INSERT INTO users (email, password, role, is_active) VALUES ($1, $2, 'admin', TRUE)",
		defaultAdminEmail, hashed)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Admin account created")
	return nil
}
