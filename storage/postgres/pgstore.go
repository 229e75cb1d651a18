// Package pgstore implements the settings and connection stores on Postgres
// through a pgx pool.
package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	core "github.com/open-rails/sociallogin/core"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the tables when they are missing.
func Migrate(ctx context.Context, pg *pgxpool.Pool) error {
	if _, err := pg.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate sociallogin schema: %w", err)
	}
	return nil
}

// Settings is a core.BatchSettingsStore over the sociallogin_appconfig table.
type Settings struct {
	pg *pgxpool.Pool
}

func NewSettings(pg *pgxpool.Pool) *Settings { return &Settings{pg: pg} }

func (s *Settings) GetValue(ctx context.Context, namespace, key, def string) (string, error) {
	var v string
	err := s.pg.QueryRow(ctx,
		`SELECT configvalue FROM sociallogin_appconfig WHERE appid=$1 AND configkey=$2`,
		namespace, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return v, nil
}

const upsertSetting = `
	INSERT INTO sociallogin_appconfig (appid, configkey, configvalue)
	VALUES ($1, $2, $3)
	ON CONFLICT (appid, configkey) DO UPDATE SET configvalue=EXCLUDED.configvalue, updated_at=now()
`

func (s *Settings) SetValue(ctx context.Context, namespace, key, value string) error {
	_, err := s.pg.Exec(ctx, upsertSetting, namespace, key, value)
	return err
}

// SetValues upserts all settings in one transaction.
func (s *Settings) SetValues(ctx context.Context, namespace string, settings []core.Setting) error {
	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, st := range settings {
		if _, err := tx.Exec(ctx, upsertSetting, namespace, st.Key, st.Value); err != nil {
			return fmt.Errorf("%s: %w", st.Key, err)
		}
	}
	return tx.Commit(ctx)
}

// Connections is a core.ConnectionStore over the sociallogin_connect table.
type Connections struct {
	pg *pgxpool.Pool
}

func NewConnections(pg *pgxpool.Pool) *Connections { return &Connections{pg: pg} }

// Connect links login to userID. An identifier already linked to another
// user is moved.
func (c *Connections) Connect(ctx context.Context, userID, login string) error {
	_, err := c.pg.Exec(ctx, `
		INSERT INTO sociallogin_connect (uid, identifier)
		VALUES ($1, $2)
		ON CONFLICT (identifier) DO UPDATE SET uid=EXCLUDED.uid, created_at=now()
	`, userID, login)
	return err
}

func (c *Connections) ConnectedLogins(ctx context.Context, userID string) ([]string, error) {
	rows, err := c.pg.Query(ctx, `
		SELECT identifier FROM sociallogin_connect
		WHERE uid=$1
		ORDER BY created_at ASC, identifier ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var login string
		if err := rows.Scan(&login); err != nil {
			return nil, err
		}
		out = append(out, login)
	}
	return out, rows.Err()
}

func (c *Connections) DisconnectLogin(ctx context.Context, userID, login string) error {
	_, err := c.pg.Exec(ctx, `DELETE FROM sociallogin_connect WHERE uid=$1 AND identifier=$2`, userID, login)
	return err
}
