package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/meur/cs2hub/internal/models"
)

// SkinQuery narrows the skin listing. Zero values mean "no filter".
type SkinQuery struct {
	Rarity   models.Rarity
	Weapon   string // Case-insensitive substring
	MinPrice *int64
	MaxPrice *int64
}

const skinColumns = `id, name, weapon, rarity, wear, price, image_url, float_value, owner_name, is_available, stickers`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSkin(row rowScanner) (models.Skin, error) {
	var sk models.Skin
	var rarity, stickers string
	err := row.Scan(&sk.ID, &sk.Name, &sk.Weapon, &rarity, &sk.Wear, &sk.Price,
		&sk.ImageURL, &sk.FloatValue, &sk.OwnerName, &sk.IsAvailable, &stickers)
	if err != nil {
		return sk, err
	}
	sk.Rarity = models.Rarity(rarity)
	json.Unmarshal([]byte(stickers), &sk.Stickers)
	if len(sk.Stickers) == 0 {
		sk.Stickers = nil
	}
	return sk, nil
}

func encodeStickers(stickers []string) string {
	if len(stickers) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(stickers)
	return string(b)
}

// --- Skins ---

// ListSkins returns available skins matching q, most expensive first
func (s *Store) ListSkins(ctx context.Context, q SkinQuery) ([]models.Skin, error) {
	conds := []string{"is_available = 1"}
	args := []interface{}{}

	if q.Rarity != "" {
		conds = append(conds, "rarity = ?")
		args = append(args, string(q.Rarity))
	}
	if q.Weapon != "" {
		conds = append(conds, "weapon LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(q.Weapon)+"%")
	}
	if q.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *q.MaxPrice)
	}

	query := `SELECT ` + skinColumns + ` FROM skins WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY price DESC, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query skins")
	}
	defer rows.Close()

	skins := []models.Skin{}
	for rows.Next() {
		sk, err := scanSkin(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan skin")
		}
		skins = append(skins, sk)
	}
	return skins, rows.Err()
}

// GetSkin returns a skin by ID regardless of availability
func (s *Store) GetSkin(ctx context.Context, id string) (*models.Skin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+skinColumns+` FROM skins WHERE id = ?`, id)
	sk, err := scanSkin(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get skin")
	}
	return &sk, nil
}

// CreateSkin stores a new available skin and returns its generated ID
func (s *Store) CreateSkin(ctx context.Context, d models.SkinDraft) (string, error) {
	id := uuid.New().String()
	owner := d.OwnerName
	if owner == "" {
		owner = models.DefaultOwner
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO skins (id, name, weapon, rarity, wear, price, image_url, float_value, owner_name, stickers, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, d.Name, d.Weapon, string(d.Rarity), d.Wear, d.Price, d.ImageURL, d.FloatValue,
		owner, encodeStickers(d.Stickers), now, now)
	if err != nil {
		return "", errors.Wrap(err, "insert skin")
	}
	return id, nil
}

// UpdateSkin replaces every mutable field of an available skin. Availability is left as is.
// It reports false when no available skin has that ID.
func (s *Store) UpdateSkin(ctx context.Context, sk models.Skin) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE skins
		SET name = ?, weapon = ?, rarity = ?, wear = ?, price = ?, image_url = ?,
			float_value = ?, owner_name = ?, stickers = ?, updated_at = ?
		WHERE id = ? AND is_available = 1
	`, sk.Name, sk.Weapon, string(sk.Rarity), sk.Wear, sk.Price, sk.ImageURL,
		sk.FloatValue, sk.OwnerName, encodeStickers(sk.Stickers), time.Now().UTC(), sk.ID)
	if err != nil {
		return false, errors.Wrap(err, "update skin")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "update skin")
	}
	return n > 0, nil
}

// DeleteSkin withdraws a skin from the listing. The row is kept so trade history stays intact.
func (s *Store) DeleteSkin(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE skins SET is_available = 0, updated_at = ? WHERE id = ? AND is_available = 1`,
		time.Now().UTC(), id)
	if err != nil {
		return false, errors.Wrap(err, "delete skin")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "delete skin")
	}
	return n > 0, nil
}

// BulkCreateSkins creates multiple skins in a transaction. Skins without an ID get one.
func (s *Store) BulkCreateSkins(ctx context.Context, skins []models.Skin) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO skins (id, name, weapon, rarity, wear, price, image_url, float_value, owner_name, is_available, stickers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sk := range skins {
		if sk.ID == "" {
			sk.ID = uuid.New().String()
		}
		if sk.OwnerName == "" {
			sk.OwnerName = models.DefaultOwner
		}
		_, err := stmt.ExecContext(ctx, sk.ID, sk.Name, sk.Weapon, string(sk.Rarity), sk.Wear,
			sk.Price, sk.ImageURL, sk.FloatValue, sk.OwnerName, sk.IsAvailable, encodeStickers(sk.Stickers))
		if err != nil {
			return errors.Wrapf(err, "insert skin %q", sk.Name)
		}
	}

	return tx.Commit()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
