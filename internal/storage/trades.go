package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/meur/cs2hub/internal/models"
)

// TradeQuery narrows the trade listing
type TradeQuery struct {
	User   string // Matches either side of the offer; empty lists everyone's offers
	Status models.TradeStatus
}

// recentTradesLimit caps the listing when no user is given
const recentTradesLimit = 50

const tradeSelect = `
	SELECT t.id, t.from_user, t.to_user, t.offered_skin_id, t.requested_skin_id,
		t.message, t.status, t.created_at, t.updated_at,
		os.name, os.weapon, os.image_url, os.price,
		rs.name, rs.weapon, rs.image_url, rs.price
	FROM trade_offers t
	JOIN skins os ON t.offered_skin_id = os.id
	JOIN skins rs ON t.requested_skin_id = rs.id`

// ErrUnknownSkin is returned when a trade references a skin that does not exist
var ErrUnknownSkin = errors.New("trade references an unknown skin")

// --- Trades ---

// ListTrades returns trade offers in the given status, newest first
func (s *Store) ListTrades(ctx context.Context, q TradeQuery) ([]models.TradeOffer, error) {
	status := q.Status
	if status == "" {
		status = models.TradePending
	}

	var rows *sql.Rows
	var err error
	if q.User != "" {
		rows, err = s.db.QueryContext(ctx, tradeSelect+`
			WHERE (t.from_user = ? OR t.to_user = ?) AND t.status = ?
			ORDER BY t.created_at DESC`, q.User, q.User, string(status))
	} else {
		rows, err = s.db.QueryContext(ctx, tradeSelect+`
			WHERE t.status = ?
			ORDER BY t.created_at DESC
			LIMIT ?`, string(status), recentTradesLimit)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query trades")
	}
	defer rows.Close()

	trades := []models.TradeOffer{}
	for rows.Next() {
		var t models.TradeOffer
		var status string
		err := rows.Scan(&t.ID, &t.FromUser, &t.ToUser, &t.OfferedSkinID, &t.RequestedSkinID,
			&t.Message, &status, &t.CreatedAt, &t.UpdatedAt,
			&t.OfferedSkinName, &t.OfferedWeapon, &t.OfferedImage, &t.OfferedPrice,
			&t.RequestedSkinName, &t.RequestedWeapon, &t.RequestedImage, &t.RequestedPrice)
		if err != nil {
			return nil, errors.Wrap(err, "scan trade")
		}
		t.Status = models.TradeStatus(status)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// CreateTrade stores a pending trade offer and returns its ID
func (s *Store) CreateTrade(ctx context.Context, tc models.TradeCreate) (string, error) {
	for _, skinID := range []string{tc.OfferedSkinID, tc.RequestedSkinID} {
		sk, err := s.GetSkin(ctx, skinID)
		if err != nil {
			return "", err
		}
		if sk == nil {
			return "", errors.Wrapf(ErrUnknownSkin, "skin %s", skinID)
		}
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trade_offers (id, from_user, to_user, offered_skin_id, requested_skin_id, message, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, tc.FromUser, tc.ToUser, tc.OfferedSkinID, tc.RequestedSkinID, tc.Message,
		string(models.TradePending), now, now)
	if err != nil {
		return "", errors.Wrap(err, "insert trade")
	}
	return id, nil
}

// UpdateTradeStatus moves a trade offer to status. Accepting swaps the owners of both
// skins in the same transaction. It reports false when the offer does not exist.
func (s *Store) UpdateTradeStatus(ctx context.Context, id string, status models.TradeStatus) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var fromUser, toUser, offeredID, requestedID string
	err = tx.QueryRowContext(ctx, `
		SELECT from_user, to_user, offered_skin_id, requested_skin_id FROM trade_offers WHERE id = ?
	`, id).Scan(&fromUser, &toUser, &offeredID, &requestedID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "get trade")
	}

	now := time.Now().UTC()
	if status == models.TradeAccepted {
		if _, err := tx.ExecContext(ctx, `UPDATE skins SET owner_name = ?, updated_at = ? WHERE id = ?`,
			toUser, now, offeredID); err != nil {
			return false, errors.Wrap(err, "transfer offered skin")
		}
		if _, err := tx.ExecContext(ctx, `UPDATE skins SET owner_name = ?, updated_at = ? WHERE id = ?`,
			fromUser, now, requestedID); err != nil {
			return false, errors.Wrap(err, "transfer requested skin")
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE trade_offers SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), now, id); err != nil {
		return false, errors.Wrap(err, "update trade")
	}

	return true, tx.Commit()
}
