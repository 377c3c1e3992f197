package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/meur/cs2hub/internal/models"
)

// --- Servers ---

// GetServers returns every listed game server ordered by rating
func (s *Store) GetServers(ctx context.Context) ([]models.GameServer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, ip, port, map, players, max_players, status, rating, reviews, ping, game_mode, region
		FROM servers ORDER BY rating DESC, name
	`)
	if err != nil {
		return nil, errors.Wrap(err, "query servers")
	}
	defer rows.Close()

	servers := []models.GameServer{}
	for rows.Next() {
		var gs models.GameServer
		var status string
		err := rows.Scan(&gs.ID, &gs.Name, &gs.IP, &gs.Port, &gs.Map, &gs.Players, &gs.MaxPlayers,
			&status, &gs.Rating, &gs.Reviews, &gs.Ping, &gs.GameMode, &gs.Region)
		if err != nil {
			return nil, errors.Wrap(err, "scan server")
		}
		gs.Status = models.ServerStatus(status)
		servers = append(servers, gs)
	}
	return servers, rows.Err()
}

// BulkCreateServers creates or replaces multiple servers in a transaction
func (s *Store) BulkCreateServers(ctx context.Context, servers []models.GameServer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO servers (id, name, ip, port, map, players, max_players, status, rating, reviews, ping, game_mode, region)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, gs := range servers {
		if gs.ID == "" {
			gs.ID = uuid.New().String()
		}
		_, err := stmt.ExecContext(ctx, gs.ID, gs.Name, gs.IP, gs.Port, gs.Map, gs.Players, gs.MaxPlayers,
			string(gs.Status), gs.Rating, gs.Reviews, gs.Ping, gs.GameMode, gs.Region)
		if err != nil {
			return errors.Wrapf(err, "insert server %q", gs.Name)
		}
	}

	return tx.Commit()
}
