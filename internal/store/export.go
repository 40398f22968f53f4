package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/handscan/handscan/internal/game"
	"github.com/handscan/handscan/internal/hand"
	"github.com/handscan/handscan/internal/player"
	"github.com/handscan/handscan/internal/session"
)

// SaveReport writes one directory scan into the database inside a single
// transaction. Re-exporting the same game replaces its rows.
func (s *Store) SaveReport(ctx context.Context, rep *session.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := s.clock.Now().UTC().Format(TimeFormat)

	for _, g := range rep.Games {
		if err := s.saveGame(ctx, tx, g, now); err != nil {
			return err
		}
	}
	for _, p := range rep.Players {
		if err := s.saveStanding(ctx, tx, p); err != nil {
			return err
		}
	}
	for _, rej := range rep.Rejected {
		if err := s.saveRejected(ctx, tx, rej, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) saveGame(ctx context.Context, tx *sql.Tx, g *game.Game, now string) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO games (id, hands, rejected, unrecognized, exported_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			hands = excluded.hands,
			rejected = excluded.rejected,
			unrecognized = excluded.unrecognized,
			exported_at = excluded.exported_at
	`, g.ID, g.HandCount(), len(g.Rejected), g.Unrecognized, now); err != nil {
		return fmt.Errorf("insert game %s: %w", g.ID, err)
	}

	// Replace per-hand rows wholesale; partial hand sets are never useful.
	if _, err := tx.ExecContext(ctx, `DELETE FROM hands WHERE game_id = ?`, g.ID); err != nil {
		return fmt.Errorf("clear hands for %s: %w", g.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE game_id = ?`, g.ID); err != nil {
		return fmt.Errorf("clear events for %s: %w", g.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rejected_hands WHERE game_id = ?`, g.ID); err != nil {
		return fmt.Errorf("clear rejected hands for %s: %w", g.ID, err)
	}

	for _, h := range g.Hands {
		if err := s.saveHand(ctx, tx, g.ID, h); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) saveHand(ctx context.Context, tx *sql.Tx, gameID string, h *hand.Hand) error {
	winners := make([]string, len(h.Winners))
	for i, w := range h.Winners {
		winners[i] = w.PlayerID
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO hands (game_id, num, final_pot, total_chips, gini, board, winners, start_ts, end_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, gameID, h.Num, h.FinalPot(), h.TotalChips, h.Gini,
		strings.Join(h.Board(), ","), strings.Join(winners, ","),
		h.Start.UTC().Format(TimeFormat), h.End.UTC().Format(TimeFormat)); err != nil {
		return fmt.Errorf("insert hand %s/#%d: %w", gameID, h.Num, err)
	}

	for i := range h.Events {
		ev := &h.Events[i]
		var amount any
		if ev.Amount != nil {
			amount = *ev.Amount
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO events (game_id, hand_num, idx, kind, player_id, player_name,
				amount, all_in, cards, position, pot_after, ts)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, gameID, h.Num, i, ev.Kind.String(), ev.PlayerID, ev.PlayerName,
			amount, boolToInt(ev.AllIn), strings.Join(ev.Cards, ","),
			ev.Position.String(), ev.PotAfter, ev.At.UTC().Format(TimeFormat)); err != nil {
			return fmt.Errorf("insert event %s/#%d/%d: %w", gameID, h.Num, i, err)
		}
	}
	return nil
}

func (s *Store) saveStanding(ctx context.Context, tx *sql.Tx, p *player.Player) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO standings (label, ids, names, games, hands, wins, buy_in, leave_total, profit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(label) DO UPDATE SET
			ids = excluded.ids,
			names = excluded.names,
			games = excluded.games,
			hands = excluded.hands,
			wins = excluded.wins,
			buy_in = excluded.buy_in,
			leave_total = excluded.leave_total,
			profit = excluded.profit
	`, p.Label, strings.Join(p.IDs, ","), strings.Join(p.Names, ","),
		p.GamesPlayed(), p.HandsPlayed, p.Wins, p.BuyIn, p.LeaveTotal, p.Profit()); err != nil {
		return fmt.Errorf("insert standing %s: %w", p.Label, err)
	}
	return nil
}

func (s *Store) saveRejected(ctx context.Context, tx *sql.Tx, rej game.RejectedHand, now string) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO rejected_hands (game_id, hand_num, line, error_msg, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, rej.GameID, rej.HandNum, rej.Line, rej.Err.Error(), now); err != nil {
		return fmt.Errorf("insert rejected hand %s/#%d: %w", rej.GameID, rej.HandNum, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
