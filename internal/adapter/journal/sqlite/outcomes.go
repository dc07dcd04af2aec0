package sqlitejournal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cityverse/internal/app/ports"
	"cityverse/internal/domain/mission"
)

func (j *Journal) Append(ctx context.Context, rec ports.OutcomeRecord) error {
	blob, err := j.compressNotices(rec.Notices)
	if err != nil {
		return err
	}
	_, err = j.conn(ctx).ExecContext(ctx,
		`INSERT INTO outcomes(outcome_id, player_id, session_id, kind, level, success, reason, target_shop_id,
			time_remaining, elapsed, lives, captures, notices_zst, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PlayerID, rec.SessionID, string(rec.Kind), rec.Level, boolInt(rec.Success), string(rec.Reason),
		rec.TargetShopID, rec.TimeRemaining, rec.Elapsed, rec.Lives, rec.Captures, blob, rec.EndedAt.UnixNano())
	return err
}

func (j *Journal) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]ports.OutcomeRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.conn(ctx).QueryContext(ctx,
		`SELECT outcome_id, session_id, kind, level, success, reason, target_shop_id,
			time_remaining, elapsed, lives, captures, notices_zst, ended_at
		 FROM outcomes WHERE player_id = ? ORDER BY ended_at DESC LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ports.OutcomeRecord{}
	for rows.Next() {
		var (
			rec     ports.OutcomeRecord
			kind    string
			reason  string
			success int
			blob    []byte
			ended   int64
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &kind, &rec.Level, &success, &reason, &rec.TargetShopID,
			&rec.TimeRemaining, &rec.Elapsed, &rec.Lives, &rec.Captures, &blob, &ended); err != nil {
			return nil, err
		}
		rec.PlayerID = playerID
		rec.Kind = mission.Kind(kind)
		rec.Reason = mission.FailReason(reason)
		rec.Success = success != 0
		rec.EndedAt = time.Unix(0, ended).UTC()
		if rec.Notices, err = j.decompressNotices(blob); err != nil {
			return nil, fmt.Errorf("outcome %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (j *Journal) compressNotices(notices []mission.Notice) ([]byte, error) {
	if len(notices) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(notices)
	if err != nil {
		return nil, fmt.Errorf("encode notices: %w", err)
	}
	return j.enc.EncodeAll(raw, nil), nil
}

func (j *Journal) decompressNotices(blob []byte) ([]mission.Notice, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	raw, err := j.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress notices: %w", err)
	}
	var out []mission.Notice
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode notices: %w", err)
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
