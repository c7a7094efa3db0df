package usecase

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-league-sync/internal/domain/footballer"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-league-sync/internal/platform/convert"
)

// NormalizeInput is everything needed to build one entry's gameweek record.
type NormalizeInput struct {
	LeagueID int64
	Gameweek int
	Entry    ExternalStandingEntry
	History  ExternalEntryHistory
	Picks    ExternalEntryPicks
	Catalog  footballer.Index
	Now      time.Time
}

// NormalizeEntry turns one entry's upstream payloads into a canonical record
// plus the entry's chip usages for the whole season.
func NormalizeEntry(in NormalizeInput) (gameweek.Record, []gameweek.ChipUsage, error) {
	if in.LeagueID == 0 || in.Entry.EntryID == 0 {
		return gameweek.Record{}, nil, fmt.Errorf("%w: league_id=%d entry_id=%d", ErrRecordRejected, in.LeagueID, in.Entry.EntryID)
	}
	if in.History.Empty() {
		return gameweek.Record{}, nil, fmt.Errorf("%w: entry_id=%d", ErrEntryHistoryMissing, in.Entry.EntryID)
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	row := historyRowForGameweek(in.History.Current, in.Gameweek)
	points := convert.Int(row["points"], 0)
	transfersCost := convert.Int(row["event_transfers_cost"], 0)
	teamValue := gameweek.TeamValueFromTenths(convert.Int(row["value"], 0))

	record := gameweek.Record{
		LeagueID:      in.LeagueID,
		EntryID:       in.Entry.EntryID,
		Gameweek:      in.Gameweek,
		Points:        points,
		TotalPoints:   in.Entry.Total,
		PointsNet:     points - transfersCost,
		Bank:          convert.Int(row["bank"], 0),
		TeamValue:     gameweek.TeamValueToTenths(teamValue),
		Transfers:     convert.Int(row["event_transfers"], 0),
		TransfersCost: transfersCost,
		PointsOnBench: convert.Int(row["points_on_bench"], 0),
		OverallRank:   convert.Int(row["overall_rank"], 0),
		ActiveChip:    NormalizeChipState(in.Picks.ActiveChip),
		UpdatedAt:     now,
	}

	record.CaptainID, record.CaptainName = resolveFlaggedPick(in.Picks.Picks, "is_captain", in.Catalog)
	record.ViceCaptainID, record.ViceCaptainName = resolveFlaggedPick(in.Picks.Picks, "is_vice_captain", in.Catalog)

	return record, chipUsagesFromHistory(in.LeagueID, in.Entry.EntryID, in.History.Chips, now), nil
}

// NormalizeChipState reduces the upstream chip field to a bare nullable name.
// A one-element list yields its element; empty lists, null and "" yield nil.
func NormalizeChipState(v any) *string {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		v = list[0]
	}
	if list, ok := v.([]string); ok {
		if len(list) == 0 {
			return nil
		}
		v = list[0]
	}
	return convert.OptionalString(v)
}

func historyRowForGameweek(rows []map[string]any, gw int) map[string]any {
	for _, row := range rows {
		if convert.Int(row["event"], 0) == int64(gw) {
			return row
		}
	}
	return nil
}

// resolveFlaggedPick returns the id and name of the single pick carrying
// flag. Zero or several flagged picks are ambiguous and resolve to unknown.
func resolveFlaggedPick(picks []map[string]any, flag string, catalog footballer.Index) (*int64, *string) {
	var flagged []map[string]any
	for _, pick := range picks {
		if convert.Bool(pick[flag]) {
			flagged = append(flagged, pick)
		}
	}

	unknown := gameweek.UnknownPlayerName
	if len(flagged) != 1 {
		return nil, &unknown
	}

	id := convert.OptionalInt(flagged[0]["element"])
	if id == nil {
		return nil, &unknown
	}
	name, ok := catalog.WebName(*id)
	if !ok {
		return id, &unknown
	}
	return id, &name
}

func chipUsagesFromHistory(leagueID, entryID int64, rows []map[string]any, now time.Time) []gameweek.ChipUsage {
	if len(rows) == 0 {
		return nil
	}

	out := make([]gameweek.ChipUsage, 0, len(rows))
	position := make(map[string]int, len(rows))
	for _, row := range rows {
		name := convert.String(row["name"], "")
		if name == "" {
			continue
		}
		usage := gameweek.ChipUsage{
			LeagueID:     leagueID,
			EntryID:      entryID,
			ChipName:     name,
			GameweekUsed: int(convert.Int(row["event"], 0)),
			CreatedAt:    now,
		}
		if idx, seen := position[name]; seen {
			out[idx] = usage
			continue
		}
		position[name] = len(out)
		out = append(out, usage)
	}
	return out
}
