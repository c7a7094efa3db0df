package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/membership"
	"github.com/riskibarqy/fpl-league-sync/internal/domain/upsert"
	qb "github.com/riskibarqy/fpl-league-sync/internal/platform/querybuilder"
)

var membershipUpsertSuffix = qb.OnConflictDoUpdate([]string{"league_id", "entry_id"}, "team_name", "last_active")

type membershipKey struct {
	leagueID int64
	entryID  int64
}

type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) UpsertBulk(ctx context.Context, items []membership.Membership) error {
	items = dedupeLast(items, func(m membership.Membership) membershipKey {
		return membershipKey{leagueID: m.LeagueID, entryID: m.EntryID}
	})
	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, membershipToInsertModel(item))
	}
	return execChunkedUpsert(ctx, r.db, "league_memberships", models, membershipUpsertSuffix)
}

func (r *MembershipRepository) Insert(ctx context.Context, item membership.Membership) upsert.Result {
	query, args, err := qb.InsertModel("league_memberships", membershipToInsertModel(item), "")
	if err != nil {
		return upsert.Failed(fmt.Errorf("build insert membership query: %w", err))
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return insertResult(err)
}

func (r *MembershipRepository) Update(ctx context.Context, item membership.Membership) error {
	query, args, err := qb.Update("league_memberships").
		Set("team_name", item.TeamName).
		Set("last_active", item.LastActive).
		Where(qb.Eq("league_id", item.LeagueID), qb.Eq("entry_id", item.EntryID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update membership query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update membership league_id=%d entry_id=%d: %w", item.LeagueID, item.EntryID, err)
	}
	return nil
}

func (r *MembershipRepository) ListByLeague(ctx context.Context, leagueID int64, entryIDs []int64) ([]membership.Membership, error) {
	conditions := []qb.Condition{qb.Eq("league_id", leagueID)}
	if len(entryIDs) > 0 {
		conditions = append(conditions, qb.Any("entry_id", pq.Array(entryIDs)))
	}

	query, args, err := qb.Select("league_id", "entry_id", "team_name", "joined_at", "last_active").
		From("league_memberships").
		Where(conditions...).
		OrderBy("entry_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select memberships query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select memberships: %w", err)
	}

	out := make([]membership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membership.Membership{
			LeagueID:   row.LeagueID,
			EntryID:    row.EntryID,
			TeamName:   row.TeamName,
			LastActive: row.LastActive,
		})
	}
	return out, nil
}

func membershipToInsertModel(item membership.Membership) membershipInsertModel {
	return membershipInsertModel{
		LeagueID:   item.LeagueID,
		EntryID:    item.EntryID,
		TeamName:   item.TeamName,
		LastActive: item.LastActive,
	}
}
