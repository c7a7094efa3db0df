package usecase

import (
	"context"
	"errors"
	"testing"

	gameweekmock "github.com/riskibarqy/fpl-league-sync/internal/mocks/domain/gameweek"
	"github.com/stretchr/testify/mock"
)

func TestGameweekSelector_Select(t *testing.T) {
	t.Parallel()

	requested := 4
	cases := []struct {
		name      string
		requested *int
		setup     func(repo *gameweekmock.Repository)
		want      GameweekSelection
	}{
		{
			name:      "explicit gameweek wins",
			requested: &requested,
			setup:     func(*gameweekmock.Repository) {},
			want:      GameweekSelection{Gameweek: 4, Source: GameweekSourceRequested},
		},
		{
			name: "current gameweek has scores",
			setup: func(repo *gameweekmock.Repository) {
				repo.On("HasScoredRecord", mock.Anything, int64(10), 8).Return(true, nil).Once()
			},
			want: GameweekSelection{Gameweek: 8, Source: GameweekSourceCurrent},
		},
		{
			name: "current empty previous has data",
			setup: func(repo *gameweekmock.Repository) {
				repo.On("HasScoredRecord", mock.Anything, int64(10), 8).Return(false, nil).Once()
				repo.On("HasAnyRecord", mock.Anything, int64(10), 7).Return(true, nil).Once()
			},
			want: GameweekSelection{Gameweek: 7, Source: GameweekSourcePrevious},
		},
		{
			name: "neither has data",
			setup: func(repo *gameweekmock.Repository) {
				repo.On("HasScoredRecord", mock.Anything, int64(10), 8).Return(false, nil).Once()
				repo.On("HasAnyRecord", mock.Anything, int64(10), 7).Return(false, nil).Once()
			},
			want: GameweekSelection{Gameweek: 8, Source: GameweekSourceFallback},
		},
		{
			name: "store error falls back to current",
			setup: func(repo *gameweekmock.Repository) {
				repo.On("HasScoredRecord", mock.Anything, int64(10), 8).Return(false, errors.New("db down")).Once()
			},
			want: GameweekSelection{Gameweek: 8, Source: GameweekSourceFallback},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := gameweekmock.NewRepository(t)
			tc.setup(repo)
			selector := NewGameweekSelector(&fakeUpstream{current: CurrentGameweek{Gameweek: 8}}, repo, nil)

			got := selector.Select(context.Background(), 10, tc.requested)
			if got != tc.want {
				t.Fatalf("unexpected selection: got=%+v want=%+v", got, tc.want)
			}
		})
	}
}

func TestGameweekSelector_FirstGameweekNeverGoesBelowOne(t *testing.T) {
	t.Parallel()

	repo := gameweekmock.NewRepository(t)
	repo.On("HasScoredRecord", mock.Anything, int64(10), 1).Return(false, nil).Once()
	repo.On("HasAnyRecord", mock.Anything, int64(10), 1).Return(false, nil).Once()

	selector := NewGameweekSelector(&fakeUpstream{current: CurrentGameweek{Gameweek: 1, Fallback: true}}, repo, nil)
	got := selector.Select(context.Background(), 10, nil)
	if got.Gameweek != 1 {
		t.Fatalf("unexpected gameweek: got=%d want=1", got.Gameweek)
	}
}
