package usecase

import "context"

const (
	GameweekOriginAPI      = "fpl_api"
	GameweekOriginFallback = "fallback"
)

type CurrentGameweekInfo struct {
	Gameweek int
	Source   string
}

type GameweekService struct {
	upstream UpstreamClient
}

func NewGameweekService(upstream UpstreamClient) *GameweekService {
	return &GameweekService{upstream: upstream}
}

func (s *GameweekService) Current(ctx context.Context) CurrentGameweekInfo {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Current")
	defer span.End()

	current := s.upstream.CurrentGameweek(ctx)
	source := GameweekOriginAPI
	if current.Fallback {
		source = GameweekOriginFallback
	}
	return CurrentGameweekInfo{Gameweek: current.Gameweek, Source: source}
}
