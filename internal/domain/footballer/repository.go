package footballer

import "context"

type Repository interface {
	UpsertBulk(ctx context.Context, items []Footballer) error
}
