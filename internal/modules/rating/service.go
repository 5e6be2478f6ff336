// README: Rating service: averages feed the commission tier lookup.
package rating

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"campuseats/internal/types"
)

var ErrBadRate = errors.New("rate must be between 1 and 5")

const (
	avgKeyPrefix = "rating:dasher:%s:avg"
	avgTTL       = 10 * time.Minute
)

type Service struct {
	store Store
	rdb   *redis.Client // optional average cache; nil disables caching
}

func NewService(store Store, rdb *redis.Client) *Service {
	return &Service{store: store, rdb: rdb}
}

type CreateCommand struct {
	DasherID types.ID
	OrderID  types.ID
	Rate     int
	Comment  string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Rating, error) {
	if cmd.Rate < 1 || cmd.Rate > 5 {
		return nil, ErrBadRate
	}
	if cmd.DasherID == "" || cmd.OrderID == "" {
		return nil, ErrBadRate
	}
	r := &Rating{
		ID:        types.ID(uuid.NewString()),
		DasherID:  cmd.DasherID,
		OrderID:   cmd.OrderID,
		Rate:      cmd.Rate,
		Comment:   cmd.Comment,
		CreatedAt: time.Now(),
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, avgKey(cmd.DasherID)).Err()
	}
	return r, nil
}

func (s *Service) ListByDasher(ctx context.Context, dasherID types.ID) ([]Rating, error) {
	return s.store.ListByDasher(ctx, dasherID)
}

// AverageForDasher returns the dasher's mean rating, 0 if they have none.
func (s *Service) AverageForDasher(ctx context.Context, dasherID types.ID) (float64, error) {
	if s.rdb != nil {
		if v, err := s.rdb.Get(ctx, avgKey(dasherID)).Result(); err == nil {
			if avg, err := strconv.ParseFloat(v, 64); err == nil {
				return avg, nil
			}
		}
	}
	ratings, err := s.store.ListByDasher(ctx, dasherID)
	if err != nil {
		return 0, err
	}
	if len(ratings) == 0 {
		return 0, nil
	}
	var sum int
	for _, r := range ratings {
		sum += r.Rate
	}
	avg := float64(sum) / float64(len(ratings))
	if s.rdb != nil {
		_ = s.rdb.Set(ctx, avgKey(dasherID), strconv.FormatFloat(avg, 'f', -1, 64), avgTTL).Err()
	}
	return avg, nil
}

// AdminPercent maps an average rating to the platform's cut of the delivery
// fee. An unrated dasher forfeits the whole fee.
func AdminPercent(avg float64) int {
	switch {
	case avg >= 4:
		return 20
	case avg >= 3:
		return 30
	case avg >= 2:
		return 40
	case avg >= 1:
		return 50
	default:
		return 100
	}
}

func avgKey(dasherID types.ID) string {
	return fmt.Sprintf(avgKeyPrefix, string(dasherID))
}
