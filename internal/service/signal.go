package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/domain"
)

// LocaleEvent announces that a visitor switched language. Origin identifies
// the session that made the change so it can ignore its own echo.
type LocaleEvent struct {
	Locale tptech.Locale `json:"locale"`
	Origin string        `json:"origin"`
}

// SignalService fans locale changes out to every open page of the same visitor.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) PublishLocale(ctx context.Context, visitorID string, event LocaleEvent) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, domain.VisitorChannel(visitorID), jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// SubscribeLocale delivers the visitor's locale events until ctx is done.
func (s *SignalService) SubscribeLocale(ctx context.Context, visitorID string) <-chan LocaleEvent {
	out := make(chan LocaleEvent, 8)
	pubsub := s.rdb.Subscribe(ctx, domain.VisitorChannel(visitorID))

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event LocaleEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					slog.Warn("malformed locale event", slog.String("error", err.Error()), slog.String("module", "signal"))
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
