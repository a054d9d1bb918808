package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Collection names mirrored to the dashboard. Every write to one of
// these invalidates its cached snapshot and pushes a change event, so
// clients always replace their list wholesale on the next read.
const (
	Services       = "services"
	Appointments   = "appointments"
	Products       = "products"
	Team           = "team"
	Expenses       = "expenses"
	CustomRevenues = "custom_revenues"
)

const changeChannel = "shop:changefeed"

type ChangeEvent struct {
	Collection string    `json:"collection"`
	At         time.Time `json:"at"`
}

// Store caches the latest JSON snapshot per collection in Redis and
// broadcasts invalidations over pub/sub. A nil *Store is valid and
// turns every method into a no-op, so the API runs without Redis.
type Store struct {
	rdb *redis.Client
	log *zap.Logger
}

func New(addr, password string, db int, log *zap.Logger) (*Store, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{rdb: rdb, log: log}, nil
}

func snapshotKey(collection string) string {
	return "shop:snapshot:" + collection
}

// PutSnapshot replaces the cached snapshot for a collection.
func (s *Store) PutSnapshot(ctx context.Context, collection string, payload any) {
	if s == nil {
		return
	}

	b, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn("snapshot marshal failed", zap.String("collection", collection), zap.Error(err))
		return
	}

	if err := s.rdb.Set(ctx, snapshotKey(collection), b, 0).Err(); err != nil {
		s.log.Warn("snapshot cache write failed", zap.String("collection", collection), zap.Error(err))
	}
}

// Snapshot returns the cached snapshot, nil when absent.
func (s *Store) Snapshot(ctx context.Context, collection string) []byte {
	if s == nil {
		return nil
	}

	b, err := s.rdb.Get(ctx, snapshotKey(collection)).Bytes()
	if err != nil {
		return nil
	}
	return b
}

// Touch drops the cached snapshot and notifies subscribers that the
// collection changed. Called after every successful write.
func (s *Store) Touch(ctx context.Context, collection string) {
	if s == nil {
		return
	}

	if err := s.rdb.Del(ctx, snapshotKey(collection)).Err(); err != nil {
		s.log.Warn("snapshot invalidation failed", zap.String("collection", collection), zap.Error(err))
	}

	ev := ChangeEvent{Collection: collection, At: time.Now()}
	b, _ := json.Marshal(ev)
	if err := s.rdb.Publish(ctx, changeChannel, b).Err(); err != nil {
		s.log.Warn("changefeed publish failed", zap.String("collection", collection), zap.Error(err))
	}
}

// SubscribeChanges streams change events until ctx is done. Returns a
// nil channel when the store is disabled.
func (s *Store) SubscribeChanges(ctx context.Context) <-chan ChangeEvent {
	if s == nil {
		return nil
	}

	sub := s.rdb.Subscribe(ctx, changeChannel)
	out := make(chan ChangeEvent, 16)

	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				default:
					// slow consumer, skip
				}
			}
		}
	}()

	return out
}
