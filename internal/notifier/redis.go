package notifier

import (
	"approval-api/internal/models"
	rdb "approval-api/pkg/db/redis"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const EventsKey = "approval_events"

// RedisNotifier appends events to a sorted set scored by unix time.
type RedisNotifier struct {
	store *rdb.Store
	key   string
}

func NewRedisNotifier(store *rdb.Store) *RedisNotifier {
	return &RedisNotifier{store: store, key: EventsKey}
}

func (n *RedisNotifier) StatusChanged(ctx context.Context, event Event) error {
	member := fmt.Sprintf("%d:%s:%s:%d", event.ApprovalID, event.From, event.To, event.At.UnixNano())
	if err := n.store.ZAdd(ctx, n.key, member, float64(event.At.Unix())); err != nil {
		return fmt.Errorf("failed to publish event for approval %d: %w", event.ApprovalID, err)
	}
	return nil
}

func (n *RedisNotifier) Events(ctx context.Context, since time.Time) ([]Event, error) {
	members, err := n.store.ZRangeByScoreWithScores(ctx, n.key, strconv.FormatInt(since.Unix(), 10), "+inf")
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(members))
	for _, z := range members {
		raw, ok := z.Member.(string)
		if !ok {
			continue
		}
		event, err := parseMember(raw)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func parseMember(raw string) (Event, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 4 {
		return Event{}, fmt.Errorf("malformed event %q", raw)
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return Event{}, fmt.Errorf("malformed event id %q: %w", raw, err)
	}
	nanos, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("malformed event time %q: %w", raw, err)
	}

	return Event{
		ApprovalID: id,
		From:       models.ApproveStatus(parts[1]),
		To:         models.ApproveStatus(parts[2]),
		At:         time.Unix(0, nanos),
	}, nil
}
