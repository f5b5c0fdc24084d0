package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/beka-birhanu/vinom-range/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix     = "vinom-range"
	defaultMaxRecords = 500

	historyKeyFmt = "%s:history:%s"
	lockSuffix    = ":record_lock"
	memberFmt     = "%d,%d@%d"
)

var (
	ErrMalformedRecord = errors.New("malformed move record")
)

// Options configures a RedisMoveHistory.
type Options struct {
	// Key prefix, defaults to "vinom-range".
	Prefix string

	// Lifetime of a history after the player's first move. Zero keeps it forever.
	TTL time.Duration

	// Moves kept per player; older ones are dropped. Defaults to 500.
	MaxRecords int64
}

// RedisMoveHistory keeps each player's moves in a redis sorted set scored by
// the time of the move. Writes for a player are serialized with a redis lock
// so replicas sharing the store agree on trimming and expiry.
type RedisMoveHistory struct {
	client *redis.Client
	locker *redsync.Redsync
	opts   Options
}

var _ i.MoveHistory = &RedisMoveHistory{}

// NewRedisMoveHistory initializes a RedisMoveHistory. A nil opts uses the defaults.
func NewRedisMoveHistory(client *redis.Client, opts *Options) *RedisMoveHistory {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.Prefix == "" {
		o.Prefix = defaultPrefix
	}
	if o.MaxRecords <= 0 {
		o.MaxRecords = defaultMaxRecords
	}
	if o.TTL < 0 {
		o.TTL = 0
	}

	return &RedisMoveHistory{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		opts:   o,
	}
}

// Record appends a move to the player's history.
func (h *RedisMoveHistory) Record(ctx context.Context, playerID uuid.UUID, to grid.Coordinate, at time.Time) error {
	key := h.key(playerID)
	mutex := h.locker.NewMutex(key + lockSuffix)
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("locking history of %s: %w", playerID, err)
	}
	defer func() {
		// The lock expires on its own if the release fails.
		_, _ = mutex.UnlockContext(context.WithoutCancel(ctx))
	}()

	member := encodeMember(to, at)
	if err := h.client.ZAdd(ctx, key, redis.Z{Score: float64(at.UnixNano()), Member: member}).Err(); err != nil {
		return err
	}
	if err := h.client.ZRemRangeByRank(ctx, key, 0, -h.opts.MaxRecords-1).Err(); err != nil {
		return err
	}

	// Set expiration only if it's not already set
	ttl, err := h.client.TTL(ctx, key).Result()
	if err == nil && ttl == -1 && h.opts.TTL > 0 {
		_ = h.client.Expire(ctx, key, h.opts.TTL).Err()
	}
	return nil
}

// Recent returns up to limit moves, newest first.
func (h *RedisMoveHistory) Recent(ctx context.Context, playerID uuid.UUID, limit int64) ([]i.MoveRecord, error) {
	if limit <= 0 {
		return []i.MoveRecord{}, nil
	}

	members, err := h.client.ZRevRange(ctx, h.key(playerID), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]i.MoveRecord, 0, len(members))
	for _, m := range members {
		record, err := decodeMember(m)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Count returns the number of moves kept for the player.
func (h *RedisMoveHistory) Count(ctx context.Context, playerID uuid.UUID) (int64, error) {
	return h.client.ZCard(ctx, h.key(playerID)).Result()
}

func (h *RedisMoveHistory) key(playerID uuid.UUID) string {
	return fmt.Sprintf(historyKeyFmt, h.opts.Prefix, playerID)
}

// encodeMember keeps the exact timestamp in the member; scores are float64
// and drop nanosecond precision.
func encodeMember(to grid.Coordinate, at time.Time) string {
	return fmt.Sprintf(memberFmt, to.Col, to.Row, at.UnixNano())
}

func decodeMember(member string) (i.MoveRecord, error) {
	var col, row int
	var nanos int64
	if _, err := fmt.Sscanf(member, memberFmt, &col, &row, &nanos); err != nil {
		return i.MoveRecord{}, fmt.Errorf("%w %q: %v", ErrMalformedRecord, member, err)
	}
	return i.MoveRecord{
		To: grid.Coordinate{Col: col, Row: row},
		At: time.Unix(0, nanos).UTC(),
	}, nil
}
