package middleware

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReplayTTL is how long a form submission can be replayed.
const ReplayTTL = 24 * time.Hour

var (
	_ ReplayStore = (*MemoryReplays)(nil)
	_ ReplayStore = RedisReplays{}
)

// A ReplayStore keeps the Replays Idempotent answers resubmitted forms with.
type ReplayStore interface {
	// Claim stores pending under key unless key already holds a Replay,
	// in which case that Replay and true return.
	Claim(ctx context.Context, key string, pending Replay) (Replay, bool)

	// Save overwrites key with the finished Replay.
	Save(ctx context.Context, key string, rp Replay)
}

// MemoryReplays keeps Replays in process memory, lost on restart.
// Use RedisReplays when running more than one trailhead.
type MemoryReplays struct {
	mu      sync.Mutex
	now     func() time.Time
	replays map[string]storedReplay
}

type storedReplay struct {
	Replay
	expires time.Time
}

func NewMemoryReplays() *MemoryReplays {
	return &MemoryReplays{now: time.Now, replays: make(map[string]storedReplay)}
}

func (m *MemoryReplays) Claim(_ context.Context, key string, pending Replay) (Replay, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if s, ok := m.replays[key]; ok && now.Before(s.expires) {
		return s.Replay, true
	}

	m.evict(now)
	m.replays[key] = storedReplay{Replay: pending, expires: now.Add(ReplayTTL)}
	return Replay{}, false
}

func (m *MemoryReplays) Save(_ context.Context, key string, rp Replay) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.replays[key] = storedReplay{Replay: rp, expires: m.now().Add(ReplayTTL)}
}

// evict drops expired Replays; callers hold mu.
func (m *MemoryReplays) evict(now time.Time) {
	for k, s := range m.replays {
		if !now.Before(s.expires) {
			delete(m.replays, k)
		}
	}
}

// replayPrefix namespaces keys in a Redis database shared with sessions.
const replayPrefix = "trailhead:replay:"

// RedisReplays keeps Replays in Redis, shared by every trailhead pointed at it.
type RedisReplays struct {
	client *redis.Client
}

// NewRedisReplays connects to the Redis server at uri,
// a redis:// URL or a bare host:port, authenticating with pass when set.
func NewRedisReplays(uri, pass string) (RedisReplays, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		opts = &redis.Options{Addr: uri}
	}

	if pass != "" {
		opts.Password = pass
	}

	c := redis.NewClient(opts)
	if err := c.Ping(context.Background()).Err(); err != nil {
		_ = c.Close()
		return RedisReplays{}, err
	}

	return RedisReplays{client: c}, nil
}

// Claim uses SETNX so two trailheads never both handle one submission.
// When Redis fails, the submission is handled as if unclaimed.
func (rr RedisReplays) Claim(ctx context.Context, key string, pending Replay) (Replay, bool) {
	b, err := json.Marshal(pending)
	if err != nil {
		return Replay{}, false
	}

	claimed, err := rr.client.SetNX(ctx, replayPrefix+key, b, ReplayTTL).Result()
	if err != nil || claimed {
		return Replay{}, false
	}

	raw, err := rr.client.Get(ctx, replayPrefix+key).Bytes()
	if err != nil {
		return Replay{}, false
	}

	var prior Replay
	if err := json.Unmarshal(raw, &prior); err != nil {
		return Replay{}, false
	}

	return prior, true
}

func (rr RedisReplays) Save(ctx context.Context, key string, rp Replay) {
	b, err := json.Marshal(rp)
	if err != nil {
		return
	}

	rr.client.Set(ctx, replayPrefix+key, b, ReplayTTL)
}
