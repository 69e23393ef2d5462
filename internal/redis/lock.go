package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const jobLockPrefix = "lock:job:"

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore handles distributed locking in Redis so a scheduled job runs on
// one replica at a time.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// JobLockKey returns the redis key guarding a job.
func JobLockKey(job string) string {
	return jobLockPrefix + job
}

// AcquireJobLock attempts to take the lock for job. It returns the release
// token, or "" if another holder has it.
func (s *LockStore) AcquireJobLock(ctx context.Context, job string, ttl time.Duration) (string, error) {
	token := uuid.New().String()

	ok, err := s.client.SetNX(ctx, JobLockKey(job), token, ttl).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	return token, nil
}

// ReleaseJobLock releases the lock if token still owns it. An expired lock
// that someone else re-acquired is left alone.
func (s *LockStore) ReleaseJobLock(ctx context.Context, job, token string) error {
	if token == "" {
		return errors.New("empty lock token")
	}
	return releaseScript.Run(ctx, s.client, []string{JobLockKey(job)}, token).Err()
}
