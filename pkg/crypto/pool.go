package crypto

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// PasswordHasher is the context-aware hashing port the session manager uses.
// Hashing is CPU-bound and potentially slow; callers pass a context so a
// queued derivation can be abandoned on timeout.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, encodedHash string) (bool, error)
}

// Ensure Pool implements PasswordHasher
var _ PasswordHasher = (*Pool)(nil)

// Pool bounds the number of concurrent password derivations so hashing load
// cannot starve request dispatch. Work beyond the limit queues on the
// semaphore and is released if the caller's context expires first.
type Pool struct {
	inner *Argon2
	sem   *semaphore.Weighted
}

// NewPool wraps hasher with a concurrency limit of workers. A non-positive
// workers defaults to GOMAXPROCS.
func NewPool(hasher *Argon2, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		inner: hasher,
		sem:   semaphore.NewWeighted(int64(workers)),
	}
}

func (p *Pool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)
	return p.inner.Hash(password)
}

func (p *Pool) Verify(ctx context.Context, password, encodedHash string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.sem.Release(1)
	return p.inner.Verify(password, encodedHash)
}
