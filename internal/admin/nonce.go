package admin

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// NonceField is the hidden form field carrying the nonce.
const NonceField = "_tzss_nonce"

// DefaultNonceTTL is how long an issued nonce stays valid.
const DefaultNonceTTL = 12 * time.Hour

// NonceStore issues single-use form nonces. Submissions without a valid nonce
// are not saved.
type NonceStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	issued map[string]time.Time
	now    func() time.Time
}

// NewNonceStore creates a store whose nonces expire after ttl.
func NewNonceStore(ttl time.Duration) *NonceStore {
	if ttl <= 0 {
		ttl = DefaultNonceTTL
	}
	return &NonceStore{
		ttl:    ttl,
		issued: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Issue returns a fresh nonce.
func (n *NonceStore) Issue() string {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pruneLocked()
	nonce := uuid.NewString()
	n.issued[nonce] = n.now().Add(n.ttl)
	return nonce
}

// Consume reports whether nonce was issued and is unexpired, and invalidates it.
func (n *NonceStore) Consume(nonce string) bool {
	if _, err := uuid.Parse(nonce); err != nil {
		return false
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	expires, ok := n.issued[nonce]
	if !ok {
		return false
	}
	delete(n.issued, nonce)
	return n.now().Before(expires)
}

func (n *NonceStore) pruneLocked() {
	now := n.now()
	for k, exp := range n.issued {
		if !now.Before(exp) {
			delete(n.issued, k)
		}
	}
}
