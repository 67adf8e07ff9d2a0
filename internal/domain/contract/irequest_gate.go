package contract

// IRequestGate is the per-key admission control in front of like mutations:
// at most one in-flight mutation per key, plus a minimum interval between
// admitted mutations on the same key.
type IRequestGate interface {
	// Acquire admits a mutation on key or rejects it with
	// entity.ErrAlreadyInFlight or *entity.RateLimitedError. On admission it
	// returns a release func that must run on every exit path of the owning
	// operation; release is idempotent. The in-flight check and the interval
	// check are evaluated as a single atomic step.
	Acquire(key string) (release func(), err error)
}
