package contract

// IUUIDGenerator generates unique identifiers, used to correlate individual
// network attempts via request IDs.
type IUUIDGenerator interface {
	NewUUID() string
}
