package ports

// Fixed keys under which the session is persisted. The values mirror the
// in-memory session: an opaque token, the serialized user profile, and the
// raw role tag.
const (
	StoreKeyToken = "token"
	StoreKeyUser  = "user"
	StoreKeyRole  = "role"
)

// SessionStore is durable key-value storage surviving restarts. Reads happen
// once, at startup; writes are grouped immediately after a session change,
// so no transactionality is required.
type SessionStore interface {
	// Get returns the stored value, or ok=false when the key is absent.
	// An unreadable entry is reported as absent: for a client, broken
	// state is indistinguishable from not being logged in.
	Get(key string) (value string, ok bool)
	Set(key, value string) error
	Remove(key string) error
}
