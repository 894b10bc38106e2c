package adapter

// PasswordService hashes the operator password and checks login attempts
// against the configured hash.
type PasswordService interface {
	// Hash returns a hash suitable for AUTH_OPERATOR_PASSWORD_HASH.
	Hash(password string) (string, error)

	// Check returns nil when password matches hash.
	Check(hash, password string) error
}
