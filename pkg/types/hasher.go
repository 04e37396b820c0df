package types

// PasswordHasher is the credential-hashing collaborator consumed by the user
// service. Implementations live outside the core; internal/auth ships a
// bcrypt-backed default.
type PasswordHasher interface {
	// Hash returns a one-way digest of the plaintext credential.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored digest.
	Verify(plaintext, digest string) bool
}
