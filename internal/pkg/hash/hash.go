package hash

// Hash hashes plaintexts and verifies plaintexts against stored hashes.
//
// Implementations must be safe for concurrent use.
type Hash interface {
	// Hash returns the hashed form of plaintext.
	Hash(plaintext string) ([]byte, error)

	// Verify reports whether plaintext matches the previously hashed value.
	Verify(hashed, plaintext string) bool
}
