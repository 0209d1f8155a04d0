package hash

// Hash hashes plaintext secrets and verifies submissions against stored
// digests. Verify must be safe against timing side channels.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
