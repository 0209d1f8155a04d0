// Package hash provides helpers for hashing and verifying secrets.
//
// Passwords are stored as bcrypt hashes. One-time passcodes are stored only
// as HMAC-SHA256 digests inside session state and verified with a
// constant-time comparison, so neither the session store nor the logs ever
// see a live code.
package hash
