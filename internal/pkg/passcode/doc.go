// Package passcode generates the short one-time codes delivered to a user's
// inbox during the login, registration and recovery flows.
//
// Codes are plain numeric strings so they can be read from an email and
// typed on any keyboard. Randomness comes from crypto/rand; the narrow code
// space is compensated by the short challenge TTL.
package passcode
