// Package challenge implements the one-time-passcode state machine shared by
// the login, registration, and recovery flows.
//
// A challenge for a flow moves through NoChallenge -> Pending -> one of
// {Validated, Expired}. Validated clears the stored state; Expired keeps it
// until a new issuance overwrites it. Expiry is evaluated lazily on each call,
// never by a background sweep.
package challenge
