// Package botcheck verifies anti-bot challenge tokens submitted by clients.
//
// The Verifier interface keeps use cases independent from the challenge
// provider; the concrete implementation talks to Cloudflare Turnstile.
package botcheck
