// Package mail defines the contract for sending email messages.
//
// Use cases work with the Mail interface and Message payload so they stay
// independent from a specific provider; the concrete delivery mechanism is
// implemented elsewhere in this package.
package mail
