// Package clock abstracts the current time behind a tiny interface.
//
// Challenge expiry is evaluated lazily against "now", so business code takes
// a Clocker instead of calling time.Now() directly. Tests swap in a fake
// clock and move it forward deterministically.
package clock
