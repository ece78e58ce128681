// Package clock provides time injection and periodic scheduling.
//
// The Clock interface decouples services from the wall clock so tests can
// pin "now" to a fixed instant. The Scheduler runs a callback once
// immediately and then on a fixed interval, and is the trigger behind the
// expiration sweeper.
package clock
