// Package session tracks live conversations in memory. The Registry owns
// the session map and its lifecycle (creation, idle expiry, eviction) while
// the Locker serializes turn execution per session so concurrent requests
// for the same conversation never interleave.
package session
