// Package core contains the shared domain types of the voyagent assistant:
// sessions, turns, events, scratch state and the error taxonomy used across
// the routing, personalization and execution components.
package core
