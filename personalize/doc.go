// Package personalize turns stored user profiles into per-turn instruction
// payloads. Payload generation is a pure function of the profile and the
// target agent: the same inputs always produce a byte-identical fragment,
// and a missing or unknown user yields a neutral payload rather than an
// error.
package personalize
