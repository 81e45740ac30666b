// Package model defines the reasoning-service abstraction used by the
// planner: a normalized request/response pair and the minimal Model interface
// provider adapters implement. Concrete adapters for OpenAI, Anthropic and
// Gemini live in subpackages; MockModel provides deterministic canned
// responses for tests and examples.
package model
