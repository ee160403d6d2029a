// Package gateway is the model capability gateway. Every generation stage
// talks to a text, JSON, image or speech model through the Gateway
// interface, which is implemented for Google Gemini (genai) and OpenAI and
// can be wrapped with a fallback provider and a circuit breaker.
package gateway
