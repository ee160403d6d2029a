// Package models lists the generation models available to the configured
// provider API key, grouped into text, image and speech models.
package models
