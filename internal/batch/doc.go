// Package batch reads the vocabulary word list and partitions processed
// words into the fixed-size groups that share one story.
package batch
