// Package processor contains the pipeline driver. It reads the word list,
// runs the per-word stage sequence for every word, groups the surviving
// records into story batches, and writes the manifest, the run report and
// an optional Anki deck. Words and batches that fail are logged and left
// out; only unreadable input or unwritable output aborts a run.
package processor
