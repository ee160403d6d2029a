// Package content defines the learning artifact produced by the factory:
// word records, mnemonic options, story batches and the manifest. It also
// owns the content root layout, the deterministic media paths derived from
// a word or a batch index, and reading/writing the manifest and media files.
package content
