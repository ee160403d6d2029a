package batch

// Partition splits items into contiguous chunks of size. Every chunk but the
// last holds exactly size items. The chunks share the backing array of items,
// so writes through a chunk are visible in items.
func Partition[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}

	chunks := make([][]T, 0, Count(len(items), size))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}

// Count returns the number of chunks Partition produces for n items
func Count(n, size int) int {
	if size < 1 {
		size = 1
	}
	return (n + size - 1) / size
}
