package insight

// DefaultChunkSize is the number of review texts per prompt.
const DefaultChunkSize = 20

// ChunkTexts partitions texts into contiguous chunks of at most size
// elements, in order; the last chunk may be shorter. size <= 0 uses
// DefaultChunkSize. Chunks alias the input slice, they are not copies.
func ChunkTexts(texts []string, size int) [][]string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if len(texts) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(texts)+size-1)/size)
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}
		chunks = append(chunks, texts[start:end])
	}
	return chunks
}
