package relay

// Chunk is one incrementally-delivered unit of generated text, tagged by
// kind. The backend emits a single ordered stream of chunks; a chunk carries
// a thinking payload, a content payload, or neither (keep-alive). An empty
// field means no payload of that kind in this chunk.
//
// Chunks are never mutated or reordered by the orchestrator.
type Chunk struct {
	Thinking string
	Content  string
}
