package rope

// chunkIterFrame represents a position in the tree traversal for chunk iteration.
type chunkIterFrame struct {
	node     *Node
	childIdx int // Next child index to visit (for internal nodes)
	chunkIdx int // Next chunk index to visit (for leaf nodes)
}

// ChunkIterator iterates over chunks in a rope in text order.
type ChunkIterator struct {
	rope       Rope
	stack      []chunkIterFrame
	started    bool
	chunk      Chunk
	chunkStart int
	nextStart  int
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{
		rope:  r,
		stack: make([]chunkIterFrame, 0, 16),
	}
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkIterFrame{node: it.rope.root})
	}
	return it.findNextChunk()
}

// findNextChunk finds the next non-empty chunk.
func (it *ChunkIterator) findNextChunk() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		node := frame.node

		if node.IsLeaf() {
			if frame.chunkIdx < len(node.chunks) {
				it.chunk = node.chunks[frame.chunkIdx]
				frame.chunkIdx++
				if it.chunk.IsEmpty() {
					continue
				}
				it.chunkStart = it.nextStart
				it.nextStart += it.chunk.Chars()
				return true
			}
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		if frame.childIdx < len(node.children) {
			child := node.children[frame.childIdx]
			frame.childIdx++
			it.stack = append(it.stack, chunkIterFrame{node: child})
			continue
		}

		it.stack = it.stack[:len(it.stack)-1]
	}

	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the char offset of the start of the current chunk.
func (it *ChunkIterator) Offset() int {
	return it.chunkStart
}
