package rope

import "strings"

// Tree structure constants
const (
	// MinChildren is the minimum children per internal node (except root).
	MinChildren = 4

	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node represents a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
type Node struct {
	height  uint8       // 0 for leaves, >0 for internal
	summary TextSummary // Aggregated metrics for entire subtree

	// Internal node fields (height > 0)
	children       []*Node       // Child nodes
	childSummaries []TextSummary // Per-child summaries for efficient seeking

	// Leaf node fields (height == 0)
	chunks []Chunk // Text chunks in this leaf
}

// newLeafNode creates an empty leaf node.
func newLeafNode() *Node {
	return &Node{
		height:  0,
		summary: TextSummary{Flags: FlagASCII},
		chunks:  make([]Chunk, 0, MaxChunksPerLeaf),
	}
}

// newLeafNodeWithChunks creates a leaf node with the given chunks.
func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{
		height: 0,
		chunks: chunks,
	}
	n.recomputeSummary()
	return n
}

// newInternalNode creates an internal node with the given children.
func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	height := children[0].height + 1
	summaries := make([]TextSummary, len(children))
	total := TextSummary{Flags: FlagASCII}

	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &Node{
		height:         height,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Chars returns the char count of text in this subtree.
func (n *Node) Chars() int {
	return n.summary.Chars
}

// Bytes returns the byte length of text in this subtree.
func (n *Node) Bytes() int {
	return n.summary.Bytes
}

// LineCount returns the number of lines in this subtree.
func (n *Node) LineCount() int {
	return n.summary.Lines + 1
}

// recomputeSummary recalculates the summary from children or chunks.
func (n *Node) recomputeSummary() {
	n.summary = TextSummary{Flags: FlagASCII}
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}

	n.childSummaries = make([]TextSummary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

// clone creates a shallow copy of the node.
func (n *Node) clone() *Node {
	if n.IsLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &Node{
			height:  0,
			summary: n.summary,
			chunks:  chunks,
		}
	}

	children := make([]*Node, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)

	return &Node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

// appendTo appends all text in this subtree to the builder.
func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}

	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends text in the char range [start, end) to the builder.
func (n *Node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	offset := 0
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			chunkEnd := offset + chunk.Chars()
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}
			sb.WriteString(chunk.Slice(max(start-offset, 0), min(end, chunkEnd)-offset))
			offset = chunkEnd
		}
		return
	}

	for i, child := range n.children {
		childEnd := offset + n.childSummaries[i].Chars
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}
		child.appendRange(sb, max(start-offset, 0), min(end, childEnd)-offset)
		offset = childEnd
	}
}

// split splits the node at the given char offset.
// Returns two nodes: left contains [0, offset), right contains [offset, end).
func (n *Node) split(offset int) (*Node, *Node) {
	if offset <= 0 {
		return newLeafNode(), n.clone()
	}
	if offset >= n.Chars() {
		return n.clone(), newLeafNode()
	}

	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

// splitLeaf splits a leaf node at the given char offset.
func (n *Node) splitLeaf(offset int) (*Node, *Node) {
	var leftChunks, rightChunks []Chunk
	current := 0

	for _, chunk := range n.chunks {
		chars := chunk.Chars()

		switch {
		case current+chars <= offset:
			leftChunks = append(leftChunks, chunk)
		case current >= offset:
			rightChunks = append(rightChunks, chunk)
		default:
			left, right := chunk.SplitAt(offset - current)
			if !left.IsEmpty() {
				leftChunks = append(leftChunks, left)
			}
			if !right.IsEmpty() {
				rightChunks = append(rightChunks, right)
			}
		}
		current += chars
	}

	return newLeafNodeWithChunks(leftChunks), newLeafNodeWithChunks(rightChunks)
}

// splitInternal splits an internal node at the given char offset.
func (n *Node) splitInternal(offset int) (*Node, *Node) {
	var leftChildren, rightChildren []*Node
	current := 0

	for i, child := range n.children {
		chars := n.childSummaries[i].Chars

		switch {
		case current+chars <= offset:
			leftChildren = append(leftChildren, child)
		case current >= offset:
			rightChildren = append(rightChildren, child)
		default:
			leftChild, rightChild := child.split(offset - current)
			if leftChild.Bytes() > 0 {
				leftChildren = append(leftChildren, leftChild)
			}
			if rightChild.Bytes() > 0 {
				rightChildren = append(rightChildren, rightChild)
			}
		}
		current += chars
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren creates a balanced tree from a list of child nodes.
// Children of mixed height are lifted to the tallest before grouping.
func buildNodeFromChildren(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}
	if len(children) == 1 {
		return children[0]
	}

	var tallest uint8
	for _, child := range children {
		tallest = max(tallest, child.height)
	}
	for i, child := range children {
		for child.height < tallest {
			child = newInternalNode([]*Node{child})
		}
		children[i] = child
	}

	if len(children) <= MaxChildren {
		return newInternalNode(children)
	}

	var parents []*Node
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		parents = append(parents, newInternalNode(children[i:end]))
	}

	return buildNodeFromChildren(parents)
}

// concat concatenates two nodes.
func concat(left, right *Node) *Node {
	if left == nil || left.Bytes() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Bytes() == 0 {
		return left
	}

	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}

	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}

	return mergeNodes(left, right)
}

// concatLeaves concatenates two leaf nodes. Small chunks at the seam are
// merged so that repeated single-char inserts do not fragment the leaf.
func concatLeaves(left, right *Node) *Node {
	chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
	chunks = append(chunks, left.chunks...)

	rest := right.chunks
	if len(chunks) > 0 && len(rest) > 0 {
		last := chunks[len(chunks)-1]
		if last.Len()+rest[0].Len() <= MaxChunkSize {
			chunks = append(chunks[:len(chunks)-1], last.Append(rest[0])...)
			rest = rest[1:]
		}
	}
	chunks = append(chunks, rest...)

	if len(chunks) <= MaxChunksPerLeaf {
		return newLeafNodeWithChunks(chunks)
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}
	return newInternalNode(leaves)
}

// mergeNodes merges two nodes of the same height.
func mergeNodes(left, right *Node) *Node {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}

	// Merge along the seam so leaf chunks on both sides get joined.
	last := len(left.children) - 1
	seam := mergeNodes(left.children[last], right.children[0])

	allChildren := make([]*Node, 0, len(left.children)+len(right.children)+1)
	allChildren = append(allChildren, left.children[:last]...)
	if seam.height == left.height {
		allChildren = append(allChildren, seam.children...)
	} else {
		allChildren = append(allChildren, seam)
	}
	allChildren = append(allChildren, right.children[1:]...)

	return buildNodeFromChildren(allChildren)
}

// newlinesBefore counts newline characters in the first c chars of the subtree.
func (n *Node) newlinesBefore(c int) int {
	lines := 0
	for !n.IsLeaf() {
		next := len(n.children) - 1
		for i, s := range n.childSummaries {
			if c < s.Chars || i == next {
				next = i
				break
			}
			c -= s.Chars
			lines += s.Lines
		}
		n = n.children[next]
	}

	for _, chunk := range n.chunks {
		s := chunk.Summary()
		if c >= s.Chars {
			c -= s.Chars
			lines += s.Lines
			continue
		}
		return lines + chunk.newlinesBefore(c)
	}
	return lines
}

// lineStart returns the char offset just past the line-th newline
// (line >= 1). Callers guarantee the subtree has at least that many.
func (n *Node) lineStart(line int) int {
	chars := 0
	for !n.IsLeaf() {
		next := -1
		for i, s := range n.childSummaries {
			if line <= s.Lines {
				next = i
				break
			}
			line -= s.Lines
			chars += s.Chars
		}
		if next < 0 {
			return chars
		}
		n = n.children[next]
	}

	for _, chunk := range n.chunks {
		s := chunk.Summary()
		if line <= s.Lines {
			return chars + chunk.charAfterNewline(line)
		}
		line -= s.Lines
		chars += s.Chars
	}
	return chars
}

// countChunks returns the number of chunks in the subtree.
func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	total := 0
	for _, child := range n.children {
		total += countChunks(child)
	}
	return total
}
