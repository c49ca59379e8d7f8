package connector

import (
	"github.com/cabify/techdocs/core"
)

const defaultBatchSize = 10

// batcher accumulates documents into fixed-size batches, tracking seen
// keys so an object listed twice (e.g. across overlapping prefixes) is
// processed only once.
type batcher struct {
	size  int
	seen  map[string]bool
	batch []core.Document
}

func newBatcher(size int) *batcher {
	if size <= 0 {
		size = defaultBatchSize
	}
	return &batcher{
		size: size,
		seen: make(map[string]bool),
	}
}

// Seen reports whether a key was already added.
func (b *batcher) Seen(key string) bool {
	return b.seen[key]
}

// Add appends a document and returns a full batch when the size is
// reached, nil otherwise.
func (b *batcher) Add(key string, doc core.Document) []core.Document {
	if b.seen[key] {
		return nil
	}
	b.seen[key] = true
	b.batch = append(b.batch, doc)

	if len(b.batch) >= b.size {
		full := b.batch
		b.batch = nil
		return full
	}
	return nil
}

// Flush returns whatever remains of the current batch.
func (b *batcher) Flush() []core.Document {
	rest := b.batch
	b.batch = nil
	return rest
}
