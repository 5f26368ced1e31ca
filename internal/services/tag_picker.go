package services

import (
	"math/rand"
	"sync"

	"lumina-chat/internal/domain/message"
)

// TagPicker draws 1-2 distinct tags from the fixed vocabulary for
// model-authored turns. The random source is injected by seed so tests can
// pin the selection; the mutex is needed because rand.Rand is not safe for
// concurrent use and requests share one picker.
type TagPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewTagPicker(seed int64) *TagPicker {
	return &TagPicker{rng: rand.New(rand.NewSource(seed))}
}

func (p *TagPicker) Pick() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.rng.Intn(2) + 1
	perm := p.rng.Perm(len(message.TagVocabulary))

	tags := make([]string, 0, n)
	for _, idx := range perm[:n] {
		tags = append(tags, message.TagVocabulary[idx])
	}
	return tags
}
