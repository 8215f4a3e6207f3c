package lang

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// defCache stores parsed definition nodes keyed by the xxh3 hash of
// their raw text. Deep resolution re-parses the same definitions on
// every lookup; since parsed nodes are immutable they can be shared
// across resolve calls and goroutines.
//
//nolint:gochecknoglobals
var defCache sync.Map

// parseDefinition parses registry definition text, returning a cached
// node when the same text has been parsed before. Parse failures are not
// cached: malformed text is rare and the error carries per-call context.
func parseDefinition(text string) (*Node, error) {
	key := xxh3.HashString(text)

	if cached, ok := defCache.Load(key); ok {
		return cached.(*Node), nil
	}

	node, err := ParseExpression(text)
	if err != nil {
		return nil, err
	}

	actual, _ := defCache.LoadOrStore(key, node)

	return actual.(*Node), nil
}

// PurgeDefinitionCache discards every cached definition node. Intended
// for tests and long-running drivers that churn through many registries.
func PurgeDefinitionCache() {
	defCache.Range(func(key, _ any) bool {
		defCache.Delete(key)

		return true
	})
}

// DefinitionCacheLen returns the number of cached definition nodes.
func DefinitionCacheLen() int {
	count := 0

	defCache.Range(func(_, _ any) bool {
		count++

		return true
	})

	return count
}
