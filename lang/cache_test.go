package lang

import "testing"

// TestDefinitionCache_SharesNodes verifies repeated parses of the same
// definition text return the identical cached node.
func TestDefinitionCache_SharesNodes(t *testing.T) {
	PurgeDefinitionCache()

	first, err := parseDefinition("$int * $unique")
	if err != nil {
		t.Fatalf("parseDefinition error: %v", err)
	}

	second, err := parseDefinition("$int * $unique")
	if err != nil {
		t.Fatalf("parseDefinition error: %v", err)
	}

	if first != second {
		t.Error("cache returned distinct nodes for identical text")
	}

	if n := DefinitionCacheLen(); n != 1 {
		t.Errorf("DefinitionCacheLen = %d, want 1", n)
	}
}

// TestDefinitionCache_FailuresNotCached verifies malformed text is never
// stored.
func TestDefinitionCache_FailuresNotCached(t *testing.T) {
	PurgeDefinitionCache()

	if _, err := parseDefinition("] oops"); err == nil {
		t.Fatal("expected parse error")
	}

	if n := DefinitionCacheLen(); n != 0 {
		t.Errorf("DefinitionCacheLen = %d, want 0", n)
	}
}

// TestDefinitionCache_Purge verifies the cache empties on purge.
func TestDefinitionCache_Purge(t *testing.T) {
	PurgeDefinitionCache()

	if _, err := parseDefinition("$int"); err != nil {
		t.Fatalf("parseDefinition error: %v", err)
	}

	PurgeDefinitionCache()

	if n := DefinitionCacheLen(); n != 0 {
		t.Errorf("DefinitionCacheLen = %d after purge, want 0", n)
	}
}
