package utils

import (
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"civicpulse-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateFormat(t *testing.T) {
	gen := NewIssueIDGenerator(fixedClock(time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)))

	id := gen.Generate(models.Road)
	assert.Equal(t, "CIVIC-RD-20260210-0001", id)

	id = gen.Generate(models.Water)
	assert.Equal(t, "CIVIC-WA-20260210-0002", id)
}

func TestCategoryCodes(t *testing.T) {
	gen := NewIssueIDGenerator(fixedClock(time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)))

	tests := []struct {
		category models.IssueCategory
		code     string
	}{
		{models.Road, "RD"},
		{models.Water, "WA"},
		{models.Sanitation, "SN"},
		{models.Electricity, "EL"},
		{models.IssueCategory("GARBAGE"), "XX"},
		{models.IssueCategory("road"), "RD"},
	}

	pattern := regexp.MustCompile(`^CIVIC-([A-Z]{2})-\d{8}-\d{4}$`)
	for _, tt := range tests {
		id := gen.Generate(tt.category)
		m := pattern.FindStringSubmatch(id)
		require.NotNil(t, m, "unexpected id shape: %s", id)
		assert.Equal(t, tt.code, m[1])
	}
}

func TestConcurrentGenerationDistinctAndGapless(t *testing.T) {
	gen := NewIssueIDGenerator(fixedClock(time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)))

	const n = 1000
	ids := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- gen.Generate(models.Road)
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	require.Len(t, seen, n)

	// Set equality with 0001..1000, ordering not guaranteed.
	for seq := 1; seq <= n; seq++ {
		id := fmt.Sprintf("CIVIC-RD-20260210-%04d", seq)
		assert.True(t, seen[id], "missing sequence %04d", seq)
	}
}

func TestDateRolloverResetsSequence(t *testing.T) {
	current := time.Date(2026, 2, 10, 23, 59, 0, 0, time.UTC)
	gen := NewIssueIDGenerator(func() time.Time { return current })

	first := gen.Generate(models.Road)
	second := gen.Generate(models.Road)
	assert.Equal(t, "CIVIC-RD-20260210-0001", first)
	assert.Equal(t, "CIVIC-RD-20260210-0002", second)

	current = current.Add(2 * time.Minute) // crosses midnight

	third := gen.Generate(models.Road)
	assert.Equal(t, "CIVIC-RD-20260211-0001", third)

	assert.NotEqual(t, first, third)
	assert.NotEqual(t, second, third)
}

func TestSequencePastFourDigitsGrows(t *testing.T) {
	gen := NewIssueIDGenerator(fixedClock(time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)))

	var last string
	for i := 0; i < 10001; i++ {
		last = gen.Generate(models.Sanitation)
	}
	assert.Equal(t, "CIVIC-SN-20260210-10001", last)
}
