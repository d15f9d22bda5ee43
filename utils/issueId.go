package utils

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"civicpulse-be/models"
)

// IssueIDGenerator produces identifiers of the form
// CIVIC-{CATEGORY_CODE}-{YYYYMMDD}-{SEQUENCE}, e.g. CIVIC-RD-20260210-0001.
// The sequence is scoped to the current date across all categories and
// resets to 1 on the first call that observes a new date. The date check
// and increment happen under one lock, so concurrent callers always get
// distinct sequence numbers.
type IssueIDGenerator struct {
	mu       sync.Mutex
	lastDate string
	sequence int
	now      func() time.Time
}

// NewIssueIDGenerator returns a generator using the given clock. A nil
// clock means wall-clock time.
func NewIssueIDGenerator(now func() time.Time) *IssueIDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IssueIDGenerator{now: now}
}

// Generate allocates the next identifier for the category.
func (g *IssueIDGenerator) Generate(category models.IssueCategory) string {
	code := categoryCode(category)

	g.mu.Lock()
	defer g.mu.Unlock()

	dateStr := g.now().Format("20060102")
	if dateStr != g.lastDate {
		g.sequence = 0
		g.lastDate = dateStr
	}
	g.sequence++

	// %04d pads to four digits but never truncates, so sequences past
	// 9999 simply grow longer.
	return fmt.Sprintf("CIVIC-%s-%s-%04d", code, dateStr, g.sequence)
}

func categoryCode(category models.IssueCategory) string {
	switch models.IssueCategory(strings.ToUpper(string(category))) {
	case models.Road:
		return "RD"
	case models.Water:
		return "WA"
	case models.Sanitation:
		return "SN"
	case models.Electricity:
		return "EL"
	default:
		return "XX"
	}
}
