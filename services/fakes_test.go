package services

import (
	"context"
	"errors"
	"sync"

	"civicpulse-be/models"
	"civicpulse-be/stores"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes used by the service tests. They mirror the Mongo
// implementations' observable behavior, including the atomic report-count
// increment.

var errStoreDown = errors.New("store unavailable")

type memIssueStore struct {
	mu     sync.Mutex
	issues map[string]models.Issue
	order  []string

	failUpdate bool
}

func newMemIssueStore() *memIssueStore {
	return &memIssueStore{issues: make(map[string]models.Issue)}
}

func (s *memIssueStore) Create(_ context.Context, issue *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues[issue.IssueID] = *issue
	s.order = append(s.order, issue.IssueID)
	return nil
}

func (s *memIssueStore) FindByID(_ context.Context, issueID string) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[issueID]
	if !ok {
		return nil, stores.ErrNotFound
	}
	return &issue, nil
}

func (s *memIssueStore) FindNearby(_ context.Context, category models.IssueCategory,
	minLat, maxLat, minLng, maxLng float64,
	statuses []models.IssueStatus, limit int64) ([]models.Issue, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	statusSet := make(map[models.IssueStatus]bool, len(statuses))
	for _, st := range statuses {
		statusSet[st] = true
	}

	var result []models.Issue
	for _, id := range s.order {
		issue := s.issues[id]
		if issue.Category != category || !statusSet[issue.Status] {
			continue
		}
		if issue.Latitude < minLat || issue.Latitude > maxLat ||
			issue.Longitude < minLng || issue.Longitude > maxLng {
			continue
		}
		result = append(result, issue)
		if int64(len(result)) >= limit {
			break
		}
	}
	return result, nil
}

func (s *memIssueStore) Update(_ context.Context, issue *models.Issue) error {
	if s.failUpdate {
		return errStoreDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.issues[issue.IssueID]; !ok {
		return stores.ErrNotFound
	}
	s.issues[issue.IssueID] = *issue
	return nil
}

func (s *memIssueStore) IncrementReportCount(_ context.Context, issueID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[issueID]
	if !ok {
		return stores.ErrNotFound
	}
	issue.ReportCount++
	s.issues[issueID] = issue
	return nil
}

func (s *memIssueStore) FindAll(_ context.Context) ([]models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Issue, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.issues[id])
	}
	return result, nil
}

func (s *memIssueStore) FindByDepartment(_ context.Context, deptID primitive.ObjectID) ([]models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Issue
	for _, id := range s.order {
		issue := s.issues[id]
		if issue.DeptID != nil && *issue.DeptID == deptID {
			result = append(result, issue)
		}
	}
	return result, nil
}

type memLinkStore struct {
	mu    sync.Mutex
	links []models.CitizenIssueLink

	failCreate error
}

func (s *memLinkStore) Create(_ context.Context, citizenID primitive.ObjectID, issueID string) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append(s.links, models.CitizenIssueLink{
		Citizen: citizenID,
		IssueID: issueID,
	})
	return nil
}

func (s *memLinkStore) FindIssueIDsByCitizen(_ context.Context, citizenID primitive.ObjectID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Most recent report first.
	var ids []string
	for i := len(s.links) - 1; i >= 0; i-- {
		if s.links[i].Citizen == citizenID {
			ids = append(ids, s.links[i].IssueID)
		}
	}
	return ids, nil
}

type memTimelineStore struct {
	mu      sync.Mutex
	entries []models.TimelineEntry

	failAppend error
}

func (s *memTimelineStore) Append(_ context.Context, entry *models.TimelineEntry) error {
	if s.failAppend != nil {
		return s.failAppend
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *memTimelineStore) FindByIssue(_ context.Context, issueID string) ([]models.TimelineEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.TimelineEntry
	for _, entry := range s.entries {
		if entry.IssueID == issueID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (s *memTimelineStore) byIssue(issueID string) []models.TimelineEntry {
	result, _ := s.FindByIssue(context.Background(), issueID)
	return result
}

type memDepartmentStore struct {
	departments map[primitive.ObjectID]models.Department
}

func (s *memDepartmentStore) FindByID(_ context.Context, deptID primitive.ObjectID) (*models.Department, error) {
	dept, ok := s.departments[deptID]
	if !ok {
		return nil, stores.ErrNotFound
	}
	return &dept, nil
}

type fixture struct {
	svc      *IssueService
	issues   *memIssueStore
	links    *memLinkStore
	timeline *memTimelineStore
	depts    *memDepartmentStore
}

func newFixture() *fixture {
	issues := newMemIssueStore()
	links := &memLinkStore{}
	timeline := &memTimelineStore{}
	depts := &memDepartmentStore{departments: make(map[primitive.ObjectID]models.Department)}

	svc := NewIssueService(issues, links, timeline, depts)

	return &fixture{svc: svc, issues: issues, links: links, timeline: timeline, depts: depts}
}
