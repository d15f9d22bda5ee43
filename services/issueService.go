// Package services holds the issue intake and lifecycle engine. All state
// lives behind the store interfaces; every operation reads fresh from the
// store, so concurrent work on different issues needs no extra locking.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"civicpulse-be/models"
	"civicpulse-be/stores"
	"civicpulse-be/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// duplicateRadiusKm is the fixed threshold below which a new report merges
// into an existing issue.
const duplicateRadiusKm = 0.1 // 100 meters

// nearbyCandidateLimit bounds how many bounding-box candidates a single
// report will scan.
const nearbyCandidateLimit = 50

var (
	ErrIssueNotFound        = errors.New("issue not found")
	ErrInvalidCategory      = errors.New("invalid issue category")
	ErrInvalidCoordinates   = errors.New("invalid coordinates")
	ErrInvalidStatus        = errors.New("invalid issue status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)

// ReportResult is what a citizen gets back from reporting an issue. Every
// successful report yields exactly one issue id, whether merged or new.
type ReportResult struct {
	IssueID     string `json:"issueId"`
	Merged      bool   `json:"merged"`
	ReportCount int    `json:"reportCount"`
	Message     string `json:"message"`
}

// IssueDetails bundles an issue with its audit trail for tracking views.
type IssueDetails struct {
	Issue          *models.Issue          `json:"issue"`
	Timeline       []models.TimelineEntry `json:"timeline"`
	DepartmentName string                 `json:"departmentName,omitempty"`
}

// Analytics are full-scan counts over the issue population.
type Analytics struct {
	TotalIssues int                          `json:"totalIssues"`
	Reported    int                          `json:"reported"`
	Assigned    int                          `json:"assigned"`
	InProgress  int                          `json:"inProgress"`
	Resolved    int                          `json:"resolved"`
	Pending     int                          `json:"pending"`
	ByCategory  map[models.IssueCategory]int `json:"byCategory"`
}

// IssueService drives issue intake, lifecycle transitions, and analytics.
type IssueService struct {
	issues      stores.IssueStore
	links       stores.CitizenIssueLinkStore
	timeline    stores.TimelineStore
	departments stores.DepartmentDirectory
	idGen       *utils.IssueIDGenerator
	now         func() time.Time

	// ValidateTransition, when set, is consulted before any status write.
	// Left nil it matches the historical behavior: any authorized actor
	// may write any status at any time.
	ValidateTransition func(from, to models.IssueStatus) error
}

func NewIssueService(issues stores.IssueStore, links stores.CitizenIssueLinkStore,
	timeline stores.TimelineStore, departments stores.DepartmentDirectory) *IssueService {
	return &IssueService{
		issues:      issues,
		links:       links,
		timeline:    timeline,
		departments: departments,
		idGen:       utils.NewIssueIDGenerator(nil),
		now:         time.Now,
	}
}

// ReportIssue runs duplicate detection for a citizen submission. A report
// within 100m of a live issue of the same category merges into it
// (incrementing its report count); otherwise a new issue is created with a
// fresh identifier and an initial timeline entry.
func (s *IssueService) ReportIssue(ctx context.Context, newIssue *models.Issue, citizenID primitive.ObjectID) (*ReportResult, error) {
	if !newIssue.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if newIssue.Latitude < -90 || newIssue.Latitude > 90 ||
		newIssue.Longitude < -180 || newIssue.Longitude > 180 {
		return nil, ErrInvalidCoordinates
	}

	minLat, maxLat, minLng, maxLng := utils.BoundingBox(
		newIssue.Latitude, newIssue.Longitude, duplicateRadiusKm)

	candidates, err := s.issues.FindNearby(ctx, newIssue.Category,
		minLat, maxLat, minLng, maxLng,
		[]models.IssueStatus{models.Reported, models.Assigned, models.InProgress},
		nearbyCandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("finding nearby issues: %w", err)
	}

	if duplicate := findDuplicate(newIssue, candidates); duplicate != nil {
		return s.mergeReport(ctx, duplicate, citizenID)
	}

	return s.createIssue(ctx, newIssue, citizenID)
}

// findDuplicate scans candidates in store order and keeps the first one
// within the duplicate radius. No closest-match tie-break.
func findDuplicate(newIssue *models.Issue, candidates []models.Issue) *models.Issue {
	for i := range candidates {
		candidate := &candidates[i]

		if candidate.Status == models.Resolved {
			continue
		}

		if utils.WithinRadius(candidate.Latitude, candidate.Longitude,
			newIssue.Latitude, newIssue.Longitude, duplicateRadiusKm) {
			return candidate
		}
	}
	return nil
}

func (s *IssueService) mergeReport(ctx context.Context, duplicate *models.Issue, citizenID primitive.ObjectID) (*ReportResult, error) {
	if err := s.issues.IncrementReportCount(ctx, duplicate.IssueID); err != nil {
		return nil, fmt.Errorf("incrementing report count: %w", err)
	}

	// A link failure after the increment is not rolled back: the issue
	// stays trackable even if the count runs one ahead of the links.
	if err := s.links.Create(ctx, citizenID, duplicate.IssueID); err != nil {
		return nil, fmt.Errorf("creating citizen link: %w", err)
	}

	// Re-read so the caller sees the count after the increment.
	updated, err := s.issues.FindByID(ctx, duplicate.IssueID)
	if err != nil {
		return nil, fmt.Errorf("refreshing issue: %w", err)
	}

	return &ReportResult{
		IssueID:     duplicate.IssueID,
		Merged:      true,
		ReportCount: updated.ReportCount,
		Message:     "Your issue has been merged with an existing report",
	}, nil
}

func (s *IssueService) createIssue(ctx context.Context, newIssue *models.Issue, citizenID primitive.ObjectID) (*ReportResult, error) {
	now := s.now()

	newIssue.IssueID = s.idGen.Generate(newIssue.Category)
	newIssue.Status = models.Reported
	newIssue.ReportCount = 1
	newIssue.CreatedAt = now
	newIssue.UpdatedAt = now

	if err := s.issues.Create(ctx, newIssue); err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	if err := s.links.Create(ctx, citizenID, newIssue.IssueID); err != nil {
		return nil, fmt.Errorf("creating citizen link: %w", err)
	}

	entry := &models.TimelineEntry{
		IssueID:   newIssue.IssueID,
		Status:    models.Reported,
		UpdatedBy: citizenID,
		Remarks:   "Issue reported by citizen",
		CreatedAt: now,
	}
	if err := s.timeline.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("appending timeline entry: %w", err)
	}

	return &ReportResult{
		IssueID:     newIssue.IssueID,
		Merged:      false,
		ReportCount: 1,
		Message:     "Issue reported successfully",
	}, nil
}

// GetIssueDetails returns the issue, its full timeline, and the assigned
// department's name when one is set.
func (s *IssueService) GetIssueDetails(ctx context.Context, issueID string) (*IssueDetails, error) {
	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}

	timeline, err := s.timeline.FindByIssue(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("loading timeline: %w", err)
	}

	details := &IssueDetails{Issue: issue, Timeline: timeline}

	if issue.DeptID != nil {
		if dept, err := s.departments.FindByID(ctx, *issue.DeptID); err == nil {
			details.DepartmentName = dept.Name
		}
	}

	return details, nil
}

// GetCitizenIssues returns the issues a citizen has reported, most recent
// report first. Issues deleted out from under the link store are skipped.
func (s *IssueService) GetCitizenIssues(ctx context.Context, citizenID primitive.ObjectID) ([]models.Issue, error) {
	issueIDs, err := s.links.FindIssueIDsByCitizen(ctx, citizenID)
	if err != nil {
		return nil, err
	}

	issues := make([]models.Issue, 0, len(issueIDs))
	for _, issueID := range issueIDs {
		issue, err := s.issues.FindByID(ctx, issueID)
		if err != nil {
			if errors.Is(err, stores.ErrNotFound) {
				continue
			}
			return nil, err
		}
		issues = append(issues, *issue)
	}

	return issues, nil
}

// UpdateIssueStatus writes a new status and appends the audit entry. The
// issue is persisted before the timeline append; a failure between the two
// leaves the status advanced without its trail entry, which callers treat
// as reportable, not fatal. Re-resolving an issue restamps ResolvedAt.
func (s *IssueService) UpdateIssueStatus(ctx context.Context, issueID string, newStatus models.IssueStatus,
	actorID primitive.ObjectID, remarks string, proofImageURL *string) error {

	if !newStatus.Valid() {
		return ErrInvalidStatus
	}

	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return ErrIssueNotFound
		}
		return err
	}

	if s.ValidateTransition != nil {
		if err := s.ValidateTransition(issue.Status, newStatus); err != nil {
			return err
		}
	}

	now := s.now()
	issue.Status = newStatus
	issue.UpdatedAt = now

	if newStatus == models.Resolved {
		resolvedAt := now
		issue.ResolvedAt = &resolvedAt
	}

	if err := s.issues.Update(ctx, issue); err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}

	entry := &models.TimelineEntry{
		IssueID:       issueID,
		Status:        newStatus,
		UpdatedBy:     actorID,
		Remarks:       remarks,
		ProofImageURL: proofImageURL,
		CreatedAt:     now,
	}
	if err := s.timeline.Append(ctx, entry); err != nil {
		return fmt.Errorf("appending timeline entry: %w", err)
	}

	return nil
}

// AssignToDepartment sets the department reference, forces status to
// ASSIGNED, and records an audit entry naming the department.
func (s *IssueService) AssignToDepartment(ctx context.Context, issueID string, deptID primitive.ObjectID,
	actorID primitive.ObjectID) error {

	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return ErrIssueNotFound
		}
		return err
	}

	now := s.now()
	issue.DeptID = &deptID
	issue.Status = models.Assigned
	issue.UpdatedAt = now

	if err := s.issues.Update(ctx, issue); err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}

	remarks := "Assigned to department"
	if dept, err := s.departments.FindByID(ctx, deptID); err == nil {
		remarks = "Assigned to " + dept.Name
	}

	entry := &models.TimelineEntry{
		IssueID:   issueID,
		Status:    models.Assigned,
		UpdatedBy: actorID,
		Remarks:   remarks,
		CreatedAt: now,
	}
	if err := s.timeline.Append(ctx, entry); err != nil {
		return fmt.Errorf("appending timeline entry: %w", err)
	}

	return nil
}

// GetAllIssues returns every issue, newest first.
func (s *IssueService) GetAllIssues(ctx context.Context) ([]models.Issue, error) {
	return s.issues.FindAll(ctx)
}

// GetDepartmentIssues returns the issues assigned to a department.
func (s *IssueService) GetDepartmentIssues(ctx context.Context, deptID primitive.ObjectID) ([]models.Issue, error) {
	return s.issues.FindByDepartment(ctx, deptID)
}

// GetAnalytics recomputes counts from a full scan on every call. Pending is
// everything not yet resolved. Categories with no issues do not appear in
// ByCategory.
func (s *IssueService) GetAnalytics(ctx context.Context) (*Analytics, error) {
	allIssues, err := s.issues.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	analytics := &Analytics{
		TotalIssues: len(allIssues),
		ByCategory:  make(map[models.IssueCategory]int),
	}

	for i := range allIssues {
		issue := &allIssues[i]

		switch issue.Status {
		case models.Reported:
			analytics.Reported++
		case models.Assigned:
			analytics.Assigned++
		case models.InProgress:
			analytics.InProgress++
		case models.Resolved:
			analytics.Resolved++
		}

		analytics.ByCategory[issue.Category]++
	}

	analytics.Pending = analytics.Reported + analytics.Assigned + analytics.InProgress

	return analytics, nil
}
