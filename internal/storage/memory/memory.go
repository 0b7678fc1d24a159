// internal/storage/memory/memory.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JoshCentner/ShadowMatchPro/internal/domain"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

// Store is the in-memory persistence gateway. A single RWMutex guards every
// map, which also makes the two-write accept path and the duplicate-apply
// check atomic without any storage-level constraint machinery.
type Store struct {
	mu sync.RWMutex

	users                  map[int]model.User
	organisations          map[int]model.Organisation
	opportunities          map[int]model.Opportunity
	applications           map[int]model.Application
	successfulApplications map[int]model.SuccessfulApplication // keyed by opportunity ID
	learningAreas          map[int]model.LearningArea
	areaLinks              []model.OpportunityLearningArea

	nextUserID         int
	nextOrganisationID int
	nextOpportunityID  int
	nextApplicationID  int
	nextLearningAreaID int
}

var _ storage.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:                  make(map[int]model.User),
		organisations:          make(map[int]model.Organisation),
		opportunities:          make(map[int]model.Opportunity),
		applications:           make(map[int]model.Application),
		successfulApplications: make(map[int]model.SuccessfulApplication),
		learningAreas:          make(map[int]model.LearningArea),
		nextUserID:             1,
		nextOrganisationID:     1,
		nextOpportunityID:      1,
		nextApplicationID:      1,
		nextLearningAreaID:     1,
	}
}

// Users

func (s *Store) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	user.IsAuthenticated = true
	s.users[user.ID] = *user
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, id int, update storage.UserUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.OrganisationID != nil {
		v := *update.OrganisationID
		user.OrganisationID = &v
	}
	if update.CurrentRole != nil {
		v := *update.CurrentRole
		user.CurrentRole = &v
	}
	if update.LookingFor != nil {
		v := *update.LookingFor
		user.LookingFor = &v
	}
	if update.PictureURL != nil {
		v := *update.PictureURL
		user.PictureURL = &v
	}

	s.users[id] = user
	return &user, nil
}

// Organisations

func (s *Store) ListOrganisations(ctx context.Context) ([]model.Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orgs := make([]model.Organisation, 0, len(s.organisations))
	for _, org := range s.organisations {
		orgs = append(orgs, org)
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].ID < orgs[j].ID })
	return orgs, nil
}

func (s *Store) GetOrganisationByID(ctx context.Context, id int) (*model.Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.organisations[id]
	if !ok {
		return nil, domain.ErrOrganisationNotFound
	}
	return &org, nil
}

func (s *Store) CreateOrganisation(ctx context.Context, org *model.Organisation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.organisations {
		if existing.Name == org.Name {
			return domain.ErrDuplicateOrgName
		}
	}

	org.ID = s.nextOrganisationID
	s.nextOrganisationID++
	s.organisations[org.ID] = *org
	return nil
}

// Opportunities

func (s *Store) ListOpportunities(ctx context.Context, filter storage.OpportunityFilter) ([]model.OpportunityDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var details []model.OpportunityDetail
	for _, opp := range s.opportunities {
		if filter.OrganisationID != nil && opp.OrganisationID != *filter.OrganisationID {
			continue
		}
		if filter.Status != "" && opp.Status != filter.Status {
			continue
		}
		if filter.Format != "" && opp.Format != filter.Format {
			continue
		}
		details = append(details, s.assembleDetail(opp))
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })
	return details, nil
}

func (s *Store) GetOpportunityByID(ctx context.Context, id int) (*model.OpportunityDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opp, ok := s.opportunities[id]
	if !ok {
		return nil, domain.ErrOpportunityNotFound
	}
	detail := s.assembleDetail(opp)
	return &detail, nil
}

func (s *Store) CreateOpportunity(ctx context.Context, opp *model.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opp.ID = s.nextOpportunityID
	s.nextOpportunityID++
	if opp.Status == "" {
		opp.Status = model.StatusOpen
	}
	opp.CreatedAt = time.Now().UTC()
	s.opportunities[opp.ID] = *opp
	return nil
}

func (s *Store) UpdateOpportunity(ctx context.Context, id int, update storage.OpportunityUpdate) (*model.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opp, ok := s.opportunities[id]
	if !ok {
		return nil, domain.ErrOpportunityNotFound
	}

	applyOpportunityUpdate(&opp, update)
	s.opportunities[id] = opp
	return &opp, nil
}

func applyOpportunityUpdate(opp *model.Opportunity, update storage.OpportunityUpdate) {
	if update.Title != nil {
		opp.Title = *update.Title
	}
	if update.Description != nil {
		opp.Description = *update.Description
	}
	if update.Format != nil {
		opp.Format = *update.Format
	}
	if update.DurationLimit != nil {
		opp.DurationLimit = *update.DurationLimit
	}
	if update.Status != nil {
		opp.Status = *update.Status
	}
	if update.HostDetails != nil {
		v := *update.HostDetails
		opp.HostDetails = &v
	}
	if update.LearningOutcomes != nil {
		v := *update.LearningOutcomes
		opp.LearningOutcomes = &v
	}
}

func (s *Store) ListOpportunitiesByCreator(ctx context.Context, userID int) ([]model.OpportunityDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var details []model.OpportunityDetail
	for _, opp := range s.opportunities {
		if opp.CreatedByUserID == userID {
			details = append(details, s.assembleDetail(opp))
		}
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })
	return details, nil
}

// Applications

func (s *Store) ListApplicationsByOpportunity(ctx context.Context, opportunityID int) ([]model.ApplicationWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applicationsForOpportunity(opportunityID), nil
}

func (s *Store) ListApplicationsByUser(ctx context.Context, userID int) ([]model.ApplicationDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var details []model.ApplicationDetail
	for _, app := range s.applications {
		if app.UserID != userID {
			continue
		}
		detail := model.ApplicationDetail{
			Application:  app,
			User:         s.users[app.UserID],
			Opportunity:  s.opportunities[app.OpportunityID],
			Organisation: s.organisations[s.opportunities[app.OpportunityID].OrganisationID],
		}
		details = append(details, detail)
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })
	return details, nil
}

func (s *Store) CreateApplication(ctx context.Context, app *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.applications {
		if existing.UserID == app.UserID && existing.OpportunityID == app.OpportunityID {
			return domain.ErrDuplicateApplication
		}
	}

	app.ID = s.nextApplicationID
	s.nextApplicationID++
	app.CreatedAt = time.Now().UTC()
	s.applications[app.ID] = *app
	return nil
}

// Acceptance

func (s *Store) GetSuccessfulApplication(ctx context.Context, opportunityID int) (*model.SuccessfulApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sa, ok := s.successfulApplications[opportunityID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sa, nil
}

func (s *Store) AcceptApplication(ctx context.Context, opportunityID, userID int) (*model.SuccessfulApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opp, ok := s.opportunities[opportunityID]
	if !ok {
		return nil, domain.ErrOpportunityNotFound
	}
	if _, exists := s.successfulApplications[opportunityID]; exists {
		return nil, domain.ErrAlreadyAccepted
	}
	if opp.Status != model.StatusOpen {
		return nil, domain.ErrOpportunityNotOpen
	}

	sa := model.SuccessfulApplication{
		OpportunityID: opportunityID,
		UserID:        userID,
		AcceptedAt:    time.Now().UTC(),
	}
	s.successfulApplications[opportunityID] = sa

	opp.Status = model.StatusFilled
	s.opportunities[opportunityID] = opp

	return &sa, nil
}

// Learning areas

func (s *Store) ListLearningAreas(ctx context.Context) ([]model.LearningArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	areas := make([]model.LearningArea, 0, len(s.learningAreas))
	for _, area := range s.learningAreas {
		areas = append(areas, area)
	}
	sort.Slice(areas, func(i, j int) bool { return areas[i].ID < areas[j].ID })
	return areas, nil
}

func (s *Store) CreateLearningArea(ctx context.Context, area *model.LearningArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.learningAreas {
		if existing.Name == area.Name {
			return domain.ErrDuplicateAreaName
		}
	}

	area.ID = s.nextLearningAreaID
	s.nextLearningAreaID++
	s.learningAreas[area.ID] = *area
	return nil
}

func (s *Store) LinkLearningArea(ctx context.Context, opportunityID, learningAreaID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.opportunities[opportunityID]; !ok {
		return domain.ErrOpportunityNotFound
	}
	if _, ok := s.learningAreas[learningAreaID]; !ok {
		return domain.ErrLearningAreaNotFound
	}
	for _, link := range s.areaLinks {
		if link.OpportunityID == opportunityID && link.LearningAreaID == learningAreaID {
			return nil
		}
	}
	s.areaLinks = append(s.areaLinks, model.OpportunityLearningArea{
		OpportunityID:  opportunityID,
		LearningAreaID: learningAreaID,
	})
	return nil
}

func (s *Store) ListLearningAreasForOpportunity(ctx context.Context, opportunityID int) ([]model.LearningArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.learningAreasForOpportunity(opportunityID), nil
}

// assembleDetail builds the denormalised read shape for one opportunity.
// Callers must hold at least the read lock.
func (s *Store) assembleDetail(opp model.Opportunity) model.OpportunityDetail {
	detail := model.OpportunityDetail{
		Opportunity:   opp,
		Organisation:  s.organisations[opp.OrganisationID],
		Creator:       s.users[opp.CreatedByUserID],
		LearningAreas: s.learningAreasForOpportunity(opp.ID),
		Applications:  s.applicationsForOpportunity(opp.ID),
	}
	detail.ApplicationCount = len(detail.Applications)

	if sa, ok := s.successfulApplications[opp.ID]; ok {
		applicant := s.users[sa.UserID]
		detail.SuccessfulApplicant = &applicant
	}
	return detail
}

func (s *Store) applicationsForOpportunity(opportunityID int) []model.ApplicationWithUser {
	apps := []model.ApplicationWithUser{}
	for _, app := range s.applications {
		if app.OpportunityID == opportunityID {
			apps = append(apps, model.ApplicationWithUser{
				Application: app,
				User:        s.users[app.UserID],
			})
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps
}

func (s *Store) learningAreasForOpportunity(opportunityID int) []model.LearningArea {
	areas := []model.LearningArea{}
	for _, link := range s.areaLinks {
		if link.OpportunityID == opportunityID {
			areas = append(areas, s.learningAreas[link.LearningAreaID])
		}
	}
	sort.Slice(areas, func(i, j int) bool { return areas[i].ID < areas[j].ID })
	return areas
}
