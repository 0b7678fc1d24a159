package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/JoshCentner/ShadowMatchPro/internal/domain"
	"github.com/JoshCentner/ShadowMatchPro/internal/mocks"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
	"github.com/JoshCentner/ShadowMatchPro/internal/service"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage/memory"
)

type fixture struct {
	store     *memory.Store
	creator   *model.User
	applicant *model.User
	opp       *model.Opportunity
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	org := &model.Organisation{Name: "SEEK", ShortCode: "SEEK"}
	require.NoError(t, store.CreateOrganisation(ctx, org))

	creator := &model.User{Email: "leon@seek.com.au", Name: "Leon"}
	require.NoError(t, store.CreateUser(ctx, creator))
	creator, err := store.UpdateUser(ctx, creator.ID, storage.UserUpdate{OrganisationID: &org.ID})
	require.NoError(t, err)

	applicant := &model.User{Email: "priya@rea-group.com", Name: "Priya"}
	require.NoError(t, store.CreateUser(ctx, applicant))

	opp := &model.Opportunity{
		Title:           "Platform Product Management Shadowing",
		Description:     "Shadow the platform product team",
		Format:          model.FormatInPerson,
		DurationLimit:   model.DurationTwoDays,
		Status:          model.StatusOpen,
		OrganisationID:  org.ID,
		CreatedByUserID: creator.ID,
	}
	require.NoError(t, store.CreateOpportunity(ctx, opp))

	return fixture{store: store, creator: creator, applicant: applicant, opp: opp}
}

func strPtr(s string) *string { return &s }

func TestApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := newFixture(t)
	notifier := mocks.NewMockNotifier(ctrl)
	svc := service.NewLifecycleService(fx.store, notifier)

	t.Run("creates the application and notifies the creator", func(t *testing.T) {
		notifier.EXPECT().
			ApplicationReceived(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, creator, applicant model.User, opp model.Opportunity) error {
				assert.Equal(t, fx.creator.ID, creator.ID)
				assert.Equal(t, fx.applicant.ID, applicant.ID)
				assert.Equal(t, fx.opp.ID, opp.ID)
				return nil
			})

		app, err := svc.Apply(context.Background(), service.ApplyInput{
			UserID:        fx.applicant.ID,
			OpportunityID: fx.opp.ID,
			Message:       strPtr("Interested"),
		})
		require.NoError(t, err)
		assert.NotZero(t, app.ID)

		detail, err := fx.store.GetOpportunityByID(context.Background(), fx.opp.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, detail.ApplicationCount)
	})

	t.Run("second application by the same user fails", func(t *testing.T) {
		_, err := svc.Apply(context.Background(), service.ApplyInput{
			UserID:        fx.applicant.ID,
			OpportunityID: fx.opp.ID,
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
	})

	t.Run("unknown opportunity fails", func(t *testing.T) {
		_, err := svc.Apply(context.Background(), service.ApplyInput{
			UserID:        fx.applicant.ID,
			OpportunityID: 999,
		})
		assert.ErrorIs(t, err, domain.ErrOpportunityNotFound)
	})

	t.Run("unknown applicant fails", func(t *testing.T) {
		_, err := svc.Apply(context.Background(), service.ApplyInput{
			UserID:        999,
			OpportunityID: fx.opp.ID,
		})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestApplyToNonOpenOpportunity(t *testing.T) {
	fx := newFixture(t)
	svc := service.NewLifecycleService(fx.store, nil)

	closed := model.StatusClosed
	_, err := fx.store.UpdateOpportunity(context.Background(), fx.opp.ID, storage.OpportunityUpdate{Status: &closed})
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), service.ApplyInput{
		UserID:        fx.applicant.ID,
		OpportunityID: fx.opp.ID,
	})
	assert.ErrorIs(t, err, domain.ErrOpportunityNotOpen)
}

func TestApplyNotifierFailureDoesNotFailTheCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := newFixture(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		ApplicationReceived(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	svc := service.NewLifecycleService(fx.store, notifier)

	app, err := svc.Apply(context.Background(), service.ApplyInput{
		UserID:        fx.applicant.ID,
		OpportunityID: fx.opp.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, app.ID)
}

func TestAccept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fx := newFixture(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		ApplicationReceived(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	notifier.EXPECT().
		ApplicationAccepted(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, applicant model.User, opp model.Opportunity) error {
			assert.Equal(t, fx.applicant.ID, applicant.ID)
			assert.Equal(t, fx.opp.ID, opp.ID)
			return nil
		})

	svc := service.NewLifecycleService(fx.store, notifier)

	_, err := svc.Apply(context.Background(), service.ApplyInput{
		UserID:        fx.applicant.ID,
		OpportunityID: fx.opp.ID,
	})
	require.NoError(t, err)

	sa, err := svc.Accept(context.Background(), service.AcceptInput{
		OpportunityID: fx.opp.ID,
		UserID:        fx.applicant.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, fx.applicant.ID, sa.UserID)

	t.Run("opportunity is Filled with the applicant attached", func(t *testing.T) {
		detail, err := fx.store.GetOpportunityByID(context.Background(), fx.opp.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusFilled, detail.Status)
		require.NotNil(t, detail.SuccessfulApplicant)
		assert.Equal(t, fx.applicant.ID, detail.SuccessfulApplicant.ID)
	})

	t.Run("second accept fails", func(t *testing.T) {
		_, err := svc.Accept(context.Background(), service.AcceptInput{
			OpportunityID: fx.opp.ID,
			UserID:        fx.applicant.ID,
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyAccepted)
	})

	t.Run("applying after acceptance fails", func(t *testing.T) {
		late := &model.User{Email: "late@xero.com", Name: "Late"}
		require.NoError(t, fx.store.CreateUser(context.Background(), late))

		_, err := svc.Apply(context.Background(), service.ApplyInput{
			UserID:        late.ID,
			OpportunityID: fx.opp.ID,
		})
		assert.ErrorIs(t, err, domain.ErrOpportunityNotOpen)
	})
}

func TestAcceptOnClosedOpportunity(t *testing.T) {
	fx := newFixture(t)
	svc := service.NewLifecycleService(fx.store, nil)

	closed := model.StatusClosed
	_, err := fx.store.UpdateOpportunity(context.Background(), fx.opp.ID, storage.OpportunityUpdate{Status: &closed})
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), service.AcceptInput{
		OpportunityID: fx.opp.ID,
		UserID:        fx.applicant.ID,
	})
	assert.ErrorIs(t, err, domain.ErrOpportunityNotOpen)
}

func TestAcceptCreatorOnly(t *testing.T) {
	fx := newFixture(t)
	svc := service.NewLifecycleService(fx.store, nil)

	_, err := svc.Accept(context.Background(), service.AcceptInput{
		OpportunityID: fx.opp.ID,
		UserID:        fx.applicant.ID,
		CallerID:      &fx.applicant.ID,
	})
	assert.ErrorIs(t, err, domain.ErrNotCreator)
}

func TestCreateOpportunity(t *testing.T) {
	fx := newFixture(t)
	svc := service.NewLifecycleService(fx.store, nil)
	ctx := context.Background()

	area := &model.LearningArea{Name: "Innovation"}
	require.NoError(t, fx.store.CreateLearningArea(ctx, area))

	t.Run("creates Open with linked learning areas", func(t *testing.T) {
		opp, err := svc.CreateOpportunity(ctx, service.CreateOpportunityInput{
			Title:           "Innovation Sprint Shadowing",
			Description:     "Two days with the innovation team",
			Format:          model.FormatHybrid,
			DurationLimit:   model.DurationTwoHalfDays,
			OrganisationID:  1,
			CreatedByUserID: fx.creator.ID,
			LearningAreaIDs: []int{area.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, model.StatusOpen, opp.Status)

		areas, err := fx.store.ListLearningAreasForOpportunity(ctx, opp.ID)
		require.NoError(t, err)
		require.Len(t, areas, 1)
		assert.Equal(t, "Innovation", areas[0].Name)
	})

	t.Run("creator without an organisation is rejected", func(t *testing.T) {
		_, err := svc.CreateOpportunity(ctx, service.CreateOpportunityInput{
			Title:           "No profile yet",
			Description:     "x",
			Format:          model.FormatOnline,
			DurationLimit:   model.DurationOneHour,
			OrganisationID:  1,
			CreatedByUserID: fx.applicant.ID,
		})
		assert.ErrorIs(t, err, domain.ErrNoOrganisation)
	})

	t.Run("unknown organisation is rejected", func(t *testing.T) {
		_, err := svc.CreateOpportunity(ctx, service.CreateOpportunityInput{
			Title:           "Bad org",
			Description:     "x",
			Format:          model.FormatOnline,
			DurationLimit:   model.DurationOneHour,
			OrganisationID:  999,
			CreatedByUserID: fx.creator.ID,
		})
		assert.ErrorIs(t, err, domain.ErrOrganisationNotFound)
	})

	t.Run("invalid enums are rejected", func(t *testing.T) {
		_, err := svc.CreateOpportunity(ctx, service.CreateOpportunityInput{
			Title:           "Bad format",
			Description:     "x",
			Format:          "Carrier Pigeon",
			DurationLimit:   model.DurationOneHour,
			OrganisationID:  1,
			CreatedByUserID: fx.creator.ID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.CreateOpportunity(ctx, service.CreateOpportunityInput{
			Title:           "Bad duration",
			Description:     "x",
			Format:          model.FormatOnline,
			DurationLimit:   "Fortnight",
			OrganisationID:  1,
			CreatedByUserID: fx.creator.ID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown learning area is rejected", func(t *testing.T) {
		_, err := svc.CreateOpportunity(ctx, service.CreateOpportunityInput{
			Title:           "Bad area",
			Description:     "x",
			Format:          model.FormatOnline,
			DurationLimit:   model.DurationOneHour,
			OrganisationID:  1,
			CreatedByUserID: fx.creator.ID,
			LearningAreaIDs: []int{999},
		})
		assert.ErrorIs(t, err, domain.ErrLearningAreaNotFound)
	})
}

func TestUpdateOpportunityTransitions(t *testing.T) {
	ctx := context.Background()

	open := model.StatusOpen
	closed := model.StatusClosed
	filled := model.StatusFilled
	bogus := model.OpportunityStatus("Paused")

	t.Run("Open to Closed is allowed", func(t *testing.T) {
		fx := newFixture(t)
		svc := service.NewLifecycleService(fx.store, nil)

		opp, err := svc.UpdateOpportunity(ctx, fx.opp.ID, service.UpdateOpportunityInput{
			Update: storage.OpportunityUpdate{Status: &closed},
		})
		require.NoError(t, err)
		assert.Equal(t, model.StatusClosed, opp.Status)
	})

	t.Run("Open to Filled is allowed", func(t *testing.T) {
		fx := newFixture(t)
		svc := service.NewLifecycleService(fx.store, nil)

		opp, err := svc.UpdateOpportunity(ctx, fx.opp.ID, service.UpdateOpportunityInput{
			Update: storage.OpportunityUpdate{Status: &filled},
		})
		require.NoError(t, err)
		assert.Equal(t, model.StatusFilled, opp.Status)
	})

	t.Run("terminal states cannot move", func(t *testing.T) {
		fx := newFixture(t)
		svc := service.NewLifecycleService(fx.store, nil)

		_, err := svc.UpdateOpportunity(ctx, fx.opp.ID, service.UpdateOpportunityInput{
			Update: storage.OpportunityUpdate{Status: &closed},
		})
		require.NoError(t, err)

		_, err = svc.UpdateOpportunity(ctx, fx.opp.ID, service.UpdateOpportunityInput{
			Update: storage.OpportunityUpdate{Status: &open},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		_, err = svc.UpdateOpportunity(ctx, fx.opp.ID, service.UpdateOpportunityInput{
			Update: storage.OpportunityUpdate{Status: &filled},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("same-status update is a no-op", func(t *testing.T) {
		fx := newFixture(t)
		svc := service.NewLifecycleService(fx.store, nil)

		opp, err := svc.UpdateOpportunity(ctx, fx.opp.ID, service.UpdateOpportunityInput{
			Update: storage.OpportunityUpdate{Status: &open, Title: strPtr("Renamed")},
		})
		require.NoError(t, err)
		assert.Equal(t, model.StatusOpen, opp.Status)
		assert.Equal(t, "Renamed", opp.Title)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		fx := newFixture(t)
		svc := service.NewLifecycleService(fx.store, nil)

		_, err := svc.UpdateOpportunity(ctx, fx.opp.ID, service.UpdateOpportunityInput{
			Update: storage.OpportunityUpdate{Status: &bogus},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("non-creator callers cannot update", func(t *testing.T) {
		fx := newFixture(t)
		svc := service.NewLifecycleService(fx.store, nil)

		_, err := svc.UpdateOpportunity(ctx, fx.opp.ID, service.UpdateOpportunityInput{
			Update:   storage.OpportunityUpdate{Title: strPtr("Hijacked")},
			CallerID: &fx.applicant.ID,
		})
		assert.ErrorIs(t, err, domain.ErrNotCreator)
	})
}
