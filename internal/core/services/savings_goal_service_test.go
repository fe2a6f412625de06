package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/sms_budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/sms_budget_tracker/internal/core/services"
	"github.com/SscSPs/sms_budget_tracker/internal/dto"
	"github.com/SscSPs/sms_budget_tracker/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SavingsGoalServiceTestSuite struct {
	suite.Suite
	service portssvc.SavingsGoalSvcFacade
	ctx     context.Context
}

func (suite *SavingsGoalServiceTestSuite) SetupTest() {
	suite.service = services.NewSavingsGoalService(memory.NewSavingsGoalRepository(),
		services.WithSavingsGoalClock(fixedClock),
		services.WithSavingsGoalIDGenerator(sequentialIDs("goal")),
	)
	suite.ctx = context.Background()
}

func TestSavingsGoalServiceSuite(t *testing.T) {
	suite.Run(t, new(SavingsGoalServiceTestSuite))
}

func (suite *SavingsGoalServiceTestSuite) create(name string, target int64) string {
	goal, err := suite.service.CreateSavingsGoal(suite.ctx, ownerID, dto.CreateSavingsGoalRequest{
		Name:         name,
		TargetAmount: decimal.NewFromInt(target),
	})
	suite.Require().NoError(err)
	return goal.GoalID
}

func (suite *SavingsGoalServiceTestSuite) TestCreateSavingsGoal() {
	goal, err := suite.service.CreateSavingsGoal(suite.ctx, ownerID, dto.CreateSavingsGoalRequest{
		Name:         "  Emergency fund ",
		TargetAmount: decimal.NewFromInt(5000),
		Deadline:     "2025-12-31",
	})

	suite.Require().NoError(err)
	suite.Equal("goal-1", goal.GoalID)
	suite.Equal(ownerID, goal.OwnerID)
	suite.Equal("Emergency fund", goal.Name)
	suite.True(goal.CurrentAmount.IsZero())
	suite.Equal(fixedNow, goal.CreatedAt)
	suite.Require().NotNil(goal.Deadline)
	suite.Equal(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), *goal.Deadline)

	stored, err := suite.service.GetSavingsGoal(suite.ctx, ownerID, goal.GoalID)
	suite.Require().NoError(err)
	suite.Equal(*goal, *stored)
}

func (suite *SavingsGoalServiceTestSuite) TestCreateSavingsGoal_Rejections() {
	cases := map[string]dto.CreateSavingsGoalRequest{
		"blank name":      {Name: "   ", TargetAmount: decimal.NewFromInt(100)},
		"zero target":     {Name: "Trip", TargetAmount: decimal.Zero},
		"negative target": {Name: "Trip", TargetAmount: decimal.NewFromInt(-5)},
		"bad deadline":    {Name: "Trip", TargetAmount: decimal.NewFromInt(100), Deadline: "31/12/2025"},
	}
	for name, req := range cases {
		_, err := suite.service.CreateSavingsGoal(suite.ctx, ownerID, req)
		suite.ErrorIs(err, apperrors.ErrValidation, name)
	}

	list, err := suite.service.ListSavingsGoals(suite.ctx, ownerID)
	suite.Require().NoError(err)
	suite.Empty(list.Goals)
}

func (suite *SavingsGoalServiceTestSuite) TestContributeToSavingsGoal_CapsAtTarget() {
	id := suite.create("Laptop", 1000)

	goal, err := suite.service.ContributeToSavingsGoal(suite.ctx, ownerID, id, dto.ContributeSavingsGoalRequest{Amount: decimal.NewFromInt(700)})
	suite.Require().NoError(err)
	suite.True(goal.CurrentAmount.Equal(decimal.NewFromInt(700)))
	suite.False(goal.IsCompleted())

	goal, err = suite.service.ContributeToSavingsGoal(suite.ctx, ownerID, id, dto.ContributeSavingsGoalRequest{Amount: decimal.NewFromInt(500)})
	suite.Require().NoError(err)
	suite.True(goal.CurrentAmount.Equal(decimal.NewFromInt(1000)))
	suite.True(goal.IsCompleted())
	suite.Equal(fixedNow, goal.UpdatedAt)
}

func (suite *SavingsGoalServiceTestSuite) TestContributeToSavingsGoal_Rejections() {
	id := suite.create("Laptop", 1000)

	_, err := suite.service.ContributeToSavingsGoal(suite.ctx, ownerID, id, dto.ContributeSavingsGoalRequest{Amount: decimal.Zero})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ContributeToSavingsGoal(suite.ctx, "owner-2", id, dto.ContributeSavingsGoalRequest{Amount: decimal.NewFromInt(10)})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SavingsGoalServiceTestSuite) TestSetSavingsGoalAmount() {
	id := suite.create("Laptop", 1000)

	goal, err := suite.service.SetSavingsGoalAmount(suite.ctx, ownerID, id, dto.SetSavingsGoalAmountRequest{CurrentAmount: decimal.NewFromInt(300)})
	suite.Require().NoError(err)
	suite.True(goal.CurrentAmount.Equal(decimal.NewFromInt(300)))

	goal, err = suite.service.SetSavingsGoalAmount(suite.ctx, ownerID, id, dto.SetSavingsGoalAmountRequest{CurrentAmount: decimal.Zero})
	suite.Require().NoError(err)
	suite.True(goal.CurrentAmount.IsZero())

	_, err = suite.service.SetSavingsGoalAmount(suite.ctx, ownerID, id, dto.SetSavingsGoalAmountRequest{CurrentAmount: decimal.NewFromInt(-1)})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.SetSavingsGoalAmount(suite.ctx, ownerID, "missing", dto.SetSavingsGoalAmountRequest{CurrentAmount: decimal.NewFromInt(1)})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SavingsGoalServiceTestSuite) TestListSavingsGoals_Totals() {
	laptop := suite.create("Laptop", 1000)
	trip := suite.create("Trip", 400)
	suite.create("Car", 20000)

	_, err := suite.service.ContributeToSavingsGoal(suite.ctx, ownerID, laptop, dto.ContributeSavingsGoalRequest{Amount: decimal.NewFromInt(250)})
	suite.Require().NoError(err)
	_, err = suite.service.ContributeToSavingsGoal(suite.ctx, ownerID, trip, dto.ContributeSavingsGoalRequest{Amount: decimal.NewFromInt(400)})
	suite.Require().NoError(err)

	list, err := suite.service.ListSavingsGoals(suite.ctx, ownerID)
	suite.Require().NoError(err)
	suite.Require().Len(list.Goals, 3)
	suite.Equal([]string{"Laptop", "Trip", "Car"}, []string{list.Goals[0].Name, list.Goals[1].Name, list.Goals[2].Name})
	suite.True(list.TotalSaved.Equal(decimal.NewFromInt(650)))
	suite.True(list.TotalTarget.Equal(decimal.NewFromInt(21400)))
	suite.Equal(1, list.CompletedGoals)
	suite.Equal(2, list.ActiveGoals)

	suite.True(list.Goals[0].Progress.Equal(decimal.NewFromInt(25)))
	suite.True(list.Goals[0].RemainingAmount.Equal(decimal.NewFromInt(750)))
	suite.Equal("M250.00", list.Goals[0].DisplayCurrent)
	suite.True(list.Goals[1].Completed)
	suite.True(list.Goals[1].Progress.Equal(decimal.NewFromInt(100)))

	other, err := suite.service.ListSavingsGoals(suite.ctx, "owner-2")
	suite.Require().NoError(err)
	suite.Empty(other.Goals)
	suite.True(other.TotalSaved.IsZero())
}

func TestSavingsGoalService_RepositoryFailure(t *testing.T) {
	repo := new(MockSavingsGoalRepository)
	svc := services.NewSavingsGoalService(repo, services.WithSavingsGoalClock(fixedClock))
	ctx := context.Background()
	boom := errors.New("connection reset")

	repo.On("ListSavingsGoals", ctx, ownerID).Return(nil, boom).Once()
	repo.On("AddToSavingsGoal", ctx, ownerID, "g1", mock.Anything, fixedNow).Return(nil, boom).Once()
	repo.On("FindSavingsGoalByID", ctx, ownerID, "g2").Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.ListSavingsGoals(ctx, ownerID)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	_, err = svc.ContributeToSavingsGoal(ctx, ownerID, "g1", dto.ContributeSavingsGoalRequest{Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetSavingsGoal(ctx, ownerID, "g2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	repo.AssertExpectations(t)
}
