package services

import (
	"time"

	portsrepo "github.com/SscSPs/sms_budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/sms_budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/sms_budget_tracker/internal/core/smsparser"
	"github.com/SscSPs/sms_budget_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Messages without a date are stamped with today in the processing timezone.
	loc := cfg.ProcessingLocation
	if loc == nil {
		loc = time.UTC
	}
	clock := func() time.Time { return time.Now().In(loc) }

	parser := smsparser.NewParser(
		smsparser.WithClock(clock),
		smsparser.WithExcerptLength(cfg.DescriptionExcerptLength),
	)

	return &portssvc.ServiceContainer{
		SMS: NewSMSService(repos.TransactionRepo, WithSMSParser(parser)),
		Transaction: NewTransactionService(
			repos.TransactionRepo,
			WithTransactionClock(clock),
			WithDefaultBudget(cfg.MonthlyBudget),
		),
		SavingsGoal: NewSavingsGoalService(repos.SavingsGoalRepo, WithSavingsGoalClock(clock)),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.SMSSvcFacade         = (*smsService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.SavingsGoalSvcFacade = (*savingsGoalService)(nil)
)
