package postgres

import (
	"database/sql"

	"dealerdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProfileRepository
	repository.DealershipRepository
	repository.VehicleRepository
	repository.ProfitRuleRepository
	repository.MembershipRepository
	repository.FeedbackRepository
	repository.ExpenseRepository
	repository.BonusRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		ProfileRepository:    NewProfileRepository(db),
		DealershipRepository: NewDealershipRepository(db),
		VehicleRepository:    NewVehicleRepository(db),
		ProfitRuleRepository: NewProfitRuleRepository(db),
		MembershipRepository: NewMembershipRepository(db),
		FeedbackRepository:   NewFeedbackRepository(db),
		ExpenseRepository:    NewExpenseRepository(db),
		BonusRepository:      NewBonusRepository(db),
	}
}
