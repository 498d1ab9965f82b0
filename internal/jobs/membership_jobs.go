package jobs

import (
	"context"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
)

// ExpireMemberships marks active memberships whose end date has passed as expired
func (jr *JobRunner) ExpireMemberships() {
	jr.runWithRecovery("ExpireMemberships", func() {
		ctx := context.Background()

		count, err := jr.store.MembershipRepository.MarkExpired(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire memberships", "error", err)
			return
		}

		logger.Info("Expired memberships", "count", count)
	})
}

// SendExpiryReminders emails dealership admins whose membership expires within
// the configured reminder window
func (jr *JobRunner) SendExpiryReminders() {
	jr.runWithRecovery("SendExpiryReminders", func() {
		ctx := context.Background()
		now := time.Now()
		days := jr.config.Membership.ExpiryReminderDays

		expiring, err := jr.store.MembershipRepository.ListExpiringWithin(ctx, now, days)
		if err != nil {
			logger.Error("Failed to list expiring memberships", "error", err)
			return
		}

		sent := 0
		for _, membership := range expiring {
			dealership, err := jr.store.DealershipRepository.GetByID(ctx, membership.DealershipID)
			if err != nil {
				logger.Error("Failed to load dealership for reminder",
					"dealership_id", membership.DealershipID, "error", err)
				continue
			}

			daysLeft := membership.DaysUntilExpiry(now)
			if daysLeft == nil {
				continue
			}

			admins, err := jr.store.ProfileRepository.ListAdminsByDealership(ctx, dealership.ID)
			if err != nil {
				logger.Error("Failed to list admins for reminder",
					"dealership_id", dealership.ID, "error", err)
				continue
			}

			for _, admin := range admins {
				if err := jr.services.Email.SendMembershipExpiryReminder(ctx, admin.Email, admin.Name, dealership.Name, *daysLeft); err != nil {
					logger.Error("Failed to send expiry reminder",
						"dealership_id", dealership.ID, "email", admin.Email, "error", err)
					continue
				}
				sent++
			}
		}

		logger.Info("Sent expiry reminders", "memberships", len(expiring), "emails_sent", sent)
	})
}

// CancelStalePaymentOrders cancels pending payment orders older than the
// configured cutoff so abandoned renewals do not linger
func (jr *JobRunner) CancelStalePaymentOrders() {
	jr.runWithRecovery("CancelStalePaymentOrders", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Membership.StalePaymentCutoffHours) * time.Hour)

		stale, err := jr.store.MembershipRepository.ListStalePayments(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale payments", "error", err)
			return
		}

		cancelled := 0
		for _, pay := range stale {
			if err := jr.services.Membership.UpdatePaymentStatus(ctx, pay.OrderNo, domain.PaymentStatusCancelled); err != nil {
				logger.Error("Failed to cancel stale payment", "order_no", pay.OrderNo, "error", err)
				continue
			}
			cancelled++
		}

		logger.Info("Cancelled stale payment orders", "found", len(stale), "cancelled", cancelled)
	})
}
