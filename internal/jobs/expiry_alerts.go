package jobs

import (
	"context"
	"log"
	"time"

	"housebill/internal/billing"
	"housebill/internal/models"
	"housebill/internal/repositories"

	"github.com/google/uuid"
)

// ExpiryAlertService scans the member list for subscriptions that are
// expiring soon or already lapsed, so operators see them in the logs before
// members notice.
type ExpiryAlertService struct {
	memberRepo repositories.MemberRepository
}

type ExpiryAlert struct {
	MemberID       uuid.UUID
	MemberName     string
	HouseName      string
	ExpirationDate time.Time
	DaysLeft       int
	Status         billing.Status
}

func NewExpiryAlertService(memberRepo repositories.MemberRepository) *ExpiryAlertService {
	return &ExpiryAlertService{memberRepo: memberRepo}
}

// CheckExpiring returns one alert per member whose subscription is expiring
// or expired as of today.
func (a *ExpiryAlertService) CheckExpiring(ctx context.Context) ([]ExpiryAlert, error) {
	members, err := a.memberRepo.List(ctx)
	if err != nil {
		log.Printf("Failed to list members for expiry check: %v", err)
		return nil, err
	}

	now := time.Now()
	var alerts []ExpiryAlert
	for _, m := range members {
		status := billing.ComputeStatus(m.ExpirationDate, now)
		if status != billing.StatusExpiring && status != billing.StatusExpired {
			continue
		}
		alerts = append(alerts, ExpiryAlert{
			MemberID:       m.ID,
			MemberName:     m.Name,
			HouseName:      houseName(m),
			ExpirationDate: m.ExpirationDate,
			DaysLeft:       billing.DaysUntil(m.ExpirationDate, now),
			Status:         status,
		})
	}
	return alerts, nil
}

func (a *ExpiryAlertService) LogExpiryAlerts(alerts []ExpiryAlert) {
	if len(alerts) == 0 {
		log.Println("No expiring subscriptions")
		return
	}

	log.Printf("Subscription expiry alerts (%d):", len(alerts))
	for _, alert := range alerts {
		if alert.Status == billing.StatusExpired {
			log.Printf("- %s (%s) expired on %s",
				alert.MemberName, alert.HouseName, alert.ExpirationDate.Format("2006-01-02"))
			continue
		}
		log.Printf("- %s (%s) expires in %d day(s) on %s",
			alert.MemberName, alert.HouseName, alert.DaysLeft, alert.ExpirationDate.Format("2006-01-02"))
	}
}

// ScheduledExpiryCheck runs the full check-and-log pass. Wired into the
// background scheduler.
func (a *ExpiryAlertService) ScheduledExpiryCheck(ctx context.Context) error {
	log.Println("Starting scheduled subscription expiry check")

	alerts, err := a.CheckExpiring(ctx)
	if err != nil {
		log.Printf("Scheduled expiry check failed: %v", err)
		return err
	}
	a.LogExpiryAlerts(alerts)

	log.Println("Scheduled subscription expiry check completed")
	return nil
}

func houseName(m *models.Member) string {
	if m.HouseName != nil {
		return *m.HouseName
	}
	return ""
}
