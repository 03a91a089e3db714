package analytics

import (
	"context"
	"log"
	"time"

	"housebill/internal/billing"
	"housebill/internal/caching"
	"housebill/internal/models"
	"housebill/internal/repositories"

	"github.com/google/uuid"
)

// statsTTL bounds how long a cached snapshot may outlive the mutation that
// produced it; mutations invalidate the cache eagerly, the TTL is a backstop.
const statsTTL = 5 * time.Minute

// AnalyticsService aggregates dashboard statistics. Every aggregation is a
// fresh read of the repositories; redis only holds the latest snapshot and is
// dropped on any mutation.
type AnalyticsService struct {
	houseRepo   repositories.HouseRepository
	productRepo repositories.ProductRepository
	memberRepo  repositories.MemberRepository
	paymentRepo repositories.PaymentRepository
	cacheSvc    caching.CacheService
}

func NewAnalyticsService(houseRepo repositories.HouseRepository, productRepo repositories.ProductRepository,
	memberRepo repositories.MemberRepository, paymentRepo repositories.PaymentRepository,
	cacheSvc caching.CacheService) *AnalyticsService {
	return &AnalyticsService{
		houseRepo:   houseRepo,
		productRepo: productRepo,
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		cacheSvc:    cacheSvc,
	}
}

// Aggregate computes the stats snapshot from in-memory collections. Pure:
// the result depends only on the arguments.
//
// activeMembers is derived as total - expired - expiring rather than counted
// independently; status mutual exclusivity keeps the three disjoint.
func Aggregate(houses []*models.House, products []*models.Product, members []*models.Member,
	payments []*models.PaymentRecord, today time.Time) models.Stats {
	stats := models.Stats{
		TotalHouses:   len(houses),
		TotalMembers:  len(members),
		TotalProducts: len(products),
	}

	for _, m := range members {
		stats.TotalMonthlyFee += m.MonthlyFee
		switch billing.ComputeStatus(m.ExpirationDate, today) {
		case billing.StatusExpired:
			stats.ExpiredMembers++
		case billing.StatusExpiring:
			stats.ExpiringMembers++
		}
	}
	stats.ActiveMembers = stats.TotalMembers - stats.ExpiredMembers - stats.ExpiringMembers

	months := map[string]struct{}{}
	for _, p := range payments {
		stats.TotalPaid += p.Amount
		months[p.PaidAt.Format("2006-01")] = struct{}{}
	}
	divisor := len(months)
	if divisor == 0 {
		divisor = 1
	}
	stats.AvgMonthlyPaid = stats.TotalPaid / float64(divisor)

	return stats
}

// HouseBreakdown computes the member breakdown of one house from a member
// snapshot already filtered or not; members of other houses are ignored.
func HouseBreakdown(houseID uuid.UUID, members []*models.Member, today time.Time) models.HouseStats {
	stats := models.HouseStats{HouseID: houseID}
	for _, m := range members {
		if m.HouseID != houseID {
			continue
		}
		stats.Total++
		stats.TotalFee += m.MonthlyFee
		switch billing.ComputeStatus(m.ExpirationDate, today) {
		case billing.StatusExpired:
			stats.Expired++
		case billing.StatusExpiring:
			stats.Expiring++
		default:
			stats.Active++
		}
	}
	return stats
}

// Stats returns the dashboard snapshot, from cache when present, otherwise
// recomputed from fresh repository reads.
func (a *AnalyticsService) Stats(ctx context.Context) (*models.Stats, error) {
	if cached, err := a.cacheSvc.GetStats(ctx); err == nil && cached != nil {
		return cached, nil
	}

	houses, err := a.houseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := a.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	members, err := a.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := a.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := Aggregate(houses, products, members, payments, time.Now())

	if err := a.cacheSvc.SetStats(ctx, &stats, statsTTL); err != nil {
		log.Printf("Failed to cache stats snapshot: %v", err)
	}

	return &stats, nil
}

// HouseStats returns the per-house breakdown for house cards.
func (a *AnalyticsService) HouseStats(ctx context.Context, houseID uuid.UUID) (*models.HouseStats, error) {
	if cached, err := a.cacheSvc.GetHouseStats(ctx, houseID); err == nil && cached != nil {
		return cached, nil
	}

	members, err := a.memberRepo.ListByHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}

	stats := HouseBreakdown(houseID, members, time.Now())

	if err := a.cacheSvc.SetHouseStats(ctx, &stats, statsTTL); err != nil {
		log.Printf("Failed to cache house stats for %s: %v", houseID.String(), err)
	}

	return &stats, nil
}

// Refresh drops cached snapshots and rebuilds the global one. Run by the
// background scheduler.
func (a *AnalyticsService) Refresh(ctx context.Context) error {
	if err := a.cacheSvc.InvalidateStats(ctx); err != nil {
		log.Printf("Failed to invalidate stats cache: %v", err)
	}
	_, err := a.Stats(ctx)
	return err
}
