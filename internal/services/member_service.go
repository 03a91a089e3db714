package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"housebill/internal/billing"
	"housebill/internal/caching"
	"housebill/internal/models"
	"housebill/internal/repositories"
	"housebill/internal/transfer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrMemberNotFound = errors.New("member not found")

// DefaultUpcomingDays is the lookahead window for the upcoming-payments panel
// when the caller does not specify one.
const DefaultUpcomingDays = 7

type MemberService struct {
	memberRepo  repositories.MemberRepository
	houseRepo   repositories.HouseRepository
	paymentRepo repositories.PaymentRepository
	cacheSvc    caching.CacheService
}

func NewMemberService(memberRepo repositories.MemberRepository, houseRepo repositories.HouseRepository,
	paymentRepo repositories.PaymentRepository, cacheSvc caching.CacheService) *MemberService {
	return &MemberService{
		memberRepo:  memberRepo,
		houseRepo:   houseRepo,
		paymentRepo: paymentRepo,
		cacheSvc:    cacheSvc,
	}
}

// CreateMember validates and stores a new member. Missing fields get
// defaults: monthly billing cycle, today's payment date, and an expiration
// one cycle after the payment date.
func (s *MemberService) CreateMember(ctx context.Context, member *models.Member) error {
	if member.Name == "" {
		return fmt.Errorf("member name is required")
	}
	if member.MonthlyFee < 0 {
		return fmt.Errorf("monthly fee must not be negative")
	}
	if _, err := s.houseRepo.GetByID(ctx, member.HouseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("house %s does not exist", member.HouseID)
		}
		return err
	}

	member.BillingCycle = string(billing.ParseCycle(member.BillingCycle))
	if member.PaymentDate.IsZero() {
		member.PaymentDate = billing.Midnight(time.Now())
	}
	if member.ExpirationDate.IsZero() {
		member.ExpirationDate = billing.NextExpiration(member.PaymentDate, billing.Cycle(member.BillingCycle))
	}
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return err
	}
	member.Status = string(billing.ComputeStatus(member.ExpirationDate, time.Now()))
	s.invalidateStats(ctx)
	return nil
}

// GetMember returns the member with derived status and full payment history.
func (s *MemberService) GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	member.Status = string(billing.ComputeStatus(member.ExpirationDate, time.Now()))
	history, err := s.paymentRepo.ListByMember(ctx, id)
	if err != nil {
		return nil, err
	}
	member.PaymentHistory = history
	return member, nil
}

func (s *MemberService) UpdateMember(ctx context.Context, member *models.Member) error {
	if member.Name == "" {
		return fmt.Errorf("member name is required")
	}
	if member.MonthlyFee < 0 {
		return fmt.Errorf("monthly fee must not be negative")
	}
	member.BillingCycle = string(billing.ParseCycle(member.BillingCycle))

	// Omitted dates keep their stored values; a partial update must never
	// persist a zero calendar date.
	if member.PaymentDate.IsZero() || member.ExpirationDate.IsZero() {
		current, err := s.memberRepo.GetByID(ctx, member.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrMemberNotFound
			}
			return err
		}
		if member.PaymentDate.IsZero() {
			member.PaymentDate = current.PaymentDate
		}
		if member.ExpirationDate.IsZero() {
			member.ExpirationDate = current.ExpirationDate
		}
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMemberNotFound
		}
		return err
	}
	member.Status = string(billing.ComputeStatus(member.ExpirationDate, time.Now()))
	s.invalidateStats(ctx)
	return nil
}

func (s *MemberService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMemberNotFound
		}
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *MemberService) ListMembers(ctx context.Context) ([]*models.Member, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	attachStatus(members)
	return members, nil
}

func (s *MemberService) ListMembersByHouse(ctx context.Context, houseID uuid.UUID) ([]*models.Member, error) {
	members, err := s.memberRepo.ListByHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}
	attachStatus(members)
	return members, nil
}

// RecordPayment appends a ledger entry and rolls the member's billing state
// forward. Amount 0 defaults to the member's fee. When no explicit expiration
// is given the next one is computed from whichever is later, today or the
// current expiration, so paying early extends rather than shortens coverage.
func (s *MemberService) RecordPayment(ctx context.Context, memberID uuid.UUID, amount float64,
	newExpiration *time.Time) (*models.Member, error) {
	if amount < 0 {
		return nil, fmt.Errorf("payment amount must not be negative")
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if amount == 0 {
		amount = member.MonthlyFee
	}

	payment := &models.PaymentRecord{
		ID:       uuid.New(),
		MemberID: memberID,
		Amount:   amount,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	today := billing.Midnight(time.Now())
	member.PaymentDate = today
	if newExpiration != nil {
		member.ExpirationDate = billing.Midnight(*newExpiration)
	} else {
		base := today
		if member.ExpirationDate.After(base) {
			base = member.ExpirationDate
		}
		member.ExpirationDate = billing.NextExpiration(base, billing.ParseCycle(member.BillingCycle))
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	member.Status = string(billing.ComputeStatus(member.ExpirationDate, time.Now()))
	history, err := s.paymentRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	member.PaymentHistory = history

	s.invalidateStats(ctx)
	log.Printf("Recorded payment of %.2f for member %s", amount, memberID.String())
	return member, nil
}

// UpcomingPayments returns members whose payment date falls within the next
// N days, today inclusive.
func (s *MemberService) UpcomingPayments(ctx context.Context, days int) ([]*models.Member, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	from := billing.Midnight(time.Now())
	to := from.AddDate(0, 0, days)

	members, err := s.memberRepo.ListPaymentDue(ctx, from, to)
	if err != nil {
		return nil, err
	}
	attachStatus(members)
	return members, nil
}

// ExportCSV renders every member as CSV in the fixed export format.
func (s *MemberService) ExportCSV(ctx context.Context) (string, string, error) {
	members, err := s.memberRepo.ListForExport(ctx)
	if err != nil {
		return "", "", err
	}
	data, err := transfer.MembersToCSV(members)
	if err != nil {
		return "", "", err
	}
	return transfer.ExportFileName(time.Now()), data, nil
}

// ImportCSV parses CSV text and inserts the parsed members into the target
// house. Row-level parse failures and insert failures are collected, never
// fatal to the batch.
func (s *MemberService) ImportCSV(ctx context.Context, csvData string, houseID uuid.UUID) (*transfer.ImportResult, error) {
	if _, err := s.houseRepo.GetByID(ctx, houseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}

	result := transfer.ParseMembersCSV(csvData, houseID, time.Now())
	for _, member := range result.Records {
		if err := s.memberRepo.Create(ctx, member); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", member.Name, err))
			continue
		}
		result.Imported++
	}

	if result.Imported > 0 {
		s.invalidateStats(ctx)
	}
	log.Printf("CSV import into house %s: %d imported, %d errors", houseID.String(), result.Imported, len(result.Errors))
	return result, nil
}

func attachStatus(members []*models.Member) {
	now := time.Now()
	for _, m := range members {
		m.Status = string(billing.ComputeStatus(m.ExpirationDate, now))
	}
}

func (s *MemberService) invalidateStats(ctx context.Context) {
	if err := s.cacheSvc.InvalidateStats(ctx); err != nil {
		log.Printf("Failed to invalidate stats cache: %v", err)
	}
}
