package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"housebill/internal/billing"
	"housebill/internal/caching"
	"housebill/internal/models"
	"housebill/internal/repositories"

	"github.com/google/uuid"
)

// SampleDataService resets the database to a demo dataset: a small product
// catalog, five houses, ten members on rotating billing cycles, and a partial
// payment history. Existing houses, members and payments are wiped first;
// the product catalog is kept if one already exists.
type SampleDataService struct {
	houseRepo   repositories.HouseRepository
	productRepo repositories.ProductRepository
	memberRepo  repositories.MemberRepository
	paymentRepo repositories.PaymentRepository
	cacheSvc    caching.CacheService
}

func NewSampleDataService(houseRepo repositories.HouseRepository, productRepo repositories.ProductRepository,
	memberRepo repositories.MemberRepository, paymentRepo repositories.PaymentRepository,
	cacheSvc caching.CacheService) *SampleDataService {
	return &SampleDataService{
		houseRepo:   houseRepo,
		productRepo: productRepo,
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		cacheSvc:    cacheSvc,
	}
}

type sampleProduct struct {
	name  string
	icon  string
	color string
}

var sampleProducts = []sampleProduct{
	{"Netflix", "🎬", "#e50914"},
	{"Apple One", "🍎", "#555555"},
	{"Spotify", "🎵", "#1db954"},
	{"YouTube Premium", "▶️", "#ff0000"},
	{"Disney+", "✨", "#113ccf"},
}

var sampleHouseNames = []string{
	"บ้านที่ 1 - Netflix",
	"บ้านที่ 2 - Apple One",
	"บ้านที่ 3 - Spotify",
	"บ้านที่ 4 - YouTube",
	"บ้านที่ 5 - Disney+",
}

type sampleMember struct {
	name string
	fee  float64
}

var sampleMembers = []sampleMember{
	{"สมชาย ใจดี", 299},
	{"สมหญิง รักเรียน", 199},
	{"วิชัย ทำงานหนัก", 299},
	{"นารี สวยงาม", 399},
	{"ประเสริฐ แข็งแรง", 199},
	{"พรทิพย์ เก่งมาก", 299},
	{"อนุชา ขยัน", 399},
	{"จินตนา ฉลาด", 199},
	{"ธีระ มั่นคง", 299},
	{"ปราณี อดทน", 199},
}

var sampleCycles = []billing.Cycle{billing.CycleMonthly, billing.CycleHalfYear, billing.CycleYearly}

// Seed wipes payments, members and houses, then rebuilds the demo dataset.
// Member dates are spread around today so the dashboard shows a mix of
// active, expiring and expired members.
func (s *SampleDataService) Seed(ctx context.Context) error {
	if err := s.paymentRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.memberRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.houseRepo.DeleteAll(ctx); err != nil {
		return err
	}

	products, err := s.ensureProducts(ctx)
	if err != nil {
		return err
	}

	houseIDs := make([]uuid.UUID, 0, len(sampleHouseNames))
	for i, name := range sampleHouseNames {
		house := &models.House{
			ID:          uuid.New(),
			Name:        name,
			Description: fmt.Sprintf("รายละเอียดของ%s", name),
		}
		if i < len(products) {
			house.ProductID = &products[i].ID
		}
		if err := s.houseRepo.Create(ctx, house); err != nil {
			return err
		}
		houseIDs = append(houseIDs, house.ID)
	}

	today := billing.Midnight(time.Now())
	for i, m := range sampleMembers {
		member := &models.Member{
			ID:             uuid.New(),
			HouseID:        houseIDs[i%len(houseIDs)],
			Name:           m.name,
			Email:          fmt.Sprintf("member%d@example.com", i+1),
			Phone:          fmt.Sprintf("08%08d", rand.Intn(90000000)+10000000),
			MonthlyFee:     m.fee,
			BillingCycle:   string(sampleCycles[i%len(sampleCycles)]),
			PaymentDate:    today.AddDate(0, 0, i*3-10),
			ExpirationDate: today.AddDate(0, 0, i*5-15),
		}
		if err := s.memberRepo.Create(ctx, member); err != nil {
			return err
		}

		if i%2 == 0 {
			payment := &models.PaymentRecord{
				ID:       uuid.New(),
				MemberID: member.ID,
				Amount:   m.fee,
			}
			if err := s.paymentRepo.Create(ctx, payment); err != nil {
				return err
			}
		}
	}

	if err := s.cacheSvc.InvalidateStats(ctx); err != nil {
		log.Printf("Failed to invalidate stats cache: %v", err)
	}
	log.Printf("Sample data created: %d houses, %d members", len(houseIDs), len(sampleMembers))
	return nil
}

// ensureProducts returns the existing catalog, seeding the default one only
// when the table is empty.
func (s *SampleDataService) ensureProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		return products, nil
	}

	for _, p := range sampleProducts {
		product := &models.Product{
			ID:    uuid.New(),
			Name:  p.name,
			Icon:  p.icon,
			Color: p.color,
		}
		if err := s.productRepo.Create(ctx, product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
