package services

import (
	"context"
	"testing"
	"time"

	"housebill/internal/billing"
	"housebill/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// Mock repositories and cache

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemberRepository) List(ctx context.Context) ([]*models.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Member), args.Error(1)
}

func (m *MockMemberRepository) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*models.Member, error) {
	args := m.Called(ctx, houseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Member), args.Error(1)
}

func (m *MockMemberRepository) ListPaymentDue(ctx context.Context, from, to time.Time) ([]*models.Member, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Member), args.Error(1)
}

func (m *MockMemberRepository) ListForExport(ctx context.Context) ([]*models.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Member), args.Error(1)
}

func (m *MockMemberRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockHouseRepository struct {
	mock.Mock
}

func (m *MockHouseRepository) Create(ctx context.Context, house *models.House) error {
	args := m.Called(ctx, house)
	return args.Error(0)
}

func (m *MockHouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.House), args.Error(1)
}

func (m *MockHouseRepository) Update(ctx context.Context, house *models.House) error {
	args := m.Called(ctx, house)
	return args.Error(0)
}

func (m *MockHouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHouseRepository) List(ctx context.Context) ([]*models.House, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.House), args.Error(1)
}

func (m *MockHouseRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.PaymentRecord) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*models.PaymentRecord, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) ListAll(ctx context.Context) ([]*models.PaymentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

func (m *MockCacheService) SetStats(ctx context.Context, stats *models.Stats, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetHouseStats(ctx context.Context, houseID uuid.UUID) (*models.HouseStats, error) {
	args := m.Called(ctx, houseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HouseStats), args.Error(1)
}

func (m *MockCacheService) SetHouseStats(ctx context.Context, stats *models.HouseStats, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateStats(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MemberServiceTestSuite struct {
	suite.Suite
	memberRepo  *MockMemberRepository
	houseRepo   *MockHouseRepository
	paymentRepo *MockPaymentRepository
	cacheSvc    *MockCacheService
	service     *MemberService
	houseID     uuid.UUID
	context     context.Context
}

func (suite *MemberServiceTestSuite) SetupTest() {
	suite.memberRepo = new(MockMemberRepository)
	suite.houseRepo = new(MockHouseRepository)
	suite.paymentRepo = new(MockPaymentRepository)
	suite.cacheSvc = new(MockCacheService)
	suite.service = NewMemberService(suite.memberRepo, suite.houseRepo, suite.paymentRepo, suite.cacheSvc)
	suite.houseID = uuid.New()
	suite.context = context.Background()
}

func TestMemberServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MemberServiceTestSuite))
}

func (suite *MemberServiceTestSuite) house() *models.House {
	return &models.House{ID: suite.houseID, Name: "บ้าน A"}
}

func (suite *MemberServiceTestSuite) TestCreateMember_AppliesDefaults() {
	suite.houseRepo.On("GetByID", suite.context, suite.houseID).Return(suite.house(), nil)
	suite.memberRepo.On("Create", suite.context, mock.AnythingOfType("*models.Member")).Return(nil)
	suite.cacheSvc.On("InvalidateStats", suite.context).Return(nil)

	member := &models.Member{
		HouseID:    suite.houseID,
		Name:       "สมชาย ใจดี",
		MonthlyFee: 299,
	}

	err := suite.service.CreateMember(suite.context, member)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, member.ID)
	assert.Equal(suite.T(), "monthly", member.BillingCycle)

	today := billing.Midnight(time.Now())
	assert.Equal(suite.T(), today, member.PaymentDate)
	assert.Equal(suite.T(), billing.NextExpiration(today, billing.CycleMonthly), member.ExpirationDate)

	suite.memberRepo.AssertExpectations(suite.T())
	suite.cacheSvc.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestCreateMember_RejectsMissingName() {
	err := suite.service.CreateMember(suite.context, &models.Member{HouseID: suite.houseID})
	assert.Error(suite.T(), err)
	suite.memberRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *MemberServiceTestSuite) TestCreateMember_RejectsUnknownHouse() {
	suite.houseRepo.On("GetByID", suite.context, suite.houseID).Return(nil, pgx.ErrNoRows)

	member := &models.Member{HouseID: suite.houseID, Name: "สมชาย"}
	err := suite.service.CreateMember(suite.context, member)
	assert.Error(suite.T(), err)
	suite.memberRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *MemberServiceTestSuite) TestUpdateMember_KeepsStoredDatesWhenOmitted() {
	memberID := uuid.New()
	storedPayment := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	storedExpiration := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	stored := &models.Member{
		ID:             memberID,
		HouseID:        suite.houseID,
		Name:           "สมชาย",
		MonthlyFee:     299,
		BillingCycle:   "monthly",
		PaymentDate:    storedPayment,
		ExpirationDate: storedExpiration,
	}

	suite.memberRepo.On("GetByID", suite.context, memberID).Return(stored, nil)
	suite.memberRepo.On("Update", suite.context, mock.MatchedBy(func(m *models.Member) bool {
		return !m.PaymentDate.IsZero() && !m.ExpirationDate.IsZero()
	})).Return(nil)
	suite.cacheSvc.On("InvalidateStats", suite.context).Return(nil)

	// An update omitting both date fields.
	member := &models.Member{
		ID:         memberID,
		HouseID:    suite.houseID,
		Name:       "สมชาย แก้ไข",
		MonthlyFee: 349,
	}

	err := suite.service.UpdateMember(suite.context, member)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), storedPayment, member.PaymentDate)
	assert.Equal(suite.T(), storedExpiration, member.ExpirationDate)
	assert.NotEqual(suite.T(), string(billing.StatusUnknown), member.Status)

	suite.memberRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestUpdateMember_ZeroDatesUnknownMember() {
	memberID := uuid.New()
	suite.memberRepo.On("GetByID", suite.context, memberID).Return(nil, pgx.ErrNoRows)

	member := &models.Member{ID: memberID, HouseID: suite.houseID, Name: "สมชาย"}
	err := suite.service.UpdateMember(suite.context, member)
	assert.ErrorIs(suite.T(), err, ErrMemberNotFound)
	suite.memberRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *MemberServiceTestSuite) TestRecordPayment_DefaultsAmountAndRollsForward() {
	memberID := uuid.New()
	futureExpiration := billing.Midnight(time.Now()).AddDate(0, 0, 10)
	stored := &models.Member{
		ID:             memberID,
		HouseID:        suite.houseID,
		Name:           "สมชาย",
		MonthlyFee:     299,
		BillingCycle:   "monthly",
		ExpirationDate: futureExpiration,
	}

	suite.memberRepo.On("GetByID", suite.context, memberID).Return(stored, nil)
	suite.paymentRepo.On("Create", suite.context, mock.MatchedBy(func(p *models.PaymentRecord) bool {
		return p.MemberID == memberID && p.Amount == 299
	})).Return(nil)
	suite.memberRepo.On("Update", suite.context, mock.AnythingOfType("*models.Member")).Return(nil)
	suite.paymentRepo.On("ListByMember", suite.context, memberID).Return([]*models.PaymentRecord{
		{ID: uuid.New(), MemberID: memberID, Amount: 299},
	}, nil)
	suite.cacheSvc.On("InvalidateStats", suite.context).Return(nil)

	member, err := suite.service.RecordPayment(suite.context, memberID, 0, nil)
	assert.NoError(suite.T(), err)

	// Early payment extends from the future expiration, not from today.
	assert.Equal(suite.T(), billing.NextExpiration(futureExpiration, billing.CycleMonthly), member.ExpirationDate)
	assert.Equal(suite.T(), billing.Midnight(time.Now()), member.PaymentDate)
	assert.Len(suite.T(), member.PaymentHistory, 1)

	suite.paymentRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestRecordPayment_HonorsExplicitExpiration() {
	memberID := uuid.New()
	stored := &models.Member{
		ID:             memberID,
		HouseID:        suite.houseID,
		Name:           "สมชาย",
		MonthlyFee:     299,
		BillingCycle:   "monthly",
		ExpirationDate: billing.Midnight(time.Now()),
	}

	suite.memberRepo.On("GetByID", suite.context, memberID).Return(stored, nil)
	suite.paymentRepo.On("Create", suite.context, mock.AnythingOfType("*models.PaymentRecord")).Return(nil)
	suite.memberRepo.On("Update", suite.context, mock.AnythingOfType("*models.Member")).Return(nil)
	suite.paymentRepo.On("ListByMember", suite.context, memberID).Return([]*models.PaymentRecord{}, nil)
	suite.cacheSvc.On("InvalidateStats", suite.context).Return(nil)

	explicit := time.Date(2027, 1, 15, 9, 30, 0, 0, time.UTC)
	member, err := suite.service.RecordPayment(suite.context, memberID, 500, &explicit)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), member.ExpirationDate)
}

func (suite *MemberServiceTestSuite) TestRecordPayment_MemberNotFound() {
	memberID := uuid.New()
	suite.memberRepo.On("GetByID", suite.context, memberID).Return(nil, pgx.ErrNoRows)

	member, err := suite.service.RecordPayment(suite.context, memberID, 100, nil)
	assert.Nil(suite.T(), member)
	assert.ErrorIs(suite.T(), err, ErrMemberNotFound)
}

func (suite *MemberServiceTestSuite) TestImportCSV_CountsImportedAndErrors() {
	suite.houseRepo.On("GetByID", suite.context, suite.houseID).Return(suite.house(), nil)
	suite.cacheSvc.On("InvalidateStats", suite.context).Return(nil)

	// First insert succeeds, second fails.
	suite.memberRepo.On("Create", suite.context, mock.MatchedBy(func(m *models.Member) bool {
		return m.Name == "สมชาย"
	})).Return(nil)
	suite.memberRepo.On("Create", suite.context, mock.MatchedBy(func(m *models.Member) bool {
		return m.Name == "สมหญิง"
	})).Return(pgx.ErrTxClosed)

	data := "สมชาย,a@b.com,081,299,monthly,2026-08-01,2026-09-01\n" +
		"สมหญิง,b@b.com,082,199,yearly,2026-08-01,2026-09-01\n"

	result, err := suite.service.ImportCSV(suite.context, data, suite.houseID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Imported)
	assert.Len(suite.T(), result.Errors, 1)
}

func (suite *MemberServiceTestSuite) TestImportCSV_UnknownHouse() {
	suite.houseRepo.On("GetByID", suite.context, suite.houseID).Return(nil, pgx.ErrNoRows)

	result, err := suite.service.ImportCSV(suite.context, "สมชาย\n", suite.houseID)
	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, ErrHouseNotFound)
}

func (suite *MemberServiceTestSuite) TestUpcomingPayments_DefaultWindow() {
	suite.memberRepo.On("ListPaymentDue", suite.context,
		mock.MatchedBy(func(from time.Time) bool {
			return from.Equal(billing.Midnight(time.Now()))
		}),
		mock.MatchedBy(func(to time.Time) bool {
			return to.Equal(billing.Midnight(time.Now()).AddDate(0, 0, DefaultUpcomingDays))
		})).Return([]*models.Member{}, nil)

	members, err := suite.service.UpcomingPayments(suite.context, 0)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), members)
	suite.memberRepo.AssertExpectations(suite.T())
}

func (suite *MemberServiceTestSuite) TestListMembers_AttachesStatus() {
	expired := &models.Member{
		ID:             uuid.New(),
		HouseID:        suite.houseID,
		Name:           "หมดอายุ",
		ExpirationDate: billing.Midnight(time.Now()).AddDate(0, 0, -3),
	}
	active := &models.Member{
		ID:             uuid.New(),
		HouseID:        suite.houseID,
		Name:           "ใช้งาน",
		ExpirationDate: billing.Midnight(time.Now()).AddDate(0, 0, 60),
	}
	suite.memberRepo.On("List", suite.context).Return([]*models.Member{expired, active}, nil)

	members, err := suite.service.ListMembers(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), string(billing.StatusExpired), members[0].Status)
	assert.Equal(suite.T(), string(billing.StatusActive), members[1].Status)
}
