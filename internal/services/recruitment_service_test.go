package services

import (
	"context"
	"testing"
	"time"

	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/services/dto"
	"dangnyang_backend/internal/validator"
	"dangnyang_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recruitmentTestEnv struct {
	service         RecruitmentService
	shelterRepo     *fakeShelterRepo
	recruitmentRepo *fakeRecruitmentRepo

	admin   *models.User
	shelter *models.Shelter
}

func newRecruitmentTestEnv(t *testing.T) *recruitmentTestEnv {
	t.Helper()

	shelterRepo := newFakeShelterRepo()
	recruitmentRepo := newFakeRecruitmentRepo()

	admin := &models.User{
		BaseModel: models.BaseModel{ID: "admin-1"},
		Email:     "admin@example.com",
		UserType:  models.UserTypeShelterAdmin,
	}
	shelter := &models.Shelter{
		UserID: admin.ID,
		Name:   "행복보호소",
		Region: "서울",
	}
	require.NoError(t, shelterRepo.Create(shelter))

	return &recruitmentTestEnv{
		service:         NewRecruitmentService(recruitmentRepo, shelterRepo, validator.New()),
		shelterRepo:     shelterRepo,
		recruitmentRepo: recruitmentRepo,
		admin:           admin,
		shelter:         shelter,
	}
}

func (env *recruitmentTestEnv) seedRecruitment(t *testing.T, region, date, start, end string) *models.Recruitment {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	recruitment := &models.Recruitment{
		ShelterID: env.shelter.ID,
		Date:      day,
		StartTime: start,
		EndTime:   end,
		Type:      models.RecruitmentTypeCleaning,
		Status:    models.RecruitmentStatusOpen,
		Shelter:   &models.Shelter{Name: env.shelter.Name, Region: region},
	}
	require.NoError(t, env.recruitmentRepo.Create(recruitment))
	return recruitment
}

func validCreateRecruitment() dto.CreateRecruitmentRequest {
	return dto.CreateRecruitmentRequest{
		Date:        "2025-06-01",
		StartTime:   "10:00",
		EndTime:     "13:00",
		Type:        "walking",
		Description: "산책 봉사",
		Supplies:    []string{"목줄", "간식"},
	}
}

func TestCreateRecruitment(t *testing.T) {
	env := newRecruitmentTestEnv(t)

	created, err := env.service.Create(context.Background(), env.admin.ID, validCreateRecruitment())
	require.NoError(t, err)

	assert.Equal(t, env.shelter.ID, created.ShelterID)
	assert.Equal(t, "2025-06-01", created.Date)
	assert.Equal(t, models.RecruitmentStatusOpen, created.Status)
	assert.Equal(t, []string{"목줄", "간식"}, created.Supplies)
	assert.Equal(t, env.shelter.Name, created.ShelterName)
}

func TestCreateRecruitmentValidatesWindow(t *testing.T) {
	env := newRecruitmentTestEnv(t)

	req := validCreateRecruitment()
	req.StartTime = "13:00"
	req.EndTime = "10:00"
	_, err := env.service.Create(context.Background(), env.admin.ID, req)
	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))

	req = validCreateRecruitment()
	req.StartTime = req.EndTime
	_, err = env.service.Create(context.Background(), env.admin.ID, req)
	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))
}

func TestCreateRecruitmentWithoutShelter(t *testing.T) {
	env := newRecruitmentTestEnv(t)

	_, err := env.service.Create(context.Background(), "no-shelter-user", validCreateRecruitment())
	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))
}

func TestUpdateRecruitmentChecksOwnership(t *testing.T) {
	env := newRecruitmentTestEnv(t)
	ctx := context.Background()

	created, err := env.service.Create(ctx, env.admin.ID, validCreateRecruitment())
	require.NoError(t, err)

	require.NoError(t, env.shelterRepo.Create(&models.Shelter{UserID: "other-admin", Name: "다른보호소", Region: "부산"}))

	desc := "수정된 설명"
	_, err = env.service.Update(ctx, "other-admin", created.ID, dto.UpdateRecruitmentRequest{Description: &desc})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	status := "closed"
	updated, err := env.service.Update(ctx, env.admin.ID, created.ID, dto.UpdateRecruitmentRequest{
		Description: &desc,
		Status:      &status,
	})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, models.RecruitmentStatusClosed, updated.Status)
}

func TestUpdateRecruitmentRevalidatesWindow(t *testing.T) {
	env := newRecruitmentTestEnv(t)
	ctx := context.Background()

	created, err := env.service.Create(ctx, env.admin.ID, validCreateRecruitment())
	require.NoError(t, err)

	// Moving the start past the stored end is rejected.
	late := "14:00"
	_, err = env.service.Update(ctx, env.admin.ID, created.ID, dto.UpdateRecruitmentRequest{StartTime: &late})
	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))
}

func TestSearchRecruitments(t *testing.T) {
	env := newRecruitmentTestEnv(t)
	ctx := context.Background()

	seoul := env.seedRecruitment(t, "서울", "2025-06-01", "10:00", "12:00")
	busan := env.seedRecruitment(t, "부산", "2025-06-02", "14:00", "16:00")
	env.seedRecruitment(t, "대구", "2025-06-10", "08:00", "10:00")

	results, err := env.service.Search(ctx, dto.RecruitmentSearchQuery{Region: "서울,부산"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []string{results[0].ID, results[1].ID}
	assert.Contains(t, ids, seoul.ID)
	assert.Contains(t, ids, busan.ID)

	// Date range is inclusive on both ends.
	results, err = env.service.Search(ctx, dto.RecruitmentSearchQuery{
		DateFrom: "2025-06-01",
		DateTo:   "2025-06-02",
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Time filter keeps only overlapping windows.
	results, err = env.service.Search(ctx, dto.RecruitmentSearchQuery{
		StartTime: "11:00",
		EndTime:   "15:00",
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchRecruitmentsRejectsBadQueries(t *testing.T) {
	env := newRecruitmentTestEnv(t)
	ctx := context.Background()
	env.seedRecruitment(t, "서울", "2025-06-01", "10:00", "12:00")

	_, err := env.service.Search(ctx, dto.RecruitmentSearchQuery{Region: "서울,부산,대구,인천"})
	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))

	_, err = env.service.Search(ctx, dto.RecruitmentSearchQuery{Region: "Seoul"})
	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))

	_, err = env.service.Search(ctx, dto.RecruitmentSearchQuery{StartTime: "10:00"})
	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))

	_, err = env.service.Search(ctx, dto.RecruitmentSearchQuery{StartTime: "12:00", EndTime: "10:00"})
	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))
}

func TestSearchRecruitmentsEmptyIsNotFound(t *testing.T) {
	env := newRecruitmentTestEnv(t)

	_, err := env.service.Search(context.Background(), dto.RecruitmentSearchQuery{Region: "제주"})
	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))
}

func TestListRecruitmentImages(t *testing.T) {
	env := newRecruitmentTestEnv(t)

	recruitment := env.seedRecruitment(t, "서울", "2025-06-01", "10:00", "12:00")
	recruitment.Images = []models.RecruitmentImage{
		{BaseModel: models.BaseModel{ID: "img-1"}, ImageURL: "http://files.test/recruitments/r1/a_dog.jpg"},
	}
	require.NoError(t, env.recruitmentRepo.Update(recruitment))

	images, err := env.service.ListImages(context.Background(), recruitment.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "img-1", images[0].ID)

	_, err = env.service.ListImages(context.Background(), "missing")
	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))
}

func TestListMineRequiresShelter(t *testing.T) {
	env := newRecruitmentTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Create(ctx, env.admin.ID, validCreateRecruitment())
	require.NoError(t, err)

	mine, err := env.service.ListMine(ctx, env.admin.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = env.service.ListMine(ctx, "someone-else")
	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))
}
