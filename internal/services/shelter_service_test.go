package services

import (
	"context"
	"testing"

	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/services/dto"
	"dangnyang_backend/internal/validator"
	"dangnyang_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShelterTestEnv(t *testing.T) (ShelterService, *fakeShelterRepo) {
	t.Helper()
	shelterRepo := newFakeShelterRepo()
	return NewShelterService(shelterRepo, validator.New()), shelterRepo
}

func seedShelter(t *testing.T, repo *fakeShelterRepo, userID, name, region, address string) *models.Shelter {
	t.Helper()
	shelter := &models.Shelter{
		UserID:      userID,
		Name:        name,
		Region:      region,
		Address:     address,
		ShelterType: models.ShelterTypeIndividual,
	}
	require.NoError(t, repo.Create(shelter))
	return shelter
}

func TestListShelters(t *testing.T) {
	service, repo := newShelterTestEnv(t)
	seedShelter(t, repo, "u1", "행복보호소", "서울", "서울시 강남구")
	seedShelter(t, repo, "u2", "사랑보호소", "부산", "부산시 해운대구")

	shelters, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, shelters, 2)
}

func TestGetShelterByID(t *testing.T) {
	service, repo := newShelterTestEnv(t)
	shelter := seedShelter(t, repo, "u1", "행복보호소", "서울", "서울시 강남구")

	found, err := service.GetByID(context.Background(), shelter.ID)
	require.NoError(t, err)
	assert.Equal(t, shelter.Name, found.Name)

	_, err = service.GetByID(context.Background(), "missing")
	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))
}

func TestSearchShelters(t *testing.T) {
	service, repo := newShelterTestEnv(t)
	seedShelter(t, repo, "u1", "행복보호소", "서울", "서울시 강남구")
	seedShelter(t, repo, "u2", "사랑보호소", "부산", "부산시 해운대구")

	ctx := context.Background()

	results, err := service.Search(ctx, dto.ShelterSearchQuery{Region: "서울"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "행복보호소", results[0].Name)

	results, err = service.Search(ctx, dto.ShelterSearchQuery{Name: "사랑"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "사랑보호소", results[0].Name)

	results, err = service.Search(ctx, dto.ShelterSearchQuery{Address: "해운대"})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchSheltersEmptyIsNotFound(t *testing.T) {
	service, repo := newShelterTestEnv(t)
	seedShelter(t, repo, "u1", "행복보호소", "서울", "서울시 강남구")

	_, err := service.Search(context.Background(), dto.ShelterSearchQuery{Region: "제주"})
	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))
}

func TestSearchSheltersRejectsUnknownRegion(t *testing.T) {
	service, _ := newShelterTestEnv(t)

	_, err := service.Search(context.Background(), dto.ShelterSearchQuery{Region: "Seoul"})
	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))
}

func TestListShelterImages(t *testing.T) {
	service, repo := newShelterTestEnv(t)

	shelter := &models.Shelter{
		UserID: "u1",
		Name:   "행복보호소",
		Region: "서울",
		Images: []models.ShelterImage{
			{BaseModel: models.BaseModel{ID: "img-1"}, ImageURL: "http://files.test/shelters/s1/a_front.jpg"},
		},
	}
	require.NoError(t, repo.Create(shelter))

	images, err := service.ListImages(context.Background(), shelter.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "img-1", images[0].ID)

	_, err = service.ListImages(context.Background(), "missing")
	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))
}

func TestGetAndUpdateMine(t *testing.T) {
	service, repo := newShelterTestEnv(t)
	seedShelter(t, repo, "u1", "행복보호소", "서울", "서울시 강남구")
	ctx := context.Background()

	mine, err := service.GetMine(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "행복보호소", mine.Name)

	_, err = service.GetMine(ctx, "no-shelter")
	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))

	name := "새이름보호소"
	region := "경기"
	updated, err := service.UpdateMine(ctx, "u1", dto.UpdateShelterRequest{Name: &name, Region: &region})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, region, updated.Region)

	// Untouched fields keep their values.
	assert.Equal(t, "서울시 강남구", updated.Address)

	bad := "Gyeonggi"
	_, err = service.UpdateMine(ctx, "u1", dto.UpdateShelterRequest{Region: &bad})
	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))
}
