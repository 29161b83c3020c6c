package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"dangnyang_backend/internal/models"
	"dangnyang_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadTestEnv struct {
	service         UploadService
	store           *fakeStorage
	userRepo        *fakeUserRepo
	shelterRepo     *fakeShelterRepo
	recruitmentRepo *fakeRecruitmentRepo

	volunteer *models.User
	admin     *models.User
	shelter   *models.Shelter
}

func newUploadTestEnv(t *testing.T) *uploadTestEnv {
	t.Helper()

	store := newFakeStorage()
	userRepo := newFakeUserRepo()
	shelterRepo := newFakeShelterRepo()
	recruitmentRepo := newFakeRecruitmentRepo()

	volunteer := &models.User{Email: "volunteer@example.com", UserType: models.UserTypeVolunteer}
	require.NoError(t, userRepo.Create(volunteer))

	admin := &models.User{Email: "admin@example.com", UserType: models.UserTypeShelterAdmin}
	require.NoError(t, userRepo.Create(admin))

	shelter := &models.Shelter{UserID: admin.ID, Name: "행복보호소", Region: "서울"}
	require.NoError(t, shelterRepo.Create(shelter))

	return &uploadTestEnv{
		service:         NewUploadService(store, userRepo, shelterRepo, recruitmentRepo),
		store:           store,
		userRepo:        userRepo,
		shelterRepo:     shelterRepo,
		recruitmentRepo: recruitmentRepo,
		volunteer:       volunteer,
		admin:           admin,
		shelter:         shelter,
	}
}

// makeFileHeader builds a real multipart.FileHeader by writing and
// re-parsing an in-memory form.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestUploadProfileImage(t *testing.T) {
	env := newUploadTestEnv(t)
	ctx := context.Background()

	resp, err := env.service.UploadProfileImage(ctx, env.volunteer.ID,
		makeFileHeader(t, "me.png", []byte("png-bytes")))
	require.NoError(t, err)

	key, ok := env.store.KeyFromURL(resp.ProfileImage)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(key, "users/"+env.volunteer.ID+"/"), key)
	assert.True(t, strings.HasSuffix(key, "_me.png"), key)
	assert.Equal(t, "image/png", env.store.saved[key])

	user, err := env.userRepo.FindByID(env.volunteer.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ProfileImage, user.ProfileImage)
}

func TestUploadProfileImageReplacesOld(t *testing.T) {
	env := newUploadTestEnv(t)
	ctx := context.Background()

	first, err := env.service.UploadProfileImage(ctx, env.volunteer.ID,
		makeFileHeader(t, "old.jpg", []byte("old")))
	require.NoError(t, err)

	_, err = env.service.UploadProfileImage(ctx, env.volunteer.ID,
		makeFileHeader(t, "new.jpg", []byte("new")))
	require.NoError(t, err)

	oldKey, ok := env.store.KeyFromURL(first.ProfileImage)
	require.True(t, ok)
	assert.Contains(t, env.store.deleted, oldKey)
}

func TestUploadProfileImageRejectsBadFiles(t *testing.T) {
	env := newUploadTestEnv(t)
	ctx := context.Background()

	_, err := env.service.UploadProfileImage(ctx, env.volunteer.ID,
		makeFileHeader(t, "script.exe", []byte("binary")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileExtension)

	_, err = env.service.UploadProfileImage(ctx, env.volunteer.ID,
		makeFileHeader(t, "huge.png", bytes.Repeat([]byte("a"), maxImageSize+1)))
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	// Rejected uploads never reach storage.
	assert.Empty(t, env.store.saved)
}

func TestDeleteProfileImage(t *testing.T) {
	env := newUploadTestEnv(t)
	ctx := context.Background()

	err := env.service.DeleteProfileImage(ctx, env.volunteer.ID)
	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))

	resp, err := env.service.UploadProfileImage(ctx, env.volunteer.ID,
		makeFileHeader(t, "me.png", []byte("png")))
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteProfileImage(ctx, env.volunteer.ID))

	key, _ := env.store.KeyFromURL(resp.ProfileImage)
	assert.Contains(t, env.store.deleted, key)

	user, err := env.userRepo.FindByID(env.volunteer.ID)
	require.NoError(t, err)
	assert.Empty(t, user.ProfileImage)
}

func TestUploadShelterLicense(t *testing.T) {
	env := newUploadTestEnv(t)
	ctx := context.Background()

	// PDF is allowed for licenses but not for images.
	shelterDTO, err := env.service.UploadShelterLicense(ctx, env.admin.ID,
		makeFileHeader(t, "license.pdf", []byte("pdf")))
	require.NoError(t, err)
	assert.NotEmpty(t, shelterDTO.BusinessLicenseFile)

	key, ok := env.store.KeyFromURL(shelterDTO.BusinessLicenseFile)
	require.True(t, ok)
	assert.Equal(t, "application/pdf", env.store.saved[key])

	_, err = env.service.UploadShelterLicense(ctx, env.volunteer.ID,
		makeFileHeader(t, "license.pdf", []byte("pdf")))
	assert.Equal(t, apperrors.CodeNotFound, appErrorCode(t, err))
}

func TestUploadShelterImagesValidatesAllBeforeSaving(t *testing.T) {
	env := newUploadTestEnv(t)
	ctx := context.Background()

	files := []*multipart.FileHeader{
		makeFileHeader(t, "front.jpg", []byte("a")),
		makeFileHeader(t, "notes.txt", []byte("b")),
	}
	_, err := env.service.UploadShelterImages(ctx, env.admin.ID, files)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileExtension)
	assert.Empty(t, env.store.saved)

	_, err = env.service.UploadShelterImages(ctx, env.admin.ID, nil)
	assert.Equal(t, apperrors.CodeValidationFailed, appErrorCode(t, err))

	images, err := env.service.UploadShelterImages(ctx, env.admin.ID, []*multipart.FileHeader{
		makeFileHeader(t, "front.jpg", []byte("a")),
		makeFileHeader(t, "yard.png", []byte("b")),
	})
	require.NoError(t, err)
	assert.Len(t, images, 2)
	assert.Len(t, env.store.saved, 2)
}

func TestDeleteShelterImageOwnership(t *testing.T) {
	env := newUploadTestEnv(t)
	ctx := context.Background()

	images, err := env.service.UploadShelterImages(ctx, env.admin.ID, []*multipart.FileHeader{
		makeFileHeader(t, "front.jpg", []byte("a")),
	})
	require.NoError(t, err)

	otherAdmin := &models.User{Email: "other@example.com", UserType: models.UserTypeShelterAdmin}
	require.NoError(t, env.userRepo.Create(otherAdmin))
	require.NoError(t, env.shelterRepo.Create(&models.Shelter{UserID: otherAdmin.ID, Name: "다른보호소", Region: "부산"}))

	err = env.service.DeleteShelterImage(ctx, otherAdmin.ID, images[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	require.NoError(t, env.service.DeleteShelterImage(ctx, env.admin.ID, images[0].ID))
	key, _ := env.store.KeyFromURL(images[0].ImageURL)
	assert.Contains(t, env.store.deleted, key)
}

func TestUploadRecruitmentImages(t *testing.T) {
	env := newUploadTestEnv(t)
	ctx := context.Background()

	recruitment := &models.Recruitment{
		ShelterID: env.shelter.ID,
		StartTime: "10:00",
		EndTime:   "12:00",
		Type:      models.RecruitmentTypeWalking,
		Status:    models.RecruitmentStatusOpen,
	}
	require.NoError(t, env.recruitmentRepo.Create(recruitment))

	images, err := env.service.UploadRecruitmentImages(ctx, env.admin.ID, recruitment.ID,
		[]*multipart.FileHeader{makeFileHeader(t, "dog.jpeg", []byte("a"))})
	require.NoError(t, err)
	require.Len(t, images, 1)

	key, ok := env.store.KeyFromURL(images[0].ImageURL)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(key, "recruitments/"+recruitment.ID+"/"), key)

	// Only the owning shelter can attach or remove images.
	otherAdmin := &models.User{Email: "other@example.com", UserType: models.UserTypeShelterAdmin}
	require.NoError(t, env.userRepo.Create(otherAdmin))
	require.NoError(t, env.shelterRepo.Create(&models.Shelter{UserID: otherAdmin.ID, Name: "다른보호소", Region: "부산"}))

	_, err = env.service.UploadRecruitmentImages(ctx, otherAdmin.ID, recruitment.ID,
		[]*multipart.FileHeader{makeFileHeader(t, "dog.jpg", []byte("a"))})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	err = env.service.DeleteRecruitmentImage(ctx, otherAdmin.ID, recruitment.ID, images[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	require.NoError(t, env.service.DeleteRecruitmentImage(ctx, env.admin.ID, recruitment.ID, images[0].ID))
}
