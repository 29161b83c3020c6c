package services

import (
	"context"
	"io"
	"strings"
	"time"

	"dangnyang_backend/internal/models"
	"dangnyang_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repository fakes. Each fake assigns IDs the way the
// database would and returns the repository's sentinel errors.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByContactNumber(contactNumber string) (*models.User, error) {
	for _, u := range r.users {
		if u.ContactNumber != nil && *u.ContactNumber == contactNumber {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindBySocialID(socialType models.SocialType, socialID string) (*models.User, error) {
	for _, u := range r.users {
		if u.SocialType == socialType && u.SocialID != nil && *u.SocialID == socialID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByNameAndContactNumber(name, contactNumber string) (*models.User, error) {
	for _, u := range r.users {
		if u.Name == name && u.ContactNumber != nil && *u.ContactNumber == contactNumber {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) CreateWithShelter(user *models.User, shelter *models.Shelter) error {
	if err := r.Create(user); err != nil {
		return err
	}
	shelter.UserID = user.ID
	if shelter.ID == "" {
		shelter.ID = uuid.NewString()
	}
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID, hashedPassword string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) UpdateProfileImage(userID, imageURL string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.ProfileImage = imageURL
	return nil
}

func (r *fakeUserRepo) MarkEmailVerified(userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsEmailVerified = true
	return nil
}

func (r *fakeUserRepo) Delete(userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := r.FindByEmail(email)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsByContactNumber(contactNumber string) (bool, error) {
	_, err := r.FindByContactNumber(contactNumber)
	return err == nil, nil
}

type fakeShelterRepo struct {
	shelters map[string]*models.Shelter
	images   map[string]*models.ShelterImage
}

func newFakeShelterRepo() *fakeShelterRepo {
	return &fakeShelterRepo{
		shelters: map[string]*models.Shelter{},
		images:   map[string]*models.ShelterImage{},
	}
}

func (r *fakeShelterRepo) FindAll() ([]models.Shelter, error) {
	result := make([]models.Shelter, 0, len(r.shelters))
	for _, s := range r.shelters {
		result = append(result, *s)
	}
	return result, nil
}

func (r *fakeShelterRepo) FindByID(id string) (*models.Shelter, error) {
	if s, ok := r.shelters[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, repositories.ErrShelterNotFound
}

func (r *fakeShelterRepo) FindByUserID(userID string) (*models.Shelter, error) {
	for _, s := range r.shelters {
		if s.UserID == userID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repositories.ErrShelterNotFound
}

func (r *fakeShelterRepo) Search(filter repositories.ShelterFilter) ([]models.Shelter, error) {
	result := []models.Shelter{}
	for _, s := range r.shelters {
		if filter.Name != "" && !strings.Contains(s.Name, filter.Name) {
			continue
		}
		if filter.Region != "" && s.Region != filter.Region {
			continue
		}
		if filter.Address != "" && !strings.Contains(s.Address, filter.Address) {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (r *fakeShelterRepo) Create(shelter *models.Shelter) error {
	if shelter.ID == "" {
		shelter.ID = uuid.NewString()
	}
	copied := *shelter
	r.shelters[shelter.ID] = &copied
	return nil
}

func (r *fakeShelterRepo) Update(shelter *models.Shelter) error {
	if _, ok := r.shelters[shelter.ID]; !ok {
		return repositories.ErrShelterNotFound
	}
	copied := *shelter
	r.shelters[shelter.ID] = &copied
	return nil
}

func (r *fakeShelterRepo) UpdateLicenseFile(shelterID, fileURL string) error {
	s, ok := r.shelters[shelterID]
	if !ok {
		return repositories.ErrShelterNotFound
	}
	s.BusinessLicenseFile = fileURL
	return nil
}

func (r *fakeShelterRepo) AddImage(image *models.ShelterImage) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	copied := *image
	r.images[image.ID] = &copied
	return nil
}

func (r *fakeShelterRepo) FindImage(imageID string) (*models.ShelterImage, error) {
	if img, ok := r.images[imageID]; ok {
		copied := *img
		return &copied, nil
	}
	return nil, repositories.ErrShelterNotFound
}

func (r *fakeShelterRepo) DeleteImage(imageID string) error {
	delete(r.images, imageID)
	return nil
}

type fakeRecruitmentRepo struct {
	recruitments map[string]*models.Recruitment
	images       map[string]*models.RecruitmentImage
}

func newFakeRecruitmentRepo() *fakeRecruitmentRepo {
	return &fakeRecruitmentRepo{
		recruitments: map[string]*models.Recruitment{},
		images:       map[string]*models.RecruitmentImage{},
	}
}

func (r *fakeRecruitmentRepo) FindAll() ([]models.Recruitment, error) {
	result := make([]models.Recruitment, 0, len(r.recruitments))
	for _, rec := range r.recruitments {
		result = append(result, *rec)
	}
	return result, nil
}

func (r *fakeRecruitmentRepo) FindByID(id string) (*models.Recruitment, error) {
	if rec, ok := r.recruitments[id]; ok {
		copied := *rec
		return &copied, nil
	}
	return nil, repositories.ErrRecruitmentNotFound
}

func (r *fakeRecruitmentRepo) FindByShelterID(shelterID string) ([]models.Recruitment, error) {
	result := []models.Recruitment{}
	for _, rec := range r.recruitments {
		if rec.ShelterID == shelterID {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (r *fakeRecruitmentRepo) Search(filter repositories.RecruitmentFilter) ([]models.Recruitment, error) {
	result := []models.Recruitment{}
	for _, rec := range r.recruitments {
		if len(filter.Regions) > 0 {
			if rec.Shelter == nil || !contains(filter.Regions, rec.Shelter.Region) {
				continue
			}
		}
		if filter.DateFrom != nil && rec.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && rec.Date.After(*filter.DateTo) {
			continue
		}
		if filter.StartTime != "" && filter.EndTime != "" {
			if !models.TimeWindowsOverlap(rec.StartTime, rec.EndTime, filter.StartTime, filter.EndTime) {
				continue
			}
		}
		result = append(result, *rec)
	}
	return result, nil
}

func (r *fakeRecruitmentRepo) Create(recruitment *models.Recruitment) error {
	if recruitment.ID == "" {
		recruitment.ID = uuid.NewString()
	}
	copied := *recruitment
	r.recruitments[recruitment.ID] = &copied
	return nil
}

func (r *fakeRecruitmentRepo) Update(recruitment *models.Recruitment) error {
	if _, ok := r.recruitments[recruitment.ID]; !ok {
		return repositories.ErrRecruitmentNotFound
	}
	copied := *recruitment
	r.recruitments[recruitment.ID] = &copied
	return nil
}

func (r *fakeRecruitmentRepo) AddImage(image *models.RecruitmentImage) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	copied := *image
	r.images[image.ID] = &copied
	return nil
}

func (r *fakeRecruitmentRepo) FindImage(imageID string) (*models.RecruitmentImage, error) {
	if img, ok := r.images[imageID]; ok {
		copied := *img
		return &copied, nil
	}
	return nil, repositories.ErrRecruitmentNotFound
}

func (r *fakeRecruitmentRepo) DeleteImage(imageID string) error {
	delete(r.images, imageID)
	return nil
}

type fakeApplicationRepo struct {
	applications    map[string]*models.Application
	recruitmentRepo *fakeRecruitmentRepo
	histories       []*models.History
}

func newFakeApplicationRepo(recruitmentRepo *fakeRecruitmentRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications:    map[string]*models.Application{},
		recruitmentRepo: recruitmentRepo,
	}
}

func (r *fakeApplicationRepo) FindByID(id string) (*models.Application, error) {
	if a, ok := r.applications[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) FindByUserID(userID string) ([]models.Application, error) {
	result := []models.Application{}
	for _, a := range r.applications {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) FindByRecruitmentID(recruitmentID string) ([]models.Application, error) {
	result := []models.Application{}
	for _, a := range r.applications {
		if a.RecruitmentID == recruitmentID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) FindActiveByUserOnDate(userID string, date time.Time) ([]models.Application, error) {
	result := []models.Application{}
	for _, a := range r.applications {
		if a.UserID != userID {
			continue
		}
		if a.Status != models.ApplicationStatusPending && a.Status != models.ApplicationStatusApproved {
			continue
		}
		rec, err := r.recruitmentRepo.FindByID(a.RecruitmentID)
		if err != nil {
			continue
		}
		if !models.SameDate(rec.Date, date) {
			continue
		}
		copied := *a
		copied.Recruitment = rec
		result = append(result, copied)
	}
	return result, nil
}

func (r *fakeApplicationRepo) Create(application *models.Application) error {
	for _, a := range r.applications {
		if a.UserID == application.UserID && a.RecruitmentID == application.RecruitmentID {
			return repositories.ErrApplicationDuplicate
		}
	}
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	application.CreatedAt = time.Now()
	copied := *application
	r.applications[application.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) UpdateStatus(application *models.Application) error {
	a, ok := r.applications[application.ID]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Status = application.Status
	a.RejectedReason = application.RejectedReason
	return nil
}

func (r *fakeApplicationRepo) MarkAttended(application *models.Application) (*models.History, error) {
	a, ok := r.applications[application.ID]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	a.Status = models.ApplicationStatusAttended

	history := &models.History{
		BaseModel:     models.BaseModel{ID: uuid.NewString()},
		UserID:        a.UserID,
		ShelterID:     a.ShelterID,
		ApplicationID: a.ID,
	}
	r.histories = append(r.histories, history)
	return history, nil
}

func (r *fakeApplicationRepo) Delete(id string) error {
	if _, ok := r.applications[id]; !ok {
		return repositories.ErrApplicationNotFound
	}
	delete(r.applications, id)
	return nil
}

type fakeHistoryRepo struct {
	histories map[string]*models.History
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{histories: map[string]*models.History{}}
}

func (r *fakeHistoryRepo) FindByUserID(userID string) ([]models.History, error) {
	result := []models.History{}
	for _, h := range r.histories {
		if h.UserID == userID {
			result = append(result, *h)
		}
	}
	return result, nil
}

func (r *fakeHistoryRepo) FindByID(id string) (*models.History, error) {
	if h, ok := r.histories[id]; ok {
		copied := *h
		return &copied, nil
	}
	return nil, repositories.ErrHistoryNotFound
}

func (r *fakeHistoryRepo) FindByApplicationID(applicationID string) (*models.History, error) {
	for _, h := range r.histories {
		if h.ApplicationID == applicationID {
			copied := *h
			return &copied, nil
		}
	}
	return nil, repositories.ErrHistoryNotFound
}

func (r *fakeHistoryRepo) Create(history *models.History) error {
	if history.ID == "" {
		history.ID = uuid.NewString()
	}
	copied := *history
	r.histories[history.ID] = &copied
	return nil
}

func (r *fakeHistoryRepo) UpdateRating(historyID string, rating int) error {
	h, ok := r.histories[historyID]
	if !ok {
		return repositories.ErrHistoryNotFound
	}
	h.Rating = rating
	return nil
}

type fakeTokenRepo struct {
	blacklist map[string]bool
	codes     map[string]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{blacklist: map[string]bool{}, codes: map[string]string{}}
}

func (r *fakeTokenRepo) BlacklistRefreshToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl > 0 {
		r.blacklist[jti] = true
	}
	return nil
}

func (r *fakeTokenRepo) IsRefreshTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	return r.blacklist[jti], nil
}

func (r *fakeTokenRepo) StoreEmailCode(ctx context.Context, email, code string, ttl time.Duration) error {
	r.codes[email] = code
	return nil
}

func (r *fakeTokenRepo) GetEmailCode(ctx context.Context, email string) (string, error) {
	code, ok := r.codes[email]
	if !ok {
		return "", repositories.ErrCodeNotFound
	}
	return code, nil
}

func (r *fakeTokenRepo) DeleteEmailCode(ctx context.Context, email string) error {
	delete(r.codes, email)
	return nil
}

// fakeStorage records saves and deletes so tests can assert that
// validation happens before any storage call.
type fakeStorage struct {
	saved   map[string]string // key -> content type
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string]string{}}
}

func (s *fakeStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	s.saved[key] = contentType
	return nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.saved[key]
	return ok, nil
}

func (s *fakeStorage) GetURL(key string) string {
	return "http://files.test/" + key
}

func (s *fakeStorage) KeyFromURL(url string) (string, bool) {
	const prefix = "http://files.test/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

type fakeMailer struct {
	tempPasswords map[string]string // to -> password
	codes         map[string]string // to -> code
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{tempPasswords: map[string]string{}, codes: map[string]string{}}
}

func (m *fakeMailer) SendTempPassword(to, tempPassword string) error {
	m.tempPasswords[to] = tempPassword
	return nil
}

func (m *fakeMailer) SendVerificationCode(to, code string) error {
	m.codes[to] = code
	return nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
