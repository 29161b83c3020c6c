package repositories

import (
	"errors"

	"dangnyang_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByContactNumber(contactNumber string) (*models.User, error)
	FindBySocialID(socialType models.SocialType, socialID string) (*models.User, error)
	FindByNameAndContactNumber(name, contactNumber string) (*models.User, error)
	Create(user *models.User) error
	// CreateWithShelter creates the admin account and its shelter in
	// one transaction.
	CreateWithShelter(user *models.User, shelter *models.Shelter) error
	Update(user *models.User) error
	UpdatePassword(userID, hashedPassword string) error
	UpdateProfileImage(userID, imageURL string) error
	MarkEmailVerified(userID string) error
	Delete(userID string) error
	ExistsByEmail(email string) (bool, error)
	ExistsByContactNumber(contactNumber string) (bool, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Shelter").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Shelter").First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByContactNumber(contactNumber string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "contact_number = ?", contactNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindBySocialID(socialType models.SocialType, socialID string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "social_type = ? AND social_id = ?", socialType, socialID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByNameAndContactNumber(name, contactNumber string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "name = ? AND contact_number = ?", name, contactNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) CreateWithShelter(user *models.User, shelter *models.Shelter) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		shelter.UserID = user.ID
		return tx.Create(shelter).Error
	})
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdatePassword(userID, hashedPassword string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateProfileImage(userID, imageURL string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("profile_image", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) MarkEmailVerified(userID string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("is_email_verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(userID string) error {
	result := r.db.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) ExistsByContactNumber(contactNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("contact_number = ?", contactNumber).Count(&count).Error
	return count > 0, err
}
