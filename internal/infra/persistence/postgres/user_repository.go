// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/repository"
	"midatopay/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.first(ctx, "failed to find user by id", "id = ?", id)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.first(ctx, "failed to find user by email", "email = ?", email)
}

// FindByExternalID retrieves the user linked to an external subject.
func (repo *userRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	return repo.first(ctx, "failed to find user by external id", "external_id = ?", externalID)
}

// FindByExternalIDOrEmail resolves both keys in one round trip. When two different
// rows match, the one already linked to externalID is returned.
func (repo *userRepository) FindByExternalIDOrEmail(ctx context.Context, externalID, email string) (*entity.User, error) {
	var rows []*model.UserModel

	err := repo.db.WithContext(ctx).
		Where("external_id = ? OR email = ?", externalID, email).
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by external id or email")
	}
	if len(rows) == 0 {
		return nil, repository.ErrUserNotFound
	}

	for _, row := range rows {
		if row.ExternalID != nil && *row.ExternalID == externalID {
			return toUserDomain(row), nil
		}
	}

	return toUserDomain(rows[0]), nil
}

// Create persists a new user entity.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return writeError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// LinkExternalID only touches rows that are still unlinked, so two concurrent
// reconciliations cannot overwrite each other's subject.
func (repo *userRepository) LinkExternalID(ctx context.Context, id uuid.UUID, externalID string) error {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ? AND (external_id IS NULL OR external_id = '')", id).
		Updates(map[string]any{"external_id": externalID})
	if result.Error != nil {
		return writeError(result.Error, "failed to link external id")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if err := repo.exists(ctx, id); err != nil {
		return err
	}

	return errors.Wrap(repository.ErrDuplicateUser, "user is already linked")
}

// UpdateProfile writes the provided self-service columns.
func (repo *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fields repository.ProfileFields) error {
	columns := map[string]any{}
	if fields.Name != nil {
		columns["name"] = *fields.Name
	}
	if fields.Phone != nil {
		columns["phone"] = *fields.Phone
	}

	return repo.updateColumns(ctx, id, columns, "failed to update profile")
}

// UpdatePasswordHash replaces the stored hash.
func (repo *userRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return repo.updateColumns(ctx, id, map[string]any{"password_hash": hash}, "failed to update password")
}

// SyncIdentity writes provider-owned columns and leaves is_active alone.
func (repo *userRepository) SyncIdentity(ctx context.Context, id uuid.UUID, name, email string) error {
	columns := map[string]any{}
	if name != "" {
		columns["name"] = name
	}
	if email != "" {
		columns["email"] = email
	}

	return repo.updateColumns(ctx, id, columns, "failed to sync identity")
}

// Deactivate flips is_active on an active row and nothing else.
func (repo *userRepository) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false})
	if result.Error != nil {
		return false, writeError(result.Error, "failed to deactivate user")
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	return false, repo.exists(ctx, id)
}

func (repo *userRepository) updateColumns(ctx context.Context, id uuid.UUID, columns map[string]any, op string) error {
	if len(columns) == 0 {
		return repo.exists(ctx, id)
	}

	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return writeError(result.Error, op)
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (repo *userRepository) exists(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to find user by id")
	}
	if count == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func writeError(err error, op string) error {
	if isUniqueConstraintViolation(err) {
		return errors.Wrap(repository.ErrDuplicateUser, "email or external id already exists")
	}

	return domainerrors.NewDatabaseExecuteError(err, op)
}

func (repo *userRepository) first(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).Where(query, args...).Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, op)
	}

	return toUserDomain(&userM), nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:              data.ID,
		Email:           data.Email,
		Name:            data.Name,
		Phone:           data.Phone,
		PasswordHash:    data.PasswordHash,
		ExternalID:      data.ExternalID,
		Role:            entity.Role(data.Role),
		IsActive:        data.IsActive,
		WalletAddress:   data.WalletAddress,
		WalletCreatedAt: data.WalletCreatedAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	role := data.Role
	if role == "" {
		role = entity.RoleMerchant
	}

	return &model.UserModel{
		ID:              data.ID,
		Email:           data.Email,
		Name:            data.Name,
		Phone:           data.Phone,
		PasswordHash:    data.PasswordHash,
		ExternalID:      data.ExternalID,
		Role:            role.String(),
		IsActive:        data.IsActive,
		WalletAddress:   data.WalletAddress,
		WalletCreatedAt: data.WalletCreatedAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
