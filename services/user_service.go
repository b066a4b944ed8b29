package services

import (
	"context"

	"roomradar/errors"
	"roomradar/models"
	"roomradar/services/logger"
	"roomradar/storage"
)

// UserService quản lý hồ sơ user và tài khoản ngân hàng nhận tiền
type UserService struct {
	store  storage.Store
	logger logger.Logger
}

func NewUserService(store storage.Store, logger logger.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// GetProfile lấy hồ sơ user kèm danh sách ngân hàng
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}
	return user, nil
}

// UpdateProfile cập nhật các trường hồ sơ user tự sửa được
func (s *UserService) UpdateProfile(ctx context.Context, userID string, name, firstName, lastName, phoneNumber, avatarURL string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}

	if name != "" {
		user.Name = name
	}
	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if phoneNumber != "" {
		user.PhoneNumber = phoneNumber
	}
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể cập nhật hồ sơ", err)
	}
	return user, nil
}

// AddBank thêm tài khoản ngân hàng nhận tiền cho user
func (s *UserService) AddBank(ctx context.Context, userID string, bank models.Bank) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}

	if bank.ChannelCode == "" || bank.AccountNumber == "" || bank.HolderName == "" {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Thông tin tài khoản ngân hàng chưa đầy đủ", nil)
	}

	bank.UserID = userID
	user.Banks = append(user.Banks, bank)
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không thể thêm tài khoản ngân hàng", err)
	}
	return user, nil
}
