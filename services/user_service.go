package services

import (
	"errors"

	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
	"qrasset-http-service/utils"
)

// InterfaceUserService 사용자(관리자 계정) 서비스 인터페이스
type InterfaceUserService interface {
	Register(email, password, companyName string) (*models.User, error)
	Login(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	UpdateProfile(userID string, updates map[string]interface{}) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	GetAllUsers() ([]models.User, error)
	UpdateUserRole(callerID, targetID string, role models.UserRole) (*models.User, error)
	EnsureDefaultAdmin() error
}

// UserService 사용자 관련 서비스
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 새 사용자 서비스 생성
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// Register 새 계정 등록. 기본 역할은 manager.
func (s *UserService) Register(email, password, companyName string) (*models.User, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserAlreadyExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		CompanyName:  companyName,
		Role:         models.UserRoleManager,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Login 이메일/비밀번호 검증 후 사용자 반환
func (s *UserService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 존재하지 않는 이메일도 동일한 에러로 응답한다
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetUserByID ID로 사용자 조회
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile 프로필(회사명 등) 수정
func (s *UserService) UpdateProfile(userID string, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetUserByID(userID)
}

// ChangePassword 현재 비밀번호 확인 후 새 비밀번호로 변경
func (s *UserService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.DB.Model(user).Update("password_hash", hash).Error
}

// GetAllUsers 전체 사용자 목록 (admin 전용, 역할 확인은 컨트롤러에서)
func (s *UserService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole 사용자 역할 변경. 마지막 admin의 강등은 허용하지 않는다.
func (s *UserService) UpdateUserRole(callerID, targetID string, role models.UserRole) (*models.User, error) {
	target, err := s.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}

	if target.Role == models.UserRoleAdmin && role != models.UserRoleAdmin {
		var adminCount int64
		if err := s.DB.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount).Error; err != nil {
			return nil, err
		}
		if adminCount <= 1 {
			return nil, errors.New("시스템에는 최소 한 명의 admin이 있어야 합니다")
		}
	}

	if err := s.DB.Model(target).Update("role", role).Error; err != nil {
		return nil, err
	}
	return s.GetUserByID(targetID)
}

// EnsureDefaultAdmin 기본 admin 계정이 없으면 설정값으로 생성
func (s *UserService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(s.Config.DefaultAdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:        s.Config.DefaultAdminEmail,
		PasswordHash: hash,
		CompanyName:  "기본 관리 조직",
		Role:         models.UserRoleAdmin,
	}
	return s.DB.Create(admin).Error
}
