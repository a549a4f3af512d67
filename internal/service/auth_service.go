package service

import (
	"course_companion_backend/internal/config"
	"course_companion_backend/internal/model"
	"course_companion_backend/internal/repository"
	"course_companion_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Register(req *RegisterReq) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:            req.Email,
		Username:         req.Username,
		Password:         string(hashedPassword),
		FullName:         req.FullName,
		Role:             model.RoleStudent,
		SubscriptionTier: model.TierFree,
		IsActive:         true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	// 登录时间非关键路径，失败忽略
	_ = s.UserRepo.UpdateLastLogin(user.ID)

	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
