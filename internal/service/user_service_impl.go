package service

import (
	"context"
	"strings"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/internal/dto"
	"github.com/Blacksatth/Pagina-Web/internal/repository"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/Blacksatth/Pagina-Web/pkg/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	repo      repository.UserRepository
	jwtSecret string
}

func CreateUserService(repo repository.UserRepository, jwtSecret string) UserService {
	return &UserServiceImpl{repo: repo, jwtSecret: jwtSecret}
}

func (s *UserServiceImpl) Register(ctx context.Context, data dto.UserRequest) (err error) {
	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	if data.Email == "" || data.Password == "" {
		return errs.ErrMissingCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, data.Email)
	if err != nil {
		return
	}

	if user.ID != 0 {
		return errs.ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.repo.AddUser(ctx, domain.User{
		Name:           data.Name,
		Email:          data.Email,
		HashedPassword: string(hash),
		ExternalID:     ulid.Make().String(),
		Role:           domain.RoleUser,
	})

	return err
}

func (s *UserServiceImpl) Login(ctx context.Context, data dto.UserRequest) (resp dto.LoginResponse, err error) {
	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	if data.Email == "" || data.Password == "" {
		return resp, errs.ErrMissingCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, data.Email)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return resp, errs.ErrAccountNotFound
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(data.Password))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		return resp, errs.ErrInvalidCredentialsEmail
	}

	token, err := utils.CreateJWTToken(user.ID, user.Name, user.Role, user.ExternalID, s.jwtSecret)
	if err != nil {
		return
	}

	resp.Token = token
	resp.UserID = user.ID
	resp.Role = user.Role

	return
}

// VerifyAdmin checks the stored role, so a demoted admin with a live token is
// refused.
func (s *UserServiceImpl) VerifyAdmin(ctx context.Context, userID int64) (isAdmin bool, err error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return false, errs.ErrAccountNotFound
	}

	return user.IsAdmin(), nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (resp dto.UserResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return resp, errs.ErrAccountNotFound
	}

	resp = dto.UserResponse{
		ID:         user.ID,
		ExternalID: user.ExternalID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
	}

	return
}
