package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/internal/infrastructure/db"
	"github.com/groceryhub/grocery-api/pkg/apperr"
	"github.com/groceryhub/grocery-api/pkg/helpers"
)

// AccountService owns registration, login and account lifecycle. A session
// is opened on both registration and login; deleting the account revokes
// every session and cascades through all owned data.
type AccountService struct {
	DB     *db.DB
	Logger *logrus.Logger
}

func NewAccountService(database *db.DB, logger *logrus.Logger) *AccountService {
	return &AccountService{DB: database, Logger: logger}
}

// Register creates the account and logs the new user straight in.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (string, entity.UserID, error) {
	userID, err := s.DB.RegisterUser(ctx, username, email, password)
	if err != nil {
		return "", "", err
	}
	token, err := s.openSession(ctx, userID)
	if err != nil {
		return "", "", err
	}
	s.Logger.WithField("user_id", userID).Info("user registered")
	return token, userID, nil
}

// Login verifies credentials and opens a fresh session; previous sessions
// stay valid.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, entity.UserID, error) {
	userID, err := s.DB.VerifyPassword(ctx, username, password)
	if err != nil {
		return "", "", err
	}
	token, err := s.openSession(ctx, userID)
	if err != nil {
		return "", "", err
	}
	s.Logger.WithField("user_id", userID).Debug("user logged in")
	return token, userID, nil
}

func (s *AccountService) openSession(ctx context.Context, userID entity.UserID) (string, error) {
	token, err := helpers.NewToken()
	if err != nil {
		return "", apperr.Internal("generating session token", err)
	}
	if err := s.DB.CreateSession(ctx, token, userID); err != nil {
		return "", err
	}
	return token, nil
}

// Logout revokes the presented token only.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return err
	}
	userID, err := s.DB.SessionUser(ctx, token)
	if err != nil {
		return err
	}
	return s.DB.DeleteSession(ctx, token, userID)
}

// LogoutAll revokes every live token of the user owning the presented one.
func (s *AccountService) LogoutAll(ctx context.Context, token string) error {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return err
	}
	return s.DB.DeleteAllSessions(ctx, token)
}

// DeleteAccount destroys the user and everything below: stores, aisles,
// products, sessions and the username directory entry.
func (s *AccountService) DeleteAccount(ctx context.Context, token string) error {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return err
	}
	userID, err := s.DB.SessionUser(ctx, token)
	if err != nil {
		return err
	}
	if err := s.DB.DeleteUser(ctx, token); err != nil {
		return err
	}
	s.Logger.WithField("user_id", userID).Info("account deleted")
	return nil
}
