package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/repository"
	"github.com/sefazor/classgather-backend/pkg/bcrypt"
	jwtPkg "github.com/sefazor/classgather-backend/pkg/jwt"
)

// HumanVerifier şifre sorulan ilk girişte bot kontrolü
type HumanVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// AuthService isim + ortak sınıf şifresi ile giriş. Şifre cihaz başına bir
// kez sorulur.
type AuthService struct {
	sessionRepo    *repository.SessionRepository
	passphraseHash []byte
	jwtSecret      string
	captcha        HumanVerifier
	logger         *zap.Logger
}

func NewAuthService(sessionRepo *repository.SessionRepository, passphrase, jwtSecret string, logger *zap.Logger) (*AuthService, error) {
	hashed, err := bcrypt.HashPassphrase(passphrase)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		sessionRepo:    sessionRepo,
		passphraseHash: hashed,
		jwtSecret:      jwtSecret,
		logger:         logger,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	verified, err := s.sessionRepo.IsDeviceVerified(ctx, req.DeviceID)
	if err != nil {
		return nil, err
	}

	if !verified {
		if s.captcha != nil {
			ok, err := s.captcha.Verify(ctx, req.CaptchaToken, req.RemoteIP)
			if err != nil || !ok {
				s.logger.Info("login rejected, captcha failed", zap.String("device_id", req.DeviceID), zap.Error(err))
				return nil, ErrCaptchaFailed
			}
		}
		if err := bcrypt.ComparePassphrase(s.passphraseHash, req.Passphrase); err != nil {
			s.logger.Info("login rejected, wrong passphrase", zap.String("device_id", req.DeviceID))
			return nil, ErrWrongPassphrase
		}
		if err := s.sessionRepo.MarkDeviceVerified(ctx, req.DeviceID); err != nil {
			return nil, err
		}
	}

	if err := s.sessionRepo.SetCurrentUser(ctx, req.DeviceID, name); err != nil {
		return nil, err
	}

	token, err := jwtPkg.GenerateToken(s.jwtSecret, name, req.DeviceID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user", name), zap.String("device_id", req.DeviceID))
	return &models.AuthResponse{
		Token:          token,
		Session:        models.Session{UserName: name, DeviceID: req.DeviceID},
		DeviceVerified: true,
	}, nil
}

// WithCaptcha doğrulayıcıyı etkinleştirir; nil ise kontrol yapılmaz
func (s *AuthService) WithCaptcha(v HumanVerifier) *AuthService {
	s.captcha = v
	return s
}

// IsDeviceVerified giriş ekranı şifre alanını göstermeli mi
func (s *AuthService) IsDeviceVerified(ctx context.Context, deviceID string) (bool, error) {
	return s.sessionRepo.IsDeviceVerified(ctx, deviceID)
}

func (s *AuthService) Logout(ctx context.Context, session models.Session) error {
	if err := s.sessionRepo.ClearCurrentUser(ctx, session.DeviceID); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.String("user", session.UserName), zap.String("device_id", session.DeviceID))
	return nil
}

// Authenticate token'ı doğrular ve cihazda hâlâ aynı kullanıcının oturum
// açık olduğunu kontrol eder; logout'tan sonra eski token geçersizdir.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Session, error) {
	claims, err := jwtPkg.ValidateToken(s.jwtSecret, token)
	if err != nil {
		return models.Session{}, ErrInvalidToken
	}

	current, err := s.sessionRepo.CurrentUser(ctx, claims.DeviceID)
	if err != nil {
		return models.Session{}, err
	}
	if current != claims.UserName {
		return models.Session{}, ErrInvalidToken
	}

	return models.Session{UserName: claims.UserName, DeviceID: claims.DeviceID}, nil
}
