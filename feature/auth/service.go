package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"collection-manager/core/media"
	"collection-manager/core/token"
	"collection-manager/feature/auth/models"
	"collection-manager/feature/auth/oauth"
	"collection-manager/feature/catalog/ludopedia"
)

var (
	// ErrUsernameTaken is returned when the requested username exists.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrEmailTaken is returned when the requested email exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrUserNotFound is returned when the account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrProviderDisabled is returned when a sign-in provider has no
	// configured credentials.
	ErrProviderDisabled = errors.New("sign-in provider not configured")
	// ErrValidation is returned when a request fails input validation.
	ErrValidation = errors.New("invalid input")
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	CEP      *string `json:"cep"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	CEP      *string `json:"cep"`
}

// Service implements registration, login and account linking.
type Service struct {
	db        *gorm.DB
	tokens    *token.Manager
	google    *oauth.Google
	ludopedia *ludopedia.Client
	oauthCfg  oauth.Config
	media     media.Client
	bucket    string
	logger    *zap.Logger
}

// NewService creates the auth service. media may be nil when avatar
// storage is disabled.
func NewService(db *gorm.DB, tokens *token.Manager, google *oauth.Google, ludo *ludopedia.Client, oauthCfg oauth.Config, mediaClient media.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		db:        db,
		tokens:    tokens,
		google:    google,
		ludopedia: ludo,
		oauthCfg:  oauthCfg,
		media:     mediaClient,
		bucket:    bucket,
		logger:    logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if len(in.Username) < 3 {
		return nil, fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}

	if taken, err := s.exists(ctx, "username", in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.exists(ctx, "email", in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Email:          in.Email,
		Username:       in.Username,
		HashedPassword: string(hash),
		FullName:       in.FullName,
		Phone:          in.Phone,
		CEP:            in.CEP,
		Role:           models.RoleFree,
		IsActive:       true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return &user, nil
}

// Login verifies the credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("loading user: %w", err)
	}
	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := s.touchLastLogin(ctx, &user); err != nil {
		return "", nil, err
	}

	signed, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return signed, &user, nil
}

// Me loads the account behind an authenticated request.
func (s *Service) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.byID(ctx, userID)
}

// GetUser loads a public account profile by id.
func (s *Service) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.byID(ctx, userID)
}

// UpdateProfile changes the editable profile fields.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*models.User, error) {
	user, err := s.byID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		user.FullName = in.FullName
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.CEP != nil {
		user.CEP = in.CEP
	}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user, nil
}

// GoogleAuthorizeURL returns the consent page URL for Google sign-in.
func (s *Service) GoogleAuthorizeURL() (string, error) {
	if s.google == nil || !s.google.Enabled() {
		return "", ErrProviderDisabled
	}
	return s.google.AuthorizeURL(), nil
}

// GoogleSignIn completes the Google flow: exchanges the code, loads the
// profile, links or creates the account and returns an access token.
func (s *Service) GoogleSignIn(ctx context.Context, code string) (string, *models.User, error) {
	if s.google == nil || !s.google.Enabled() {
		return "", nil, ErrProviderDisabled
	}

	accessToken, err := s.google.Exchange(ctx, code)
	if err != nil {
		return "", nil, err
	}
	profile, err := s.google.FetchProfile(ctx, accessToken)
	if err != nil {
		return "", nil, err
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", profile.Email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Email:      profile.Email,
			Username:   s.usernameFromEmail(ctx, profile.Email),
			Role:       models.RoleFree,
			IsActive:   true,
			IsVerified: true,
			GoogleID:   &profile.ID,
		}
		if profile.Name != "" {
			user.FullName = &profile.Name
		}
		if profile.Picture != "" {
			user.PictureURL = &profile.Picture
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return "", nil, fmt.Errorf("creating google user: %w", err)
		}
		s.logger.Info("user created via google", zap.Uint("user_id", user.ID))
	case err != nil:
		return "", nil, fmt.Errorf("loading user: %w", err)
	default:
		user.GoogleID = &profile.ID
		user.IsVerified = true
		if profile.Picture != "" {
			user.PictureURL = &profile.Picture
		}
		if user.FullName == nil && profile.Name != "" {
			user.FullName = &profile.Name
		}
		if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
			return "", nil, fmt.Errorf("linking google account: %w", err)
		}
	}

	if err := s.touchLastLogin(ctx, &user); err != nil {
		return "", nil, err
	}

	signed, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return signed, &user, nil
}

// LudopediaAuthorizeURL returns the Ludopedia consent page URL.
func (s *Service) LudopediaAuthorizeURL() (string, error) {
	if !s.oauthCfg.LudopediaEnabled() {
		return "", ErrProviderDisabled
	}
	return s.ludopedia.AuthorizeURL(s.oauthCfg.LudopediaAppID, s.oauthCfg.LudopediaRedirectURI), nil
}

// LinkLudopedia exchanges the authorization code and stores the resulting
// access token on the account for later collection reads.
func (s *Service) LinkLudopedia(ctx context.Context, userID uint, code string) (string, error) {
	if !s.oauthCfg.LudopediaEnabled() {
		return "", ErrProviderDisabled
	}

	accessToken, err := s.ludopedia.ExchangeCode(ctx, code, s.oauthCfg.LudopediaAppID, s.oauthCfg.LudopediaAppKey)
	if err != nil {
		return "", err
	}

	user, err := s.byID(ctx, userID)
	if err != nil {
		return "", err
	}
	user.LudopediaAccessToken = &accessToken
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return "", fmt.Errorf("storing ludopedia token: %w", err)
	}

	s.logger.Info("ludopedia account linked", zap.Uint("user_id", userID))
	return accessToken, nil
}

// UploadAvatar stores the picture in object storage and records its path.
func (s *Service) UploadAvatar(ctx context.Context, userID uint, filename, contentType string, body io.Reader, size int64) (string, error) {
	if s.media == nil {
		return "", fmt.Errorf("media storage not configured")
	}

	user, err := s.byID(ctx, userID)
	if err != nil {
		return "", err
	}

	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i:]
	}
	objectName := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.NewString(), ext)

	_, err = s.media.PutObject(ctx, s.bucket, objectName, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("storing avatar: %w", err)
	}

	if old := user.PictureURL; old != nil && strings.HasPrefix(*old, "avatars/") {
		if err := s.media.RemoveObject(ctx, s.bucket, *old, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("failed to remove previous avatar", zap.String("object", *old), zap.Error(err))
		}
	}

	user.PictureURL = &objectName
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return "", fmt.Errorf("recording avatar: %w", err)
	}
	return objectName, nil
}

func (s *Service) byID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return &user, nil
}

func (s *Service) exists(ctx context.Context, column, value string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where(column+" = ?", value).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", column, err)
	}
	return count > 0, nil
}

func (s *Service) touchLastLogin(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.LastLogin = &now
	if err := s.db.WithContext(ctx).Model(user).Update("last_login", now).Error; err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}

// usernameFromEmail derives a unique username from the email local part.
func (s *Service) usernameFromEmail(ctx context.Context, email string) string {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	base = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '.' {
			return r
		}
		return -1
	}, base)
	if len(base) < 3 {
		base = "player"
	}

	candidate := base
	for i := 0; i < 10; i++ {
		taken, err := s.exists(ctx, "username", candidate)
		if err != nil || !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s%s", base, uuid.NewString()[:4])
	}
	return candidate
}
