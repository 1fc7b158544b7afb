package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/WingTeck/golub-banka/internal/ledger"
	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/models"
)

// Error variables
var (
	ErrOwnerAlreadyExists = errors.New("owner already registered")
	ErrOwnerDoesNotExist  = errors.New("owner does not exist")
	ErrInvalidCredentials = errors.New("invalid owner or password")
)

// CredentialsReader defines read-only operations for login credentials.
type CredentialsReader interface {
	GetByOwner(ctx context.Context, owner string) (*models.CredentialsDB, error)
}

// CredentialsWriter defines write operations for login credentials.
type CredentialsWriter interface {
	Save(ctx context.Context, owner, passwordHash string) error
}

// TokenIssuer defines an interface for generating JWT tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, accountID string) (string, error)
}

// AccountOpener creates and resolves pigeon accounts on behalf of auth flows.
type AccountOpener interface {
	CreateAccount(ctx context.Context, owner, name string) (models.Pigeon, error)
	GetAccount(ctx context.Context, reference string) (models.Pigeon, error)
}

// AuthService handles registration and login. Registration also opens the
// owner's pigeon account through the directory.
type AuthService struct {
	reader CredentialsReader
	writer CredentialsWriter
	bank   AccountOpener
	jwt    TokenIssuer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader CredentialsReader, writer CredentialsWriter, bank AccountOpener, jwt TokenIssuer) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		bank:   bank,
		jwt:    jwt,
	}
}

// Register creates credentials for a new owner and opens their account.
func (svc *AuthService) Register(ctx context.Context, owner, password string) error {
	creds, err := svc.reader.GetByOwner(ctx, owner)
	if err != nil {
		logger.Log.Errorw("failed to check owner exists", "err", err)
		return err
	}
	if creds != nil {
		logger.Log.Errorw("owner already registered", "owner", owner)
		return ErrOwnerAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if _, err := svc.bank.CreateAccount(ctx, owner, owner); err != nil {
		if errors.Is(err, ledger.ErrDuplicateOwner) {
			return ErrOwnerAlreadyExists
		}
		logger.Log.Errorw("failed to open account", "owner", owner, "err", err)
		return err
	}

	if err := svc.writer.Save(ctx, owner, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to save credentials", "err", err)
		return err
	}

	return nil
}

// Login authenticates an owner and returns a JWT token plus the account
// snapshot the token is bound to.
func (svc *AuthService) Login(ctx context.Context, owner, password string) (string, models.Pigeon, error) {
	creds, err := svc.reader.GetByOwner(ctx, owner)
	if err != nil {
		logger.Log.Errorw("failed to get credentials", "err", err)
		return "", models.Pigeon{}, err
	}
	if creds == nil {
		logger.Log.Errorw("owner does not exist", "owner", owner)
		return "", models.Pigeon{}, ErrOwnerDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "owner", owner)
		return "", models.Pigeon{}, ErrInvalidCredentials
	}

	pigeon, err := svc.bank.GetAccount(ctx, owner)
	if err != nil {
		logger.Log.Errorw("failed to resolve account for owner", "owner", owner, "err", err)
		return "", models.Pigeon{}, err
	}

	token, err := svc.jwt.Generate(ctx, pigeon.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", models.Pigeon{}, err
	}

	return token, pigeon, nil
}
