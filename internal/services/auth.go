package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sarun2104/training-app/internal/data/repos"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/ctxutil"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *types.Employee, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	employeeRepo repos.EmployeeRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, employeeRepo repos.EmployeeRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		employeeRepo: employeeRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, apperr.Validation("missing_credentials", "email and password are required")
	}

	employee, err := as.employeeRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.Unauthorized("bad_credentials", "invalid email or password")
		}
		return "", nil, apperr.StoreUnavailable("employee_lookup_failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("bad_credentials", "invalid email or password")
	}

	token, err := as.generateAccessToken(employee)
	if err != nil {
		return "", nil, err
	}

	as.log.Info("Employee logged in", "employee_id", employee.EmployeeID)
	return token, employee, nil
}

func (as *authService) generateAccessToken(employee *types.Employee) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"employee_id": employee.EmployeeID,
		"role":        employee.Role,
		"iat":         now.Unix(),
		"exp":         now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", apperr.StoreUnavailable("token_sign_failed", err)
	}
	return signed, nil
}

// SetContextFromToken verifies the bearer token and attaches the caller's
// identity. The role claim is re-read from the database so a stale token
// cannot keep a revoked admin role alive.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthorized("invalid_token", "invalid or expired token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthorized("invalid_token", "malformed claims")
	}
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return nil, apperr.Unauthorized("invalid_token", "missing employee_id claim")
	}

	employee, err := as.employeeRepo.GetByID(ctx, nil, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("unknown_employee", "token subject no longer exists")
		}
		return nil, apperr.StoreUnavailable("employee_lookup_failed", err)
	}

	rd := &ctxutil.RequestData{
		EmployeeID:  employee.EmployeeID,
		Role:        employee.Role,
		TokenString: tokenString,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}
