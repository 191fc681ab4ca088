package user

import (
	internal "github.com/euroviaje/trip-ledger/internal"
	"github.com/euroviaje/trip-ledger/internal/core/common/validation"
)

// User owns every other row in the store; deleting one cascades through
// wallets, expenses and luggage items.
type User struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password;not null"`
}

func (User) TableName() string {
	return "users"
}

// Session is the trivial two-state machine: unauthenticated until a
// credential check or restore succeeds, back again on logout.
type SessionState string

const (
	SessionUnauthenticated SessionState = "unauthenticated"
	SessionAuthenticated   SessionState = "authenticated"
)

type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto RegisterDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required().MaxLength(254)
	v.Field("password", dto.Password).Required().MinLength(4)
	return v.Validate()
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required()
	v.Field("password", dto.Password).Required()
	return v.Validate()
}

var (
	ErrInvalidCredentials = internal.NewUnauthorizedError("invalid email or password", internal.ErrCodeInvalidCredentials)
	ErrEmailTaken         = internal.NewConflictError("an account with this email already exists", internal.ErrCodeEmailTaken)
	ErrUserNotFound       = internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	ErrNoSession          = internal.NewUnauthorizedError("no stored session", internal.ErrCodeNoSession)
)
