package auth

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/eventflow-api/internal/config"
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/token"
	"github.com/gdg-garage/eventflow-api/internal/users"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	CookieName    = "auth_token"
	TokenDuration = 24 * time.Hour
)

// OTP delivery is mocked: any six digit code is accepted.
var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

var validate = validator.New()

type AuthHandler struct {
	cfg       *config.Config
	directory *users.Directory
	now       func() time.Time
}

func NewAuthHandler(cfg *config.Config, directory *users.Directory) *AuthHandler {
	return &AuthHandler{cfg: cfg, directory: directory, now: time.Now}
}

type AuthInput struct {
	Cookie string `header:"Cookie"`
}

func ValidateOTP(otp string) bool {
	return otpPattern.MatchString(strings.TrimSpace(otp))
}

func (h *AuthHandler) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     h.now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

func (h *AuthHandler) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if _, ok := claims["user_id"].(string); !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Authorize resolves the signed-in user from the request context or, when
// the session middleware did not run, from the raw Cookie header.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (*models.User, error) {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok || userID == "" {
		tokenString := cookieValue(cookieHeader)
		if tokenString == "" {
			return nil, huma.Error401Unauthorized("Unauthorized: No token found")
		}
		claims, err := h.parseToken(tokenString)
		if err != nil {
			return nil, huma.Error401Unauthorized("Unauthorized: Invalid token")
		}
		userID = claims["user_id"].(string)
	}

	user, err := h.directory.FindByID(ctx, userID)
	if errors.Is(err, users.ErrNotFound) {
		return nil, huma.Error401Unauthorized("Unauthorized: Unknown user")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load user")
	}
	return user, nil
}

// RequireOrganizer is Authorize plus a role check.
func (h *AuthHandler) RequireOrganizer(ctx context.Context, cookieHeader string) (*models.User, error) {
	user, err := h.Authorize(ctx, cookieHeader)
	if err != nil {
		return nil, err
	}
	if !user.IsOrganizer() {
		return nil, huma.Error403Forbidden("Access denied: organizer role required")
	}
	return user, nil
}

func cookieValue(header string) string {
	if header == "" {
		return ""
	}
	cookies, err := http.ParseCookie(header)
	if err != nil {
		return ""
	}
	for _, c := range cookies {
		if c.Name == CookieName {
			return c.Value
		}
	}
	return ""
}

func (h *AuthHandler) sessionCookie(userID string) (http.Cookie, error) {
	jwtToken, err := h.GenerateToken(userID)
	if err != nil {
		return http.Cookie{}, err
	}
	return http.Cookie{
		Name:     CookieName,
		Value:    jwtToken,
		Expires:  h.now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}, nil
}

type MessageResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
}

func message(msg string) *MessageResponse {
	res := &MessageResponse{}
	res.Body.Success = true
	res.Body.Message = msg
	return res
}

type SignUpRequest struct {
	Body struct {
		Email    string `json:"email" format:"email" doc:"Account email"`
		Phone    string `json:"phone" doc:"Phone number"`
		Password string `json:"password" minLength:"6" doc:"Account password"`
	}
}

// HandleSignUp starts a sign-up. The OTP is never actually sent.
func (h *AuthHandler) HandleSignUp(ctx context.Context, input *SignUpRequest) (*MessageResponse, error) {
	if _, err := h.directory.FindByEmail(ctx, input.Body.Email); err == nil {
		return nil, huma.Error409Conflict("Email already registered")
	} else if !errors.Is(err, users.ErrNotFound) {
		return nil, huma.Error500InternalServerError("Failed to look up user")
	}
	return message("OTP sent to your email"), nil
}

type CompleteSignUpFields struct {
	Email         string               `json:"email" validate:"required,email" format:"email"`
	Phone         string               `json:"phone" validate:"required,max=32"`
	OTP           string               `json:"otp" doc:"Six digit verification code"`
	Role          models.Role          `json:"role" validate:"required,oneof=student organizer" enum:"student,organizer"`
	Name          string               `json:"name" validate:"required,max=200"`
	CollegeID     string               `json:"collegeId,omitempty" validate:"max=64"`
	OrganizerRole models.OrganizerRole `json:"organizerRole,omitempty" validate:"required_if=Role organizer" enum:"teacher,club_lead"`
	Department    string               `json:"department,omitempty" validate:"required_if=Role organizer,max=200"`
}

type CompleteSignUpRequest struct {
	Body CompleteSignUpFields
}

type UserResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      models.User
}

// HandleCompleteSignUp verifies the OTP and creates the account with its
// role-specific onboarding fields.
func (h *AuthHandler) HandleCompleteSignUp(ctx context.Context, input *CompleteSignUpRequest) (*UserResponse, error) {
	in := input.Body
	if !ValidateOTP(in.OTP) {
		return nil, huma.Error400BadRequest("Invalid OTP")
	}
	if err := validate.Struct(in); err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	if in.Role == models.RoleOrganizer && in.OrganizerRole != models.OrganizerRoleTeacher && in.OrganizerRole != models.OrganizerRoleClubLead {
		return nil, huma.Error422UnprocessableEntity("organizerRole must be teacher or club_lead")
	}

	if _, err := h.directory.FindByEmail(ctx, in.Email); err == nil {
		return nil, huma.Error409Conflict("Email already registered")
	} else if !errors.Is(err, users.ErrNotFound) {
		return nil, huma.Error500InternalServerError("Failed to look up user")
	}

	user := models.User{
		ID:        "user_" + token.GenerateID(),
		Email:     strings.TrimSpace(in.Email),
		Phone:     in.Phone,
		Role:      in.Role,
		Name:      in.Name,
		CreatedAt: h.now(),
	}
	switch in.Role {
	case models.RoleStudent:
		user.CollegeID = in.CollegeID
	case models.RoleOrganizer:
		user.OrganizerRole = in.OrganizerRole
		user.Department = in.Department
	}

	if err := h.directory.Save(ctx, user); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save user")
	}

	cookie, err := h.sessionCookie(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("User signed up")
	return &UserResponse{SetCookie: cookie, Body: user}, nil
}

type SignInRequest struct {
	Body struct {
		Email    string `json:"email" format:"email"`
		Password string `json:"password"`
	}
}

// HandleSignIn looks the account up by email. Passwords are not stored and
// therefore not checked.
func (h *AuthHandler) HandleSignIn(ctx context.Context, input *SignInRequest) (*UserResponse, error) {
	user, err := h.directory.FindByEmail(ctx, input.Body.Email)
	if errors.Is(err, users.ErrNotFound) {
		return nil, huma.Error404NotFound("User not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to look up user")
	}

	cookie, err := h.sessionCookie(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}
	return &UserResponse{SetCookie: cookie, Body: *user}, nil
}

type SignOutResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

func (h *AuthHandler) HandleSignOut(ctx context.Context, input *struct{}) (*SignOutResponse, error) {
	res := &SignOutResponse{
		SetCookie: http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		},
	}
	res.Body.Message = "Signed out"
	return res, nil
}

type MeResponse struct {
	Body models.User
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *AuthInput) (*MeResponse, error) {
	user, err := h.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	return &MeResponse{Body: *user}, nil
}
