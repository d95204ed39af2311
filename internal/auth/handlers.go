package auth

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/azurvoyages/tours-api/internal/models"
)

// UserView is the public shape of a user: no password hash, roles
// always including the implicit base role.
type UserView struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

func NewUserView(user *models.User) UserView {
	return UserView{
		ID:    user.ID,
		Email: user.Email,
		Roles: user.RoleSet(),
	}
}

type RegisterRequest struct {
	Body struct {
		Email    string `json:"email,omitempty" doc:"Email address, unique"`
		Password string `json:"password,omitempty" doc:"Plain password, hashed before storage"`
		Role     string `json:"role,omitempty" doc:"Optional extra role, must match ROLE_*"`
	}
}

type RegisterResponse struct {
	Body struct {
		Message string   `json:"message"`
		Token   string   `json:"token"`
		User    UserView `json:"user"`
	}
}

func (h *AuthHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*RegisterResponse, error) {
	email := input.Body.Email
	password := input.Body.Password

	if email == "" || password == "" {
		return nil, huma.Error400BadRequest("Email and password are required")
	}
	if !validEmail(email) {
		return nil, huma.Error400BadRequest("Email address is not valid")
	}
	if input.Body.Role != "" && !IsValidRole(input.Body.Role) {
		return nil, huma.Error400BadRequest("Role must follow the ROLE_ naming convention")
	}

	var existing models.User
	err := h.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, huma.Error409Conflict("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}

	user := models.User{Email: email, Password: hashed}
	if input.Body.Role != "" {
		user.AddRole(input.Body.Role)
	}

	if err := h.db.Create(&user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create user: " + err.Error())
	}

	token, err := h.GenerateToken(&user)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &RegisterResponse{}
	res.Body.Message = "User registered successfully"
	res.Body.Token = token
	res.Body.User = NewUserView(&user)
	return res, nil
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email,omitempty"`
		Password string `json:"password,omitempty"`
	}
}

type LoginResponse struct {
	Body struct {
		Token string   `json:"token"`
		User  UserView `json:"user"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	if input.Body.Email == "" || input.Body.Password == "" {
		return nil, huma.Error400BadRequest("Email and password are required")
	}

	// Same answer for unknown email and wrong password.
	var user models.User
	if err := h.db.Where("email = ?", input.Body.Email).First(&user).Error; err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}
	if !checkPassword(user.Password, input.Body.Password) {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	token, err := h.GenerateToken(&user)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &LoginResponse{}
	res.Body.Token = token
	res.Body.User = NewUserView(&user)
	return res, nil
}

type MeRequest struct {
	AuthInput
}

type MeResponse struct {
	Body struct {
		Valid bool     `json:"valid"`
		User  UserView `json:"user"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *MeRequest) (*MeResponse, error) {
	user, err := h.Authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	res := &MeResponse{}
	res.Body.Valid = true
	res.Body.User = NewUserView(user)
	return res, nil
}

type RefreshRequest struct {
	AuthInput
}

type RefreshResponse struct {
	Body struct {
		Token string   `json:"token"`
		User  UserView `json:"user"`
	}
}

// HandleRefresh issues a fresh token for a caller holding a valid one.
// The password is not re-checked.
func (h *AuthHandler) HandleRefresh(ctx context.Context, input *RefreshRequest) (*RefreshResponse, error) {
	user, err := h.Authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	token, err := h.GenerateToken(user)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &RefreshResponse{}
	res.Body.Token = token
	res.Body.User = NewUserView(user)
	return res, nil
}

type PromoteRequest struct {
	AuthInput
	ID   string `path:"id" doc:"Target user ID"`
	Body struct {
		Role string `json:"role,omitempty" doc:"Role to grant, must match ROLE_*"`
	}
}

type PromoteResponse struct {
	Body struct {
		Message string   `json:"message"`
		User    UserView `json:"user"`
	}
}

func (h *AuthHandler) HandlePromote(ctx context.Context, input *PromoteRequest) (*PromoteResponse, error) {
	actor, err := h.AuthorizeRole(input.Authorization, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if input.Body.Role == "" {
		return nil, huma.Error400BadRequest("Role is required")
	}
	if !IsValidRole(input.Body.Role) {
		return nil, huma.Error400BadRequest("Role must follow the ROLE_ naming convention")
	}
	if actor.ID == input.ID {
		return nil, huma.Error400BadRequest("Cannot promote yourself")
	}

	var target models.User
	if err := h.db.First(&target, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("User not found")
		}
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}

	// Idempotent: granting an already-held role still succeeds.
	if target.AddRole(input.Body.Role) {
		if err := h.db.Model(&target).Update("roles", target.Roles).Error; err != nil {
			return nil, huma.Error500InternalServerError("Failed to update roles: " + err.Error())
		}
	}

	res := &PromoteResponse{}
	res.Body.Message = "Role " + input.Body.Role + " granted to " + target.Email
	res.Body.User = NewUserView(&target)
	return res, nil
}
