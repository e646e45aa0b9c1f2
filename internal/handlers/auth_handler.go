package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wiissal/take-a-chef/internal/dto"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/httpresp"
	ucAccount "github.com/wiissal/take-a-chef/internal/usecase/account"
)

type AuthHandler struct {
	registerUC *ucAccount.Register
	loginUC    *ucAccount.Login
}

func NewAuthHandler(registerUC *ucAccount.Register, loginUC *ucAccount.Login) *AuthHandler {
	return &AuthHandler{registerUC: registerUC, loginUC: loginUC}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=customer chef"`

	Bio       string `json:"bio"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.registerUC.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "User registered successfully", dto.AuthDTO{User: dto.NewUser(s.User), Token: s.Token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.loginUC.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, "Login successful", dto.AuthDTO{User: dto.NewUser(s.User), Token: s.Token})
}
