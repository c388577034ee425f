package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/workoutdiary/workoutdiary/internal/services"
	"github.com/workoutdiary/workoutdiary/pkg/response"
)

// AccountHandler exposes the registration and password recovery workflow.
type AccountHandler struct {
	accounts *services.AccountService
}

type signupRequest struct {
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Email     string `json:"email" validate:"notblank,email_format"`
	Password  string `json:"password" validate:"notblank,password_policy"`
	Age       int    `json:"age" validate:"age_range"`
}

type confirmRequest struct {
	Code string `json:"code" validate:"notblank"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"notblank,email_format"`
}

type setupPasswordRequest struct {
	Password string `json:"password" validate:"notblank,password_policy"`
	Code     string `json:"code" validate:"notblank"`
}

// NewAccountHandler constructs the handler around an already wired account service.
func NewAccountHandler(accounts *services.AccountService) (*AccountHandler, error) {
	if accounts == nil {
		return nil, errors.New("account handler: account service is required")
	}
	return &AccountHandler{accounts: accounts}, nil
}

// POST /signup
func (h *AccountHandler) Signup(c *gin.Context) {
	var body signupRequest
	if !bindAndValidate(c, &body) {
		return
	}

	account, err := h.accounts.Register(requestContext(c), services.RegisterInput{
		FirstName: strings.TrimSpace(body.FirstName),
		LastName:  strings.TrimSpace(body.LastName),
		Email:     body.Email,
		Password:  body.Password,
		Age:       body.Age,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, newAccountView(account))
}

// POST /confirm
func (h *AccountHandler) Confirm(c *gin.Context) {
	var body confirmRequest
	if !bindAndValidate(c, &body) {
		return
	}

	account, err := h.accounts.Confirm(requestContext(c), body.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, newAccountView(account))
}

// POST /reset-password
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var body resetPasswordRequest
	if !bindAndValidate(c, &body) {
		return
	}

	if err := h.accounts.ResetPassword(requestContext(c), body.Email); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requested": true})
}

// POST /setup-password
func (h *AccountHandler) SetupPassword(c *gin.Context) {
	var body setupPasswordRequest
	if !bindAndValidate(c, &body) {
		return
	}

	if _, err := h.accounts.SetupPassword(requestContext(c), body.Code, body.Password); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}
