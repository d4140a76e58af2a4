package handlers

import (
	"loadlab/internal/latency"
	"loadlab/internal/middleware"
	"loadlab/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, sim latency.Simulator) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", middleware.SimulatedLatency(sim, latency.Register), h.HandleRegister)
	authRoutes.Post("/login", middleware.SimulatedLatency(sim, latency.Login), h.HandleLogin)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseAndValidate(c, h.validate, &req, "Missing required fields"); err != nil {
		return err
	}

	res, err := h.authService.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   res.Token,
		"user":    res.User,
	})
}

// LoginRequest represents the request body for login.
// Username may also hold the account's email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseAndValidate(c, h.validate, &req, "Username and password required"); err != nil {
		return err
	}

	res, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}
