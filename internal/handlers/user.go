package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/markjakearzadon/flatmate-gobackend/internal/models"
	"github.com/markjakearzadon/flatmate-gobackend/internal/services"
	"github.com/sirupsen/logrus"
)

const (
	loginPage     = "/login.html"
	dashboardPage = "user-dashboard.html"
)

type UserService interface {
	CreateUser(ctx context.Context, signup *models.Signup) (string, error)
	VerifyCredentials(ctx context.Context, email, password string) (*models.User, error)
}

type UserHandler struct {
	service UserService
	logger  *logrus.Logger
}

func NewUserHandler(service UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

// Signup handles POST /submit. Failures are plain text; success redirects to
// the login page.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data.", http.StatusBadRequest)
		return
	}

	var signup models.Signup
	if err := decoder.Decode(&signup, r.PostForm); err != nil {
		h.logger.WithError(err).Info("undecodable signup form")
		http.Error(w, "Invalid form data.", http.StatusBadRequest)
		return
	}

	id, err := h.service.CreateUser(r.Context(), &signup)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			http.Error(w, verr.Message, http.StatusBadRequest)
		case errors.Is(err, services.ErrEmailTaken):
			http.Error(w, "User with this email already exists.", http.StatusBadRequest)
		default:
			h.logger.WithError(err).Error("failed to save user")
			http.Error(w, "Error saving user data.", http.StatusInternalServerError)
		}
		return
	}

	h.logger.WithField("user_id", id).Info("user signed up")
	http.Redirect(w, r, loginPage, http.StatusFound)
}

// Login handles POST /login with either a JSON or a form body.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var login models.Login
	if err := decodeLogin(r, &login); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(login.Email) == "" || login.Password == "" {
		writeFailure(w, http.StatusOK, "Email and password are required")
		return
	}

	user, err := h.service.VerifyCredentials(r.Context(), login.Email, login.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeFailure(w, http.StatusOK, "Invalid email or password")
			return
		}
		h.logger.WithError(err).Error("login lookup failed")
		writeFailure(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	summary := user.Summary()
	writeJSON(w, http.StatusOK, apiResponse{
		Success:  true,
		Message:  "Login successful! Redirecting...",
		Redirect: dashboardPage,
		User:     &summary,
	})
}

func decodeLogin(r *http.Request, login *models.Login) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return json.NewDecoder(r.Body).Decode(login)
	}

	if err := r.ParseForm(); err != nil {
		return err
	}
	return decoder.Decode(login, r.PostForm)
}
