package users

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aitrainer/internal/auth"
	"github.com/2beens/aitrainer/internal/avatars"
	"github.com/2beens/aitrainer/internal/geoip"
	"github.com/2beens/aitrainer/internal/telemetry/metrics"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersRepo interface {
	Add(ctx context.Context, user User) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	ByID(ctx context.Context, id int) (*User, error)
	Update(ctx context.Context, id int, update UserUpdate) (*User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	SetProfileImage(ctx context.Context, id int, imageURL string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

type sessionManager interface {
	Login(ctx context.Context, email string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, sessionID string) (bool, error)
}

type countryResolver interface {
	RequestCountry(ctx context.Context, r *http.Request) (string, error)
}

type avatarStore interface {
	Save(ctx context.Context, userID int, image []byte) (string, error)
}

type Handler struct {
	repo           usersRepo
	sessions       sessionManager
	countries      countryResolver
	avatars        avatarStore
	metricsManager *metrics.Manager
	// ability to inject a cheaper password hash func (for unit testing)
	HashPasswordFunc func(password string) (string, error)
}

// NewHandler creates the users handler. countries can be nil, then the signup
// country is only what the user sends.
func NewHandler(
	repo usersRepo,
	sessions sessionManager,
	countries countryResolver,
	avatars avatarStore,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:             repo,
		sessions:         sessions,
		countries:        countries,
		avatars:          avatars,
		metricsManager:   metricsManager,
		HashPasswordFunc: pkg.HashPassword,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/signup", handler.HandleSignup).Methods("POST", "OPTIONS").Name("signup")
	router.HandleFunc("/login", handler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	router.HandleFunc("/logout", handler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	router.HandleFunc("/me", handler.HandleGetMe).Methods("GET", "OPTIONS").Name("get-me")
	router.HandleFunc("/me", handler.HandleUpdateMe).Methods("PUT", "OPTIONS").Name("update-me")
	router.HandleFunc("/me/password", handler.HandleChangePassword).Methods("POST", "OPTIONS").Name("change-password")
	router.HandleFunc("/me/profile-image", handler.HandleProfileImage).Methods("POST", "OPTIONS").Name("profile-image")
	router.HandleFunc("/admin/users", handler.HandleAdminListUsers).Methods("GET", "OPTIONS").Name("admin-users")
}

func (handler *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.signup")
	defer span.End()

	var req UserCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("signup, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !req.HasCountry() && handler.countries != nil {
		country, err := handler.countries.RequestCountry(ctx, r)
		switch {
		case errors.Is(err, geoip.ErrLocalAddress):
			log.Debugf("signup from local address, country left empty")
		case err != nil:
			log.Warnf("signup, resolve country: %s", err)
		default:
			req.Country = &country
		}
	}

	passwordHash, err := handler.HashPasswordFunc(req.Password)
	if err != nil {
		log.Errorf("signup, hash password: %s", err)
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	created, err := handler.repo.Add(ctx, req.ToUser(passwordHash))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			http.Error(w, "Email already registered", http.StatusBadRequest)
		case errors.Is(err, ErrUsernameTaken):
			http.Error(w, "Username already taken", http.StatusBadRequest)
		default:
			log.Errorf("signup, add user: %s", err)
			http.Error(w, "failed to create user", http.StatusInternalServerError)
		}
		return
	}

	span.SetAttributes(attribute.Int("user.id", created.ID))
	handler.metricsManager.CounterSignups.Inc()
	log.Infof("new user signed up: %d", created.ID)
	pkg.WriteMessageResponseOK(w, "User created successfully")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func readLoginRequest(r *http.Request) (loginRequest, error) {
	var loginReq loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		err := json.NewDecoder(r.Body).Decode(&loginReq)
		return loginReq, err
	}
	if err := r.ParseForm(); err != nil {
		return loginReq, err
	}
	return loginRequest{
		Username: r.Form.Get("username"),
		Password: r.Form.Get("password"),
	}, nil
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	loginReq, err := readLoginRequest(r)
	if err != nil {
		log.Tracef("login, read params: %s", err)
		http.Error(w, "invalid login request", http.StatusBadRequest)
		return
	}
	if loginReq.Username == "" || loginReq.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.ByEmail(ctx, strings.TrimSpace(loginReq.Username))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		log.Errorf("login, get user: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	if user == nil || !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		log.Tracef("failed login attempt for user: %s", loginReq.Username)
		handler.metricsManager.CounterLogins.WithLabelValues("failure").Inc()
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	token, err := handler.sessions.Login(ctx, user.Email, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterLogins.WithLabelValues("success").Inc()
	log.Tracef("login success for user %d", user.ID)

	respJson, err := json.Marshal(TokenResponse{AccessToken: token, TokenType: "bearer"})
	if err != nil {
		log.Errorf("login, marshal token response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, identity.SessionID)
	if errors.Is(err, auth.ErrSessionNotFound) || (err == nil && !loggedOut) {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("logout for user %d: %s", identity.UserID, err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("logout for user %d success", identity.UserID)
	pkg.WriteMessageResponseOK(w, "Logged out successfully")
}

func (handler *Handler) writeUser(w http.ResponseWriter, user *User) {
	userJson, err := json.Marshal(user.ToResponse())
	if err != nil {
		log.Errorf("failed to marshal user: %s", err)
		http.Error(w, "failed to marshal user", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, userJson)
}

func (handler *Handler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.me")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.ByID(ctx, identity.UserID)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get user %d: %s", identity.UserID, err)
		http.Error(w, "failed to get user", http.StatusInternalServerError)
		return
	}

	handler.writeUser(w, user)
}

func (handler *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.update")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var update UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Tracef("update user, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.Update(ctx, identity.UserID, update)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			http.Error(w, "Username already taken", http.StatusBadRequest)
		case errors.Is(err, ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		default:
			log.Errorf("update user %d: %s", identity.UserID, err)
			http.Error(w, "failed to update user", http.StatusInternalServerError)
		}
		return
	}

	handler.writeUser(w, user)
}

func (handler *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.change_password")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req ChangePassword
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("change password, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			http.Error(w, "New passwords do not match", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := handler.repo.ByID(ctx, identity.UserID)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("change password, get user %d: %s", identity.UserID, err)
		http.Error(w, "failed to change password", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		http.Error(w, "Old password is incorrect", http.StatusBadRequest)
		return
	}

	passwordHash, err := handler.HashPasswordFunc(req.NewPassword)
	if err != nil {
		log.Errorf("change password, hash password: %s", err)
		http.Error(w, "failed to change password", http.StatusInternalServerError)
		return
	}

	if err := handler.repo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		log.Errorf("change password, update user %d: %s", user.ID, err)
		http.Error(w, "failed to change password", http.StatusInternalServerError)
		return
	}

	pkg.WriteMessageResponseOK(w, "Password updated successfully")
}

func (handler *Handler) HandleProfileImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.profile_image")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	// leave some room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, avatars.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(avatars.MaxImageSize); err != nil {
		log.Tracef("profile image, parse multipart form: %s", err)
		http.Error(w, "invalid upload, max image size is 5 MB", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Tracef("profile image, get file from form: %s", err)
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("profile image, close file: %s", err)
		}
	}()

	log.Debugf("profile image, filename: %s, size: %d", header.Filename, header.Size)

	image, err := io.ReadAll(io.LimitReader(file, avatars.MaxImageSize+1))
	if err != nil {
		log.Errorf("profile image, read file: %s", err)
		http.Error(w, "failed to read image", http.StatusBadRequest)
		return
	}

	imageURL, err := handler.avatars.Save(ctx, identity.UserID, image)
	if err != nil {
		switch {
		case errors.Is(err, avatars.ErrUnsupportedImageType),
			errors.Is(err, avatars.ErrImageTooLarge),
			errors.Is(err, avatars.ErrEmptyImage):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("profile image, save for user %d: %s", identity.UserID, err)
			http.Error(w, "failed to store image", http.StatusInternalServerError)
		}
		return
	}

	user, err := handler.repo.SetProfileImage(ctx, identity.UserID, imageURL)
	if err != nil {
		log.Errorf("profile image, update user %d: %s", identity.UserID, err)
		http.Error(w, "failed to update user", http.StatusInternalServerError)
		return
	}

	handler.writeUser(w, user)
}

func (handler *Handler) HandleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.admin_list")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}
	if !identity.IsAdmin() {
		http.Error(w, "Admin access required", http.StatusForbidden)
		return
	}

	allUsers, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("admin, list users: %s", err)
		http.Error(w, "failed to list users", http.StatusInternalServerError)
		return
	}

	usersJson, err := json.Marshal(allUsers)
	if err != nil {
		log.Errorf("failed to marshal users: %s", err)
		http.Error(w, "failed to marshal users", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, usersJson)
}
