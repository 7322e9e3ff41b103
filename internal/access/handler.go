package access

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/novanode/client-portal/internal/platform/httpx"
	"github.com/novanode/client-portal/internal/shared"
	"github.com/novanode/client-portal/internal/view"
)

// Prompt is shown while the portal is locked.
const Prompt = "Please enter the password to access the Novanode Dashboard."

// AttemptRecorder counts unlock attempts by outcome.
type AttemptRecorder interface {
	ObserveAccessAttempt(granted bool)
}

// Handler wires the password gate endpoints.
type Handler struct {
	logger    *slog.Logger
	gate      *Gate
	templates *view.Engine
	sessions  *shared.SessionManager
	csrf      *shared.CSRFManager
	validator *validator.Validate
	attempts  AttemptRecorder
	subtitle  string
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, gate *Gate, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager, attempts AttemptRecorder, subtitle string) *Handler {
	return &Handler{
		logger:    logger,
		gate:      gate,
		templates: templates,
		sessions:  sessions,
		csrf:      csrf,
		validator: validator.New(),
		attempts:  attempts,
		subtitle:  subtitle,
	}
}

// MountRoutes registers the gate routes on the provided router.
// Unlock attempts are limited per client IP.
func (h *Handler) MountRoutes(r chi.Router) {
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Too many unlock attempts. Try again in a minute.", http.StatusTooManyRequests)
		}),
	)
	r.Get("/", h.showPrompt)
	r.With(limiter).Post("/", h.handleUnlock)
	r.Post("/lock", h.handleLock)
}

type unlockForm struct {
	Password string `validate:"required"`
}

type accessPageData struct {
	Prompt string
	Error  string
}

func (h *Handler) showPrompt(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess.HasAccess() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, accessPageData{Prompt: Prompt})
}

func (h *Handler) handleUnlock(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logError("session missing during unlock", shared.ErrSessionMissing)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	form := unlockForm{Password: r.PostFormValue("password")}
	if err := h.validator.Struct(form); err != nil {
		h.render(w, r, http.StatusBadRequest, accessPageData{Prompt: Prompt, Error: "Enter the admin password."})
		return
	}

	err := h.gate.Check(form.Password)
	if h.attempts != nil {
		h.attempts.ObserveAccessAttempt(err == nil)
	}
	if errors.Is(err, ErrAccessDenied) {
		if h.logger != nil {
			h.logger.Warn("portal unlock rejected", slog.String("remote", r.RemoteAddr))
		}
		h.render(w, r, http.StatusUnauthorized, accessPageData{Prompt: Prompt, Error: "Incorrect password."})
		return
	}

	sess.GrantAccess()
	sess.AddFlash(shared.FlashMessage{Kind: shared.FlashSuccess, Message: "Access Granted"})
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) handleLock(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.RevokeAccess()
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashInfo, Message: "Portal locked."})
	}
	http.Redirect(w, r, "/access", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data accessPageData) {
	sess := shared.SessionFromContext(r.Context())
	var flash *shared.FlashMessage
	csrfToken := ""
	if sess != nil {
		token, err := h.csrf.EnsureToken(sess)
		if err != nil {
			h.logError("csrf token", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		csrfToken = token
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Unlock",
		Subtitle:    h.subtitle,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	if err := h.templates.Render(w, "pages/access.html", viewData); err != nil {
		h.logError("render access", err)
	}
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, slog.Any("error", err))
	}
}

// Require blocks requests from sessions that have not unlocked the portal.
// Page loads are redirected to the prompt; other methods receive a problem response.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess.HasAccess() {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			if sess != nil {
				sess.AddFlash(shared.FlashMessage{Kind: shared.FlashInfo, Message: Prompt})
			}
			http.Redirect(w, r, "/access", http.StatusSeeOther)
			return
		}
		httpx.RespondError(w, httpx.ErrUnauthorized)
	})
}

// ShowPromptForTest exposes the GET handler for tests.
func (h *Handler) ShowPromptForTest(w http.ResponseWriter, r *http.Request) {
	h.showPrompt(w, r)
}

// HandleUnlockForTest exposes the POST handler for tests.
func (h *Handler) HandleUnlockForTest(w http.ResponseWriter, r *http.Request) {
	h.handleUnlock(w, r)
}

// HandleLockForTest exposes the lock handler for tests.
func (h *Handler) HandleLockForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLock(w, r)
}
