package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"

	"videopoker-server/internal/jwt"
	"videopoker-server/pkg/videopoker"
)

type ctxKey int

const (
	ctxUserIDKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  config
	version string
	machine *videopoker.Machine

	// store for testing purposes
	roundRouter *gmux.Router
}

type config struct {
	// requireToken rejects round requests without a bearer token
	requireToken bool
}

// Option configures the mux
type Option func(m *Mux)

// WithRequireToken makes a bearer token mandatory on every round endpoint
func WithRequireToken(require bool) Option {
	return func(m *Mux) {
		m.config.requireToken = require
	}
}

// NewMux returns a new HTTP mux
func NewMux(version string, machine *videopoker.Machine, opts ...Option) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		machine: machine,
	}

	for _, opt := range opts {
		opt(this)
	}

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/").Handler(this.getRoot())
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/api/paytable").Handler(this.getPayTable())
		r.Methods(http.MethodPost).Path("/api/signup").Handler(this.postSignUp())
		r.Methods(http.MethodPost).Path("/api/signin").Handler(this.postSignIn())
		r.Methods(http.MethodPost).Path("/api/login").Handler(this.postLogin())
	}

	this.roundRouter = this.Router.PathPrefix("/api").Subrouter()
	this.roundRouter.Use(this.tokenMiddleware)

	// a bearer token, when present, must belong to the user named in the request
	{
		r := this.roundRouter
		r.Methods(http.MethodGet).Path("/status/{user_id}").Handler(this.getStatus())
		r.Methods(http.MethodPost).Path("/start").Handler(this.postStart())
		r.Methods(http.MethodPost).Path("/discard").Handler(this.postDiscard())
		r.Methods(http.MethodPost).Path("/reveal").Handler(this.postReveal())
	}

	return this
}

func (m *Mux) tokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			if header := r.Header.Get("Authorization"); header != "" {
				authHeader := strings.Split(header, " ")
				if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
					writeJSONError(w, http.StatusUnauthorized, nil)
					return
				}

				token = authHeader[1]
			}
		}

		if token == "" {
			if m.config.requireToken {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			next.ServeHTTP(w, r)
			return
		}

		id, err := jwt.ValidUserID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxUserIDKey, id)
		w.Header().Set("VideoPoker-UserID", id)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// authorized returns false if the request carries a token for a different user
// It writes the 403 itself.
func authorized(w http.ResponseWriter, r *http.Request, userID string) bool {
	tokenUserID, ok := r.Context().Value(ctxUserIDKey).(string)
	if ok && tokenUserID != userID {
		writeJSONError(w, http.StatusForbidden, nil)
		return false
	}

	return true
}
