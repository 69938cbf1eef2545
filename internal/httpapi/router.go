package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"AnimeTrackserver/internal/auth"
	"AnimeTrackserver/internal/service"
)

type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	DBPing func(context.Context) error

	Tokens     TokenVerifier
	Auth       *service.AuthService
	Catalog    *service.CatalogService
	WatchLists *service.WatchListService
	Friends    *service.FriendsService
	Users      *service.UserService
	Profile    *service.ProfileService
	Contact    *service.ContactService
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := &api{
		logger:       logger,
		isProd:       opts.IsProd,
		dbPing:       opts.DBPing,
		tokens:       opts.Tokens,
		authSvc:      opts.Auth,
		catalogSvc:   opts.Catalog,
		watchListSvc: opts.WatchLists,
		friendsSvc:   opts.Friends,
		usersSvc:     opts.Users,
		profileSvc:   opts.Profile,
		contactSvc:   opts.Contact,
	}

	publicMux := http.NewServeMux()
	apiMux := http.NewServeMux()

	publicMux.HandleFunc("GET /healthz", api.handleHealthz)

	// Without a database there is nothing behind these routes; answer 501
	// instead of panicking on a nil service.
	if api.authSvc == nil {
		apiMux.HandleFunc("/api/", handleNotImplemented)
		apiMux.HandleFunc("POST /api/contact", api.handleContact)
		return wrap(apiMux, publicMux, logger, opts.IsProd)
	}

	apiMux.HandleFunc("POST /api/auth/register", api.handleAuthRegister)
	apiMux.HandleFunc("POST /api/auth/login", api.handleAuthLogin)
	apiMux.HandleFunc("GET /api/auth/profile/me", api.requireAuth(api.handleAuthMe))

	apiMux.HandleFunc("GET /api/animes", api.handleAnimesList)
	apiMux.HandleFunc("POST /api/animes", api.handleAnimesCreate)
	apiMux.HandleFunc("GET /api/animes/{id}", api.handleAnimesGet)
	apiMux.HandleFunc("PUT /api/animes/{id}", api.handleAnimesUpdate)
	apiMux.HandleFunc("DELETE /api/animes/{id}", api.handleAnimesDelete)

	apiMux.HandleFunc("GET /api/user/me", api.requireAuth(api.handleProfileGet))
	apiMux.HandleFunc("PATCH /api/user/me", api.requireAuth(api.handleProfileUpdate))
	apiMux.HandleFunc("DELETE /api/user/me", api.requireAuth(api.handleProfileDelete))
	apiMux.HandleFunc("GET /api/user/search", api.requireAuth(api.handleUsersSearch))
	apiMux.HandleFunc("GET /api/user/{id}", api.requireAuth(api.handleProfileGetByID))

	apiMux.HandleFunc("GET /api/user/my-animes", api.requireAuth(api.handleWatchListGet))
	apiMux.HandleFunc("POST /api/user/my-animes", api.requireAuth(api.handleWatchListAdd))
	apiMux.HandleFunc("PATCH /api/user/my-animes/{animeId}", api.requireAuth(api.handleWatchListUpdate))
	apiMux.HandleFunc("DELETE /api/user/my-animes/{animeId}", api.requireAuth(api.handleWatchListRemove))
	apiMux.HandleFunc("PATCH /api/user/favorite/{animeId}", api.requireAuth(api.handleWatchListToggleFavorite))

	apiMux.HandleFunc("GET /api/friends", api.requireAuth(api.handleFriendsList))
	apiMux.HandleFunc("POST /api/friends/request", api.requireAuth(api.handleFriendsCreateRequest))
	apiMux.HandleFunc("PATCH /api/friends/accept/{id}", api.requireAuth(api.handleFriendsAccept))
	apiMux.HandleFunc("DELETE /api/friends/reject/{id}", api.requireAuth(api.handleFriendsReject))
	apiMux.HandleFunc("GET /api/friends/requests", api.requireAuth(api.handleFriendsIncoming))
	apiMux.HandleFunc("GET /api/friends/sent-requests", api.requireAuth(api.handleFriendsOutgoing))

	apiMux.HandleFunc("POST /api/contact", api.handleContact)

	return wrap(apiMux, publicMux, logger, opts.IsProd)
}

func wrap(apiMux, publicMux *http.ServeMux, logger *slog.Logger, isProd bool) http.Handler {
	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := apiMux.Handler(r)
		if pattern == "" {
			handleAPINotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/api" {
			apiHandler.ServeHTTP(w, r)
			return
		}
		publicMux.ServeHTTP(w, r)
	})

	var h http.Handler = root
	h = RequestLogger(logger)(h)
	h = RequestID()(h)
	h = CORS()(h)
	h = Recoverer(logger, isProd)(h)
	return h
}

func handleNotImplemented(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotImplemented, "not_implemented", "not implemented")
}

func handleAPINotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "not_found", "not found")
}

type api struct {
	logger *slog.Logger
	isProd bool

	dbPing func(context.Context) error

	tokens       TokenVerifier
	authSvc      *service.AuthService
	catalogSvc   *service.CatalogService
	watchListSvc *service.WatchListService
	friendsSvc   *service.FriendsService
	usersSvc     *service.UserService
	profileSvc   *service.ProfileService
	contactSvc   *service.ContactService
}

func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if a.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()
		if err := a.dbPing(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db down"))
			return
		}
	}

	_, _ = w.Write([]byte("ok"))
}
