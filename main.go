package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/oremos-juntos/internal/auth"
	"github.com/debemdeboas/oremos-juntos/internal/cache"
	"github.com/debemdeboas/oremos-juntos/internal/cms"
	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/debemdeboas/oremos-juntos/internal/db"
	"github.com/debemdeboas/oremos-juntos/internal/editor"
	"github.com/debemdeboas/oremos-juntos/internal/leads"
	"github.com/debemdeboas/oremos-juntos/internal/logger"
	"github.com/debemdeboas/oremos-juntos/internal/procedure"
	"github.com/debemdeboas/oremos-juntos/internal/render"
	"github.com/debemdeboas/oremos-juntos/internal/repository"
	"github.com/debemdeboas/oremos-juntos/internal/routes"
	"github.com/debemdeboas/oremos-juntos/internal/sse"
	"github.com/debemdeboas/oremos-juntos/internal/storage"
	"github.com/debemdeboas/oremos-juntos/internal/theme"
)

//go:embed static/* templates/*
var embedded embed.FS

var appLogger zerolog.Logger

type app struct {
	active    *cms.Active
	saver     *cms.Saver
	store     repository.WatchedContentRepository
	buffers   editor.Repository
	locks     *editor.Locks
	sessions  *auth.Sessions
	images    storage.ImageStore
	leads     *leads.Service
	clients   *sse.SSEClients
	procedure http.Handler
	ids       *content.IDSource
	pages     *pages

	uploadsDir  string
	maxUpload   int64
	saveTimeout time.Duration
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file loaded")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := config.LoadConfig(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.AppConfig

	l := logger.New(cfg.Logging)
	appLogger = l
	setLoggers(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		l.Fatal().Err(err).Msgf(config.ErrInitializeDatabaseFmt, err)
	}
	defer database.Close()

	a, err := newApp(ctx, cfg, database)
	if err != nil {
		l.Fatal().Err(err).Msg("Error setting up the application")
	}
	go a.store.Watch(ctx, cfg.Store.WatchInterval)

	// The SSE route clears its own write deadline.
	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      a.handler(l),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("Error shutting down server")
		}
	}()

	l.Info().Str("addr", srv.Addr).Str("version", cfg.Version).Msg("Starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal().Err(err).Msg("Server error")
	}
	l.Info().Msg("Server stopped")
}

func setLoggers(l zerolog.Logger) {
	component := func(name string) zerolog.Logger {
		return l.With().Str("component", name).Logger()
	}
	config.SetLogger(component("config"))
	db.SetLogger(component("db"))
	repository.SetLogger(component("repository"))
	cms.SetLogger(component("cms"))
	procedure.SetLogger(component("procedure"))
	editor.SetLogger(component("editor"))
	storage.SetLogger(component("storage"))
	leads.SetLogger(component("leads"))
	auth.SetLogger(component("auth"))
	render.SetLogger(component("render"))
}

func openDatabase(ctx context.Context, cfg *config.Config) (db.Db, error) {
	dsn := cfg.Store.SQLitePath
	if cfg.Store.Driver == "postgres" {
		dsn = cfg.Secrets.DatabaseURL
	}
	database, err := db.Open(cfg.Store.Driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := database.InitDb(ctx); err != nil {
		return nil, err
	}
	return database, nil
}

// newStores returns the buffer and session stores. Both live in Redis when
// buffer_store is redis, in memory otherwise.
func newStores(ctx context.Context, cfg *config.Config) (editor.Repository, auth.SessionStore, error) {
	if cfg.CMS.BufferStore != "redis" {
		return editor.NewMemoryRepository(cfg.CMS.BufferTTL), auth.NewMemorySessionStore(), nil
	}

	opts, err := redis.ParseURL(cfg.Secrets.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	return editor.NewRedisRepositoryWithClient(client, cfg.CMS.BufferTTL), auth.NewRedisSessionStore(client), nil
}

func newApp(ctx context.Context, cfg *config.Config, database db.Db) (*app, error) {
	store, err := repository.NewContentStore(database, cfg.Store.ContentFile, cfg.Store.Compression)
	if err != nil {
		return nil, err
	}

	active := cms.NewActive(cms.NewLoader(store).Load(ctx))

	clients := sse.NewSSEClients()
	active.SetReplaceNotifier(func(version uint64) {
		clients.Broadcast(sse.TopicContent, sse.Event{Name: "reload", Data: strconv.FormatUint(version, 10)})
	})
	store.SetReloadNotifier(func(rec repository.ContentRecord) {
		doc, err := content.Reconcile(content.Defaults(), rec.Content)
		if err != nil {
			appLogger.Warn().Err(err).Msg("Reloaded content had undecodable sections")
		}
		active.Replace(doc)
	})

	procedureURL := cfg.CMS.ProcedureURL
	if procedureURL == "" {
		procedureURL = cfg.Site.BaseURL
	}
	client := procedure.NewClient(procedureURL, &http.Client{Timeout: cfg.CMS.SaveTimeout})
	saver := cms.NewSaver(active, client, repository.NewPolicyContentRepository(store, cfg.Store.AllowDirectWrites))

	buffers, sessionStore, err := newStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gate := auth.NewGate(func() string {
		return active.Get().Settings().String("cmsPassword")
	})
	sessions := auth.NewSessions(gate, sessionStore, cfg.CMS.SessionTTL)
	sessions.Secure = strings.HasPrefix(cfg.Site.BaseURL, "https://")

	images, err := storage.New(ctx, storage.Options{
		Driver:        cfg.Storage.Driver,
		Bucket:        cfg.Storage.Bucket,
		FSDir:         cfg.Storage.FSDir,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		Endpoint:      cfg.Storage.Endpoint,
		Region:        cfg.Storage.Region,
		UseSSL:        cfg.Storage.UseSSL,
		AccessKeyID:   cfg.Secrets.S3AccessKeyID,
		SecretKey:     cfg.Secrets.S3SecretAccessKey,
	})
	if err != nil {
		return nil, fmt.Errorf("error setting up image storage: %w", err)
	}

	tmpl, err := parsePages(embedded)
	if err != nil {
		return nil, err
	}

	a := &app{
		active:      active,
		saver:       saver,
		store:       store,
		buffers:     buffers,
		locks:       editor.NewLocks(),
		sessions:    sessions,
		images:      images,
		leads:       leads.NewService(repository.NewDBLeadRepository(database)),
		clients:     clients,
		procedure:   procedure.NewHandler(procedure.NewSecret(cfg.Secrets.CMSPassword, cfg.Secrets.CMSPasswordHash), store),
		ids:         content.NewIDSource(),
		pages:       tmpl,
		maxUpload:   int64(cfg.Storage.MaxUploadMB) << 20,
		saveTimeout: cfg.CMS.SaveTimeout,
	}
	if fsStore, ok := images.(*storage.FSStore); ok {
		a.uploadsDir = fsStore.Dir()
	}
	return a, nil
}

func (a *app) handler(l zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	static, _ := fs.Sub(embedded, config.StaticLocalDir)
	if err := cache.HashStatic(static, config.StaticURLPath); err != nil {
		l.Warn().Err(err).Msg("Error hashing static files")
	}

	mux.Handle("GET "+config.StaticURLPath, http.StripPrefix(config.StaticURLPath, http.FileServer(http.FS(static))))
	if a.uploadsDir != "" {
		mux.Handle("GET "+config.UploadsURLPath, http.StripPrefix(config.UploadsURLPath, http.FileServer(http.Dir(a.uploadsDir))))
	}

	mux.HandleFunc("GET "+routes.RobotsPath, serveRobots)
	mux.HandleFunc("GET "+routes.ThemeToggle, theme.ToggleHandler)
	mux.HandleFunc("GET "+routes.SSEPath, a.serveEvents)

	mux.HandleFunc("GET /{$}", a.serveLanding)
	mux.HandleFunc("GET "+routes.PrivacyPath, a.serveLegal("privacy", "Política de Privacidade"))
	mux.HandleFunc("GET "+routes.TermsPath, a.serveLegal("terms", "Termos de Uso"))
	mux.HandleFunc("POST "+routes.APILeads, a.serveRegisterLead)

	mux.Handle(procedure.Path, a.procedure)

	mux.HandleFunc("GET "+routes.AdminPath, a.serveAdmin)
	mux.HandleFunc("POST "+routes.AdminLogin, a.serveLogin)
	mux.HandleFunc("POST "+routes.AdminLogout, a.serveLogout)

	mux.HandleFunc("POST "+routes.BufferField, a.withBuffer(a.editField, false))
	mux.HandleFunc("POST "+routes.BufferItemsAdd, a.withBuffer(a.addItem, true))
	mux.HandleFunc("POST "+routes.BufferItemsUpdate, a.withBuffer(a.updateItem, false))
	mux.HandleFunc("POST "+routes.BufferItemsRemove, a.withBuffer(a.removeItem, true))
	mux.HandleFunc("POST "+routes.BufferItemsMove, a.withBuffer(a.moveItem, true))
	mux.HandleFunc("POST "+routes.BufferSectionsMove, a.withBuffer(a.moveSection, true))
	mux.HandleFunc("POST "+routes.BufferSave, a.serveSave)
	mux.HandleFunc("POST "+routes.BufferDiscard, a.serveDiscard)
	mux.HandleFunc("POST "+routes.BufferUpload, a.serveUpload)
	mux.HandleFunc("GET "+routes.BufferExport, a.serveExport)

	mux.HandleFunc("GET "+routes.AdminLeads, a.serveLeads)
	mux.HandleFunc("POST "+routes.AdminLeadContacted, a.serveLeadContacted)
	mux.HandleFunc("DELETE "+routes.AdminLead, a.serveLeadDelete)

	mux.HandleFunc("/", a.serveNotFound)

	securedMux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == routes.RobotsPath || r.URL.Path == procedure.Path {
			mux.ServeHTTP(w, r)
		} else {
			secureHeaders(mux.ServeHTTP)(w, r)
		}
	})

	return logger.Middleware(l)(a.sessions.WithSession()(cacheIt(securedMux)))
}

func serveRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, config.CTypeText)
	w.WriteHeader(http.StatusOK)
	if config.AppConfig != nil && !config.AppConfig.Content.AllowIndexing {
		w.Write([]byte("User-agent: *\nDisallow: /"))
		return
	}
	w.Write([]byte("User-agent: *\nDisallow: /admin"))
}

func (a *app) serveEvents(w http.ResponseWriter, r *http.Request) {
	// Streams outlive the server write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Could not clear write deadline")
	}
	sse.Handler(a.clients, eventTopic)(w, r)
}

// eventTopic subscribes landing pages to content replacements and admin
// panels to the toasts of their own session.
func eventTopic(r *http.Request) string {
	if r.URL.Query().Get("topic") != "admin" {
		return sse.TopicContent
	}
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		return ""
	}
	return sse.AdminTopic(sess.Token)
}

func cacheIt(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCacheControl, "no-cache")
		w.Header().Set("Vary", "Cookie")

		// Add etag header to response if it's a static file
		if hash, ok := cache.GetStaticHash(r.URL.Path); ok {
			w.Header().Set(config.HCacheControl, "public, max-age=3600")
			w.Header().Set(config.HETag, hash)
		}

		h(w, r)
	}
}

func secureHeaders(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		h(w, r)
	}
}
