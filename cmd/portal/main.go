package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jinzhu/copier"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
	"github.com/tendant/partner-portal/pkg/analytics"
	"github.com/tendant/partner-portal/pkg/company"
	"github.com/tendant/partner-portal/pkg/deal"
	"github.com/tendant/partner-portal/pkg/login"
	"github.com/tendant/partner-portal/pkg/payout"
	"github.com/tendant/partner-portal/pkg/portaluser"
	"github.com/tendant/partner-portal/pkg/rbac"
	"github.com/tendant/partner-portal/pkg/target"
)

type PortalDbConfig struct {
	Host     string `env:"PORTAL_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"PORTAL_PG_PORT" env-default:"5432"`
	Database string `env:"PORTAL_PG_DATABASE" env-default:"portal_db"`
	User     string `env:"PORTAL_PG_USER" env-default:"portal"`
	Password string `env:"PORTAL_PG_PASSWORD" env-default:"pwd"`
}

func (d PortalDbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type JwtConfig struct {
	JwtSecret      string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	CookieHttpOnly bool   `env:"COOKIE_HTTP_ONLY" env-default:"true"`
	CookieSecure   bool   `env:"COOKIE_SECURE" env-default:"false"`
}

type DefaultAdminConfig struct {
	Username string `env:"DEFAULT_ADMIN_USERNAME" env-default:"admin"`
	Email    string `env:"DEFAULT_ADMIN_EMAIL" env-default:"admin@example.com"`
	Password string `env:"DEFAULT_ADMIN_PASSWORD" env-default:"admin123"`
}

type Config struct {
	PortalDbConfig     PortalDbConfig
	AppConfig          app.AppConfig
	JwtConfig          JwtConfig
	DefaultAdminConfig DefaultAdminConfig
}

func main() {

	config := Config{}
	cleanenv.ReadEnv(&config)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	dbConfig := config.PortalDbConfig.toDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	userRepo, err := portaluser.NewPostgresUserRepository(pool)
	if err != nil {
		slog.Error("Failed creating user repository", "err", err)
		os.Exit(-1)
	}
	assignmentRepo, err := portaluser.NewPostgresPamAssignmentRepository(pool)
	if err != nil {
		slog.Error("Failed creating assignment repository", "err", err)
		os.Exit(-1)
	}
	companyRepo, err := company.NewPostgresCompanyRepository(pool)
	if err != nil {
		slog.Error("Failed creating company repository", "err", err)
		os.Exit(-1)
	}
	dealRepo, err := deal.NewPostgresDealRepository(pool)
	if err != nil {
		slog.Error("Failed creating deal repository", "err", err)
		os.Exit(-1)
	}
	targetRepo, err := target.NewPostgresTargetRepository(pool)
	if err != nil {
		slog.Error("Failed creating target repository", "err", err)
		os.Exit(-1)
	}
	payoutStatusRepo, err := payout.NewPostgresStatusRepository(pool)
	if err != nil {
		slog.Error("Failed creating payout status repository", "err", err)
		os.Exit(-1)
	}

	checker := rbac.NewChecker(companyRepo)

	userService := portaluser.NewUserService(userRepo)
	assignmentService := portaluser.NewPamAssignmentService(userRepo, assignmentRepo, companyRepo)
	companyService := company.NewCompanyService(companyRepo, assignmentRepo)
	dealService := deal.NewDealService(dealRepo)
	targetService := target.NewTargetService(targetRepo)
	payoutService := payout.NewPayoutService(dealRepo, companyRepo, payoutStatusRepo)
	analyticsService := analytics.NewAnalyticsService(companyRepo, dealRepo, userRepo)

	// jwt service
	jwtService := login.NewJwtServiceOptions(
		config.JwtConfig.JwtSecret,
		login.WithCookieHttpOnly(config.JwtConfig.CookieHttpOnly),
		login.WithCookieSecure(config.JwtConfig.CookieSecure),
	)
	loginService := login.NewLoginService(userService, assignmentRepo, jwtService)

	bootstrapAdmin(context.Background(), userService, config.DefaultAdminConfig)

	loginHandler := login.NewHandler(loginService, jwtService)
	userHandler := portaluser.NewHandler(userService, assignmentService, checker)
	companyHandler := company.NewHandler(companyService, checker)
	dealHandler := deal.NewHandler(dealService, checker)
	targetHandler := target.NewHandler(targetService, checker)
	payoutHandler := payout.NewHandler(payoutService, checker)
	analyticsHandler := analytics.NewHandler(analyticsService, checker)

	server.R.Route("/api/auth", func(r chi.Router) {
		loginHandler.RegisterRoutes(r)
	})

	tokenAuth := jwtauth.New("HS256", []byte(config.JwtConfig.JwtSecret), nil)

	server.R.Group(func(r chi.Router) {
		r.Use(rbac.Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator(tokenAuth))
		r.Use(rbac.AuthUserMiddleware)

		r.Route("/api", func(r chi.Router) {
			loginHandler.RegisterProtectedRoutes(r)
			userHandler.RegisterRoutes(r)
			companyHandler.RegisterRoutes(r)
			dealHandler.RegisterRoutes(r)
			targetHandler.RegisterRoutes(r)
			payoutHandler.RegisterRoutes(r)
			analyticsHandler.RegisterRoutes(r)
		})
	})

	server.Run()
}

// bootstrapAdmin creates the default portal administrator when no account
// with the configured email exists yet.
func bootstrapAdmin(ctx context.Context, users *portaluser.UserService, cfg DefaultAdminConfig) {
	req := portaluser.CreateUserRequest{Role: string(rbac.RolePortalAdmin)}
	copier.Copy(&req, &cfg)

	if _, err := users.CreateUser(ctx, req); err != nil {
		var dup portaluser.ErrEmailAlreadyExists
		if errors.As(err, &dup) {
			slog.Info("Default admin already exists", "email", cfg.Email)
			return
		}
		slog.Error("Failed creating default admin", "email", cfg.Email, "err", err)
		os.Exit(-1)
	}
	slog.Info("Created default admin", "email", cfg.Email)
}
