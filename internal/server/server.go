package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/heritage/internal/auth"
	authdomain "github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/internal/auth/session"
	"github.com/smallbiznis/heritage/internal/auth/token"
	"github.com/smallbiznis/heritage/internal/authorization"
	"github.com/smallbiznis/heritage/internal/cloudmetrics"
	"github.com/smallbiznis/heritage/internal/config"
	"github.com/smallbiznis/heritage/internal/geo"
	geodomain "github.com/smallbiznis/heritage/internal/geo/domain"
	"github.com/smallbiznis/heritage/internal/heritagesite"
	sitedomain "github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"github.com/smallbiznis/heritage/internal/observability"
	obslogger "github.com/smallbiznis/heritage/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/heritage/internal/observability/metrics"
	obstracing "github.com/smallbiznis/heritage/internal/observability/tracing"
	"github.com/smallbiznis/heritage/internal/providers/pdf"
	"github.com/smallbiznis/heritage/internal/ratelimit"
	"github.com/smallbiznis/heritage/internal/scheduler"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	cloudmetrics.Module,
	fx.Provide(registerGin),
	authorization.Module,
	auth.Module,
	geo.Module,
	heritagesite.Module,
	pdf.Module,
	ratelimit.Module,
	scheduler.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware())
	}
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	addr := strings.TrimSpace(cfg.HTTPAddr)
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	catalog      *config.CatalogConfigHolder
	log          *zap.Logger
	authsvc      authdomain.Service
	sessions     *session.Manager
	tokens       *token.Issuer
	authzSvc     authorization.Service
	siteSvc      sitedomain.Service
	geoSvc       geodomain.Service
	pdf          pdf.Provider
	loginLimiter *ratelimit.LoginLimiter
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	Catalog  *config.CatalogConfigHolder `optional:"true"`
	Log      *zap.Logger
	Authsvc  authdomain.Service
	Sessions *session.Manager
	Tokens   *token.Issuer
	AuthzSvc authorization.Service
	SiteSvc  sitedomain.Service
	GeoSvc   geodomain.Service
	PDF      pdf.Provider

	LoginLimiter *ratelimit.LoginLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	catalog := p.Catalog
	if catalog == nil {
		catalog = config.NewStaticCatalogConfigHolder(config.DefaultCatalogConfig())
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}

	registerValidatorTagNames()

	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		catalog:      catalog,
		log:          log.Named("http.server"),
		authsvc:      p.Authsvc,
		sessions:     p.Sessions,
		tokens:       p.Tokens,
		authzSvc:     p.AuthzSvc,
		siteSvc:      p.SiteSvc,
		geoSvc:       p.GeoSvc,
		pdf:          p.PDF,
		loginLimiter: p.LoginLimiter,
	}

	svc.registerAuthRoutes()
	svc.registerPageRoutes()
	svc.registerAPIRoutes()
	svc.registerDocsRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	r := s.engine.Group("/")

	r.GET("/login/", s.redirectIfLoggedIn(), s.LoginPage)
	r.POST("/login/", s.LoginRateLimit(), s.Login)
	r.POST("/logout/", s.Logout)
}

func (s *Server) registerPageRoutes() {
	r := s.engine.Group("/", s.OptionalAuth())

	r.GET("/", s.HomePage)
	r.GET("/about/", s.AboutPage)

	sites := r.Group("/sites")
	{
		sites.GET("/", s.SiteListPage)
		sites.GET("/filter/", s.SiteFilterPage)
		sites.GET("/new/",
			s.WebAuthRequired(),
			s.authorize(authorization.ObjectHeritageSite, authorization.ActionHeritageSiteCreate),
			s.SiteCreateForm,
		)
		sites.POST("/new/",
			s.WebAuthRequired(),
			s.authorize(authorization.ObjectHeritageSite, authorization.ActionHeritageSiteCreate),
			s.SiteCreatePage,
		)
		sites.GET("/:id/", s.SiteDetailPage)
		sites.GET("/:id/pdf/", s.SiteFactSheet)
		sites.GET("/:id/update/",
			s.WebAuthRequired(),
			s.authorize(authorization.ObjectHeritageSite, authorization.ActionHeritageSiteUpdate),
			s.SiteUpdateForm,
		)
		sites.POST("/:id/update/",
			s.WebAuthRequired(),
			s.authorize(authorization.ObjectHeritageSite, authorization.ActionHeritageSiteUpdate),
			s.SiteUpdatePage,
		)
		sites.POST("/:id/delete/",
			s.WebAuthRequired(),
			s.authorize(authorization.ObjectHeritageSite, authorization.ActionHeritageSiteDelete),
			s.SiteDeletePage,
		)
	}

	countries := r.Group("/country_area",
		s.WebAuthRequired(),
		s.authorize(authorization.ObjectCountryArea, authorization.ActionCountryAreaView),
	)
	{
		countries.GET("/", s.CountryAreaListPage)
		countries.GET("/:id/", s.CountryAreaDetailPage)
	}
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/auth/token/", s.LoginRateLimit(), s.IssueToken)

	sites := api.Group("/sites")
	{
		sites.GET("/", s.ListSites)
		sites.GET("/:id/", s.GetSite)
		sites.POST("/",
			s.APIAuthRequired(),
			s.authorize(authorization.ObjectHeritageSite, authorization.ActionHeritageSiteCreate),
			s.CreateSite,
		)
		sites.PUT("/:id/",
			s.APIAuthRequired(),
			s.authorize(authorization.ObjectHeritageSite, authorization.ActionHeritageSiteUpdate),
			s.UpdateSite,
		)
		sites.PATCH("/:id/",
			s.APIAuthRequired(),
			s.authorize(authorization.ObjectHeritageSite, authorization.ActionHeritageSiteUpdate),
			s.PatchSite,
		)
		sites.DELETE("/:id/",
			s.APIAuthRequired(),
			s.authorize(authorization.ObjectHeritageSite, authorization.ActionHeritageSiteDelete),
			s.DeleteSite,
		)
	}
}
