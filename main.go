package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"sarpras-backend/docs"
	"sarpras-backend/internal/dashboard"
	"sarpras-backend/internal/inventory/consumables"
	"sarpras-backend/internal/inventory/equipment"
	"sarpras-backend/internal/inventory/ledger"
	"sarpras-backend/internal/inventory/loans"
	"sarpras-backend/internal/platform/auth"
	"sarpras-backend/internal/platform/db"
	"sarpras-backend/internal/platform/metrics"
	"sarpras-backend/internal/platform/middleware"
)

//go:generate swag init -g main.go -o docs --parseInternal

//	@title						SARPRAS inventory API
//	@version					1.0
//	@description				Equipment loans and consumable stock ledger.
//	@BasePath					/api/v1
//	@schemes					https http
//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// 設定読み込み
	cfg, err := db.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	// 動作モード取得
	mode := cfg.Mode
	log.Printf("[INFO] mode:%s version:%s\n", mode, cfg.Version)

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("config: mode must be dev or release")
		return
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("[ERROR] auth.jwt_secret is required")
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s (%s)", cfg.DB.DBName+cfg.DB.Path, cfg.DB.Driver)

	ctx := context.Background()
	if err := db.EnsureSchema(ctx, conn); err != nil {
		log.Fatalf("[ERROR] schema: %v", err)
	}

	authSvc := auth.NewService(conn, cfg.Auth)
	if cfg.Auth.AdminID != "" {
		if err := authSvc.EnsureAccount(ctx, cfg.Auth.AdminID, cfg.Auth.AdminPassword); err != nil {
			log.Fatalf("[ERROR] bootstrap account: %v", err)
		}
	}

	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := setupRouter(cfg, conn, authSvc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// TLS設定（証明書が無ければ平文で起動）
	var certFile, keyFile string
	if cfg.Certificate.Cert != "" && cfg.Certificate.Key != "" {
		certFile = fmt.Sprintf("config/tls/%s/%s", mode, cfg.Certificate.Cert)
		keyFile = fmt.Sprintf("config/tls/%s/%s", mode, cfg.Certificate.Key)
	}

	go func() {
		var err error
		if certFile != "" {
			log.Printf("[INFO] listening on https://%s", cfg.Addr)
			err = srv.ListenAndServeTLS(certFile, keyFile)
		} else {
			log.Printf("[WARN] no certificate configured, listening on http://%s", cfg.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

// setupRouter: ミドルウェアと全ルートを載せた gin.Engine を返す
func setupRouter(cfg *db.Config, conn *db.DB, authSvc *auth.Service) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), gin.LoggerWithFormatter(middleware.LogFormatter), gin.Recovery(), metrics.Middleware())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == "dev" {
		// CORS（開発中のみ必要）
		origins := cfg.CORS.AllowOrigins
		if len(origins) == 0 {
			origins = []string{"http://localhost:3000"}
		}
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス・メトリクス・API ドキュメント
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", metrics.Handler())
	docs.SwaggerInfo.Version = cfg.Version
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// /api/v1（参照は誰でも、更新はログイン必須）
	api := r.Group(docs.SwaggerInfo.BasePath)
	write := api.Group("", auth.RequireAuth(authSvc.Secret()))

	l := ledger.New(conn.Dialect)
	auth.RegisterRoutes(api, write, authSvc)
	equipment.RegisterRoutes(api, write, equipment.NewService(conn, l))
	loans.RegisterRoutes(api, write, loans.NewService(conn, l))
	consumables.RegisterRoutes(api, write, consumables.NewService(conn, l))
	dashboard.RegisterRoutes(api, dashboard.NewService(conn))
	return r
}
