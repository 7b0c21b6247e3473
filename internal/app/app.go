package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sulphite1011/LMS-by-Hamad/internal/app/server"
	"github.com/sulphite1011/LMS-by-Hamad/internal/config"
	deliveryhttp "github.com/sulphite1011/LMS-by-Hamad/internal/delivery/http"
	"github.com/sulphite1011/LMS-by-Hamad/internal/payment"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/auth"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/catalog"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/editor"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/course/management"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/dashboard"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/progress"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/purchase"
	"github.com/sulphite1011/LMS-by-Hamad/internal/service/rating"
	"github.com/sulphite1011/LMS-by-Hamad/internal/storage/elastic"
	"github.com/sulphite1011/LMS-by-Hamad/internal/storage/minio_storage"
	"github.com/sulphite1011/LMS-by-Hamad/internal/storage/postgres"
	"github.com/sulphite1011/LMS-by-Hamad/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	minioClient, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	thumbnailRepo, err := minio_storage.NewThumbnailStorage(minioClient, cfg.Minio.ThumbnailBucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing thumbnail bucket", err)
	}

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewCourseSearchRepository(esClient, cfg.ES.Index)
	if err := searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error creating search index", err)
	}

	stripeClient := payment.NewStripeClient(
		cfg.Stripe.SecretKey,
		cfg.Stripe.WebhookSecret,
		cfg.Stripe.Currency,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
	)

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	contentRepo := postgres.NewContentPostgres(pg.Pool)
	enrollmentRepo := postgres.NewEnrollmentPostgres(pg.Pool)
	purchaseRepo := postgres.NewPurchasePostgres(pg.Pool)
	ratingRepo := postgres.NewRatingPostgres(pg.Pool)
	progressRepo := postgres.NewProgressPostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, "course-marketplace", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	u := service.Collection{
		Auth:       auth.NewAuthService(log, jwtManager, userRepo, tokenRepo),
		Catalog:    catalog.NewCatalogService(log, courseRepo, contentRepo, enrollmentRepo, ratingRepo, searchRepo, thumbnailRepo, userRepo),
		Editor:     editor.NewEditorService(log, courseRepo, contentRepo),
		Management: management.NewManagementService(log, courseRepo, contentRepo, enrollmentRepo, searchRepo, thumbnailRepo),
		Purchase:   purchase.NewPurchaseService(log, courseRepo, purchaseRepo, enrollmentRepo, stripeClient),
		Dashboard:  dashboard.NewDashboardService(log, courseRepo, contentRepo, enrollmentRepo, purchaseRepo, progressRepo),
		Progress:   progress.NewProgressService(log, contentRepo, enrollmentRepo, progressRepo),
		Rating:     rating.NewRatingService(log, enrollmentRepo, ratingRepo),
	}

	r := deliveryhttp.InitRoutes(log, u, stripeClient)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
