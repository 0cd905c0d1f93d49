package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/mvps-print/printshop-backend/config"
	"github.com/mvps-print/printshop-backend/internal/auth"
	"github.com/mvps-print/printshop-backend/internal/bootstrap"
	cartcron "github.com/mvps-print/printshop-backend/internal/cart/cron"
	cartrepo "github.com/mvps-print/printshop-backend/internal/cart/repository"
	"github.com/mvps-print/printshop-backend/internal/mailer"
	"github.com/mvps-print/printshop-backend/internal/otp"
	"github.com/mvps-print/printshop-backend/internal/storage/postgres"
	"github.com/mvps-print/printshop-backend/internal/storage/s3"
)

const serviceName = "printshop-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	var identity *auth.Identity
	if cfg.Firebase.CredentialsPath != "" {
		client, err := auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Printf("Firebase identity delegate disabled: %v", err)
		} else {
			identity = auth.NewIdentity(client)
		}
	} else {
		log.Println("Firebase identity delegate disabled (no credentials)")
	}

	files, err := s3.NewStore(ctx, &cfg.S3)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var provider otp.Provider
	if cfg.OTP.APIKey != "" {
		provider = otp.NewTwoFactorClient(&cfg.OTP)
	} else {
		log.Println("OTP provider disabled (no OTP_API_KEY)")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:     serviceName,
		Version:         cfg.App.Version,
		DB:              db,
		Redis:           rdb,
		FileStore:       files,
		ImageStore:      files,
		Mail:            mailer.New(&cfg.SMTP),
		Identity:        identity,
		OTPProvider:     provider,
		SuperAdminEmail: cfg.Admin.SuperAdminEmail,
		OrderInbox:      cfg.Admin.OrderInbox,
		ImageHost:       "https://" + cfg.S3.Bucket + ".s3.amazonaws.com",
		EnforceAdmin:    cfg.App.Environment == "production",
		DistDir:         cfg.Static.DistDir,
		UploadsDir:      cfg.Static.UploadsDir,
	})

	cartcron.NewScheduler(cartrepo.NewCartRepository(db)).Start()

	addr := ":" + cfg.Server.Port
	log.Printf("%s %s listening on %s", serviceName, cfg.App.Version, addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
