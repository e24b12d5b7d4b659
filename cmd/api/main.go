package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v78"

	"fitsync-pro/backend/internal/cache"
	"fitsync-pro/backend/internal/config"
	"fitsync-pro/backend/internal/domain/booking"
	"fitsync-pro/backend/internal/domain/notify"
	"fitsync-pro/backend/internal/domain/order"
	"fitsync-pro/backend/internal/domain/product"
	"fitsync-pro/backend/internal/domain/profile"
	"fitsync-pro/backend/internal/domain/review"
	"fitsync-pro/backend/internal/domain/session"
	"fitsync-pro/backend/internal/domain/stats"
	"fitsync-pro/backend/internal/domain/trainer"
	"fitsync-pro/backend/internal/domain/virtualsession"
	"fitsync-pro/backend/internal/firebase"
	"fitsync-pro/backend/internal/handlers"
	apihttp "fitsync-pro/backend/internal/http"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase init failed: %v", err)
	}
	defer clients.Close()

	fs := clients.Firestore

	// Repositories
	sessionRepo := session.NewRepo(fs)
	bookingRepo := booking.NewRepo(fs)
	virtualRepo := virtualsession.NewRepo(fs)
	reviewRepo := review.NewRepo(fs)
	productRepo := product.NewRepo(fs)
	orderRepo := order.NewRepo(fs)
	notifyRepo := notify.NewRepo(fs)

	// Services
	sessionSvc := session.NewService(sessionRepo)
	bookingSvc := booking.NewService(bookingRepo, sessionSvc)
	virtualSvc := virtualsession.NewService(virtualRepo)
	reviewSvc := review.NewService(reviewRepo)
	trainerSvc := trainer.NewService(sessionSvc, reviewRepo)
	productSvc := product.NewService(productRepo)
	orderSvc := order.NewService(orderRepo, productSvc)
	notifySvc := notify.NewService(notifyRepo)
	statsSvc := stats.NewService(fs, orderRepo)
	profileSvc := profile.NewService(fs, clients.Auth)

	// Cross-service wiring: bookings satisfy the session participant view,
	// and the notify service receives events from both sides.
	sessionSvc.SetParticipants(bookingSvc)
	sessionSvc.SetNotifier(notifySvc)
	bookingSvc.SetNotifier(notifySvc)

	// Session listing cache: redis when configured, in-process otherwise.
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sessionSvc.SetCache(cache.NewRedis(rdb), cfg.SessionCacheTTL)
		log.Printf("session cache: redis at %s", cfg.RedisAddr)
	} else {
		sessionSvc.SetCache(cache.NewMemory(), cfg.SessionCacheTTL)
		log.Println("session cache: in-process memory")
	}

	// Email dispatch is optional; without SMTP only in-app notifications go out.
	if cfg.SMTPHost != "" {
		notifySvc.SetDispatcher(notify.NewSMTPDispatcher(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom))
		log.Printf("email dispatch via %s:%s", cfg.SMTPHost, cfg.SMTPPort)
	} else {
		log.Println("SMTP_HOST not set, email dispatch disabled")
	}

	// Stripe is optional; without it checkout and the webhook are disabled.
	if cfg.StripeSecretKey != "" {
		stripe.Key = cfg.StripeSecretKey
		orderSvc.SetStripeConfig(&order.StripeConfig{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
		})
		log.Println("Stripe checkout initialized")
	} else {
		log.Println("STRIPE_SECRET_KEY not set, Stripe features disabled")
	}

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:        cfg,
		AuthClient: clients.Auth,
		SessionSvc: sessionSvc,
		BookingSvc: bookingSvc,
		VirtualSvc: virtualSvc,
		ReviewSvc:  reviewSvc,
		TrainerSvc: trainerSvc,
		ProductSvc: productSvc,
		OrderSvc:   orderSvc,
		NotifySvc:  notifySvc,
		StatsSvc:   statsSvc,
		ProfileSvc: profileSvc,
		Uploads:    handlers.NewUploads(cfg, clients),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Printf("API listening on :%s (project=%s)", cfg.Port, cfg.ProjectID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
}
