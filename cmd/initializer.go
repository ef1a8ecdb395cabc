package main

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"gopkg.in/gomail.v2"

	"membroBack/internal/config"
	"membroBack/internal/handlers"
	"membroBack/internal/repositories"
	"membroBack/internal/services"
	"membroBack/utils"
)

type application struct {
	cfg          config.Config
	errorLog     *log.Logger
	infoLog      *log.Logger
	db           *sql.DB
	tokenManager *utils.Manager

	userRepo *repositories.UserRepository

	paymentHandler      *handlers.PaymentHandler
	memberHandler       *handlers.MemberHandler
	centerHandler       *handlers.CenterHandler
	reportHandler       *handlers.ReportHandler
	notificationHandler *handlers.NotificationHandler
	userHandler         *handlers.UserHandler
}

func initializeApp(cfg config.Config, db *sql.DB, errorLog, infoLog *log.Logger) (*application, error) {
	tokenManager, err := utils.NewManager(cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	// Repositories
	paymentRepo := &repositories.PaymentRepository{DB: db}
	memberRepo := &repositories.MemberRepository{DB: db}
	centerRepo := &repositories.CenterRepository{DB: db}
	reportRepo := &repositories.ReportRepository{DB: db}
	notificationRepo := &repositories.NotificationRepository{DB: db}
	userRepo := &repositories.UserRepository{DB: db}

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var mailer services.Mailer
	if cfg.SMTP.Host != "" {
		mailer = &services.SMTPMailer{
			Dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
			From:   cfg.SMTP.From,
		}
	}

	// Services
	paymentService := &services.PaymentService{PaymentRepo: paymentRepo, MemberRepo: memberRepo, Cache: cache}
	memberService := &services.MemberService{MemberRepo: memberRepo}
	centerService := &services.CenterService{CenterRepo: centerRepo}
	reportService := &services.ReportService{ReportRepo: reportRepo}
	notificationService := &services.NotificationService{NotificationRepo: notificationRepo, Mailer: mailer}
	userService := &services.UserService{
		UserRepo:     userRepo,
		TokenManager: tokenManager,
		AccessTTL:    time.Duration(cfg.JWT.AccessTTLHours) * time.Hour,
		RefreshTTL:   time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour,
	}

	return &application{
		cfg:          cfg,
		errorLog:     errorLog,
		infoLog:      infoLog,
		db:           db,
		tokenManager: tokenManager,
		userRepo:     userRepo,

		paymentHandler:      &handlers.PaymentHandler{Service: paymentService},
		memberHandler:       &handlers.MemberHandler{Service: memberService},
		centerHandler:       &handlers.CenterHandler{Service: centerService},
		reportHandler:       &handlers.ReportHandler{Service: reportService},
		notificationHandler: &handlers.NotificationHandler{Service: notificationService},
		userHandler:         &handlers.UserHandler{Service: userService},
	}, nil
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}
