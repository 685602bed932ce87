package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/ss-immigration/application_service/config"
	"github.com/ss-immigration/application_service/infra/queue"
	"github.com/ss-immigration/application_service/internal/api/rest/handlers"
	"github.com/ss-immigration/application_service/internal/clients/paystack"
	"github.com/ss-immigration/application_service/internal/domain"
	"github.com/ss-immigration/application_service/internal/helper"
	"github.com/ss-immigration/application_service/internal/repository"
	"github.com/ss-immigration/application_service/internal/services"
	"github.com/ss-immigration/application_service/pkg/cloudinary"
	"github.com/ss-immigration/application_service/pkg/logger"
	"github.com/ss-immigration/application_service/pkg/pdf"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zlog.Sync() }()

	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260411

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Application{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	authHelper := helper.SetupAuth(cfg.AccessSecret)
	seedStaffUsers(db, authHelper, cfg.DefaultStaffPassword)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)
	gateway := paystack.New(cfg.PaystackSecretKey)
	docs := pdf.NewGenerator()

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, authHelper)
	appSvc := services.NewApplicationService(appRepo, up, kafkaProducer, docs, zlog)
	paymentSvc := services.NewPaymentService(appRepo, gateway, kafkaProducer, zlog)

	// ---------- Handlers ----------
	authHandler := handlers.NewAuthHandler(userSvc, authHelper)
	authHandler.SetupRoutes(app)
	appHandler := handlers.NewApplicationHandler(appSvc, paymentSvc, authHelper)
	appHandler.SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

// seedStaffUsers creates the built-in officer, supervisor and admin accounts
// on first boot. Skipped entirely when no default password is configured.
func seedStaffUsers(db *gorm.DB, auth helper.Auth, defaultPassword string) {
	if defaultPassword == "" {
		return
	}

	staff := []domain.User{
		{Email: "officer@immigration.gov.ss", FirstName: "Immigration", LastName: "Officer", Role: domain.RoleOfficer},
		{Email: "supervisor@immigration.gov.ss", FirstName: "Immigration", LastName: "Supervisor", Role: domain.RoleSupervisor},
		{Email: "admin@immigration.gov.ss", FirstName: "System", LastName: "Administrator", Role: domain.RoleAdmin},
	}

	for _, u := range staff {
		var existing domain.User
		err := db.Where("email = ?", u.Email).First(&existing).Error
		if err != gorm.ErrRecordNotFound {
			continue
		}

		hashed, hashErr := auth.HashPassword(defaultPassword)
		if hashErr != nil {
			log.Printf("seed staff user %s: %v", u.Email, hashErr)
			continue
		}
		u.PasswordHash = hashed
		u.Status = "active"
		if createErr := db.Create(&u).Error; createErr != nil {
			log.Printf("seed staff user %s: %v", u.Email, createErr)
		}
	}
}
