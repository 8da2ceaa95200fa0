package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yuxdigital/yux-crm/internal/infra/database"
	"github.com/yuxdigital/yux-crm/internal/infra/http/handlers"
	"github.com/yuxdigital/yux-crm/internal/infra/http/middleware"
	"github.com/yuxdigital/yux-crm/internal/infra/integration/ads"
	"github.com/yuxdigital/yux-crm/internal/infra/mail"
	"github.com/yuxdigital/yux-crm/internal/infra/queue"
	"github.com/yuxdigital/yux-crm/internal/infra/worker"
	"github.com/yuxdigital/yux-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	clientRepo := database.NewClientRepository(db)
	projectRepo := database.NewProjectRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	leadRepo := database.NewLeadRepository(db)
	userRepo := database.NewUserRepository(db)

	// 2. Gateways e Adapters
	adsClient := ads.NewClient(os.Getenv("ADS_API_TOKEN"), os.Getenv("ADS_API_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	// 3. Workers (fila de e-mails + leads parados)
	mailWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go mailWorker.Start(queue.QueueName)

	leadWorker := worker.NewLeadExpirationWorker(db)
	go leadWorker.Start(context.Background())

	// 4. UseCases
	createClientUC := usecase.NewCreateClientUseCase(clientRepo)
	updateClientUC := usecase.NewUpdateClientUseCase(clientRepo)
	importUC := usecase.NewImportClientsUseCase(clientRepo)
	exportUC := usecase.NewExportClientsUseCase(clientRepo)
	syncUC := usecase.NewSyncCampaignsUseCase(campaignRepo, adsClient)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, userRepo, producer)

	// 5. Handlers
	auth := middleware.NewAuth(os.Getenv("JWT_SECRET"))
	authHandler := handlers.NewAuthHandler(userRepo, auth)
	clientHandler := handlers.NewClientHandler(clientRepo, createClientUC, updateClientUC, importUC, exportUC)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo, syncUC)
	leadHandler := handlers.NewLeadHandler(leadRepo, createLeadUC)
	userHandler := handlers.NewUserHandler(userRepo, producer)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(middleware.Metrics)

	// rotas públicas
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/auth/login", authHandler.HandleLogin)

	// rotas autenticadas
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/me", authHandler.HandleMe)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clientHandler.HandleList)
			r.Post("/", clientHandler.HandleCreate)
			r.Get("/stats", clientHandler.HandleStats)
			r.Post("/import", clientHandler.HandleImport)
			r.Get("/export", clientHandler.HandleExport)
			r.Get("/import/template", clientHandler.HandleTemplate)
			r.Get("/{id}", clientHandler.HandleGet)
			r.Put("/{id}", clientHandler.HandleUpdate)
			r.Delete("/{id}", clientHandler.HandleDelete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.HandleList)
			r.Post("/", projectHandler.HandleCreate)
			r.Get("/{id}", projectHandler.HandleGet)
			r.Put("/{id}", projectHandler.HandleUpdate)
			r.Delete("/{id}", projectHandler.HandleDelete)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", campaignHandler.HandleList)
			r.Post("/sync", campaignHandler.HandleSync)
			r.Get("/{id}", campaignHandler.HandleGet)
			r.Put("/{id}/status", campaignHandler.HandleUpdateStatus)
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadHandler.HandleList)
			r.Post("/", leadHandler.HandleCreate)
			r.Get("/{id}", leadHandler.HandleGet)
			r.Put("/{id}", leadHandler.HandleUpdate)
			r.Put("/{id}/stage", leadHandler.HandleUpdateStage)
			r.Delete("/{id}", leadHandler.HandleDelete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.HandleList)
			r.Post("/", userHandler.HandleCreate)
			r.Get("/{id}", userHandler.HandleGet)
			r.Put("/{id}", userHandler.HandleUpdate)
			r.Delete("/{id}", userHandler.HandleDelete)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 Server YUX CRM rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
