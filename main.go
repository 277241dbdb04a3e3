package main

import (
	"log"

	api "mailpilot-backend/cmd/api"
	analysisDelivery "mailpilot-backend/internal/analysis/delivery"
	analysisRepo "mailpilot-backend/internal/analysis/repository"
	analysisUsecase "mailpilot-backend/internal/analysis/usecase"
	messageRepo "mailpilot-backend/internal/message/repository"
	settingsDelivery "mailpilot-backend/internal/settings/delivery"
	settingsRepo "mailpilot-backend/internal/settings/repository"
	taskDelivery "mailpilot-backend/internal/task/delivery"
	taskRepo "mailpilot-backend/internal/task/repository"
	taskUsecase "mailpilot-backend/internal/task/usecase"
	usageDelivery "mailpilot-backend/internal/usage/delivery"
	usageRepo "mailpilot-backend/internal/usage/repository"
	"mailpilot-backend/pkg/config"
	"mailpilot-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize repositories (dependency injection)
	messages := messageRepo.NewGormMessageRepository(db)
	analyses := analysisRepo.NewGormAnalysisRepository(db)
	obligations := analysisRepo.NewGormObligationRepository(db)
	deadlines := analysisRepo.NewGormDeadlineRepository(db)
	contacts := analysisRepo.NewGormContactRepository(db)
	events := analysisRepo.NewGormEventRepository(db)
	attachments := analysisRepo.NewGormAttachmentRepository(db)
	tasks := taskRepo.NewGormTaskRepository(db)
	settings := settingsRepo.NewGormSettingsRepository(db)
	providers := settingsRepo.NewGormProviderSettingsRepository(db)
	profiles := settingsRepo.NewGormUserProfileRepository(db)
	usage := usageRepo.NewGormUsageRepository(db)

	// Initialize use cases
	autoTasks := taskUsecase.NewAutoTaskPipeline(tasks)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(tasks)
	analysisUsecaseInstance := analysisUsecase.NewAnalysisUsecase(
		messages, analyses, obligations, deadlines, contacts, events, attachments,
		settings, providers, profiles, usage, autoTasks, cfg,
	)

	// Start the background analysis workers
	workerPool := analysisUsecase.NewAnalysisWorkerPool(analysisUsecaseInstance, cfg.AnalysisWorkers)
	workerPool.Start()
	defer workerPool.Stop()

	// Initialize HTTP handlers
	analysisHandler := analysisDelivery.NewAnalysisHandler(analysisUsecaseInstance, analyses, workerPool)
	taskHandler := taskDelivery.NewTaskHandler(taskUsecaseInstance)
	settingsHandler := settingsDelivery.NewSettingsHandler(settings, providers, profiles)
	usageHandler := usageDelivery.NewUsageHandler(usage)

	handler := api.NewHandler(analysisHandler, taskHandler, settingsHandler, usageHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
