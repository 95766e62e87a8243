package services

import (
	"context"

	"gorm.io/gorm"

	"buildxpert/internal/config"
	"buildxpert/internal/email"
	"buildxpert/internal/logger"
	"buildxpert/internal/repositories"
	"buildxpert/internal/storage"
)

// ServiceContainer wires every service to its repositories once at
// startup.
type ServiceContainer struct {
	Auth      *AuthService
	Job       *JobService
	Message   *MessageService
	Contact   *ContactService
	Bounce    *BounceService
	Template  *TemplateService
	Dashboard *DashboardService
	Upload    *UploadService
	Sender    *email.Sender
}

func NewServiceContainer(db *gorm.DB, cfg *config.Config) (*ServiceContainer, error) {
	users := repositories.NewUserRepository(db)
	jobs := repositories.NewJobRepository(db)
	messages := repositories.NewMessageRepository(db)
	contacts := repositories.NewContactRepository(db)
	bounces := repositories.NewBounceRepository(db)
	templates := repositories.NewTemplateRepository(db)
	uploads := repositories.NewUploadRepository(db)

	provider, err := email.NewProviderChain(cfg.Email)
	if err != nil {
		return nil, err
	}
	sender := email.NewSender(provider, bounces, templates)

	store, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, err
	}

	var verifier TokenVerifier
	if cfg.OAuth.GoogleClientID != "" {
		gv, err := NewGoogleVerifier(context.Background(), cfg.OAuth)
		if err != nil {
			// Keep password login working when Google discovery is
			// unreachable at boot.
			logger.Warn("google oidc discovery failed, google login disabled", "error", err)
		} else {
			verifier = gv
		}
	}

	return &ServiceContainer{
		Auth:      NewAuthService(users, verifier, sender),
		Job:       NewJobService(jobs, uploads, users, sender),
		Message:   NewMessageService(messages, jobs, users, sender),
		Contact:   NewContactService(contacts, sender, cfg.Email.AdminEmail),
		Bounce:    NewBounceService(bounces),
		Template:  NewTemplateService(templates),
		Dashboard: NewDashboardService(users, jobs, messages, contacts, bounces),
		Upload:    NewUploadService(uploads, store, cfg.Upload),
		Sender:    sender,
	}, nil
}
