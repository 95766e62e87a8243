package handlers

import (
	"buildxpert/internal/services"
	"buildxpert/ws"
)

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Auth      *AuthHandler
	Job       *JobHandler
	Message   *MessageHandler
	Contact   *ContactHandler
	Bounce    *BounceHandler
	Template  *TemplateHandler
	Dashboard *DashboardHandler
	File      *FileHandler
	WS        *ws.Handler
}

func NewAppHandlers(sc *services.ServiceContainer, wsManager *ws.Manager, frontendOrigin string) *AppHandlers {
	base := NewBaseHandler()

	return &AppHandlers{
		Auth:      NewAuthHandler(base, sc.Auth),
		Job:       NewJobHandler(base, sc.Job),
		Message:   NewMessageHandler(base, sc.Message),
		Contact:   NewContactHandler(base, sc.Contact),
		Bounce:    NewBounceHandler(base, sc.Bounce),
		Template:  NewTemplateHandler(base, sc.Template),
		Dashboard: NewDashboardHandler(base, sc.Dashboard),
		File:      NewFileHandler(base, sc.Upload),
		WS:        ws.NewHandler(wsManager, frontendOrigin),
	}
}
