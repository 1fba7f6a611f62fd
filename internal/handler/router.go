package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	resourceHandler "github.com/zhouzirui/moodchat/backend/internal/handler/resource"
	"github.com/zhouzirui/moodchat/backend/internal/handler/session"
	"github.com/zhouzirui/moodchat/backend/internal/handler/stream"
	"github.com/zhouzirui/moodchat/backend/internal/handler/ws"
	middlewarePkg "github.com/zhouzirui/moodchat/backend/internal/middleware"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	chatService "github.com/zhouzirui/moodchat/backend/internal/service/chat"
	"github.com/zhouzirui/moodchat/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. locale selects the crisis
// notice attached to flagged turns; a store without any notice is rejected.
func NewRouter(chatSvc *chatService.Service, resources resource.Store, locale string) (http.Handler, error) {
	notice, ok := resource.Resolve(resources, locale)
	if !ok {
		return nil, fmt.Errorf("%w for locale %q", resource.ErrNoNotice, locale)
	}
	if err := notice.Validate(); err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": len(chatSvc.ListSessions(r.Context())),
		})
	})

	r.Route("/api", func(api chi.Router) {
		resourceHandler.New(resources, locale).RegisterRoutes(api)
		session.New(chatSvc, notice).RegisterRoutes(api)
		stream.New(chatSvc, notice).RegisterRoutes(api)
		ws.New(chatSvc, notice).RegisterRoutes(api)
	})

	return r, nil
}
