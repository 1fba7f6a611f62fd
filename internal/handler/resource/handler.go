package resource

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	"github.com/zhouzirui/moodchat/backend/pkg/utils"
)

// Handler 危机资源的HTTP处理器
type Handler struct {
	store  resource.Store
	locale string
}

// New 创建资源处理器，locale 为默认展示的地区
func New(store resource.Store, locale string) *Handler {
	return &Handler{
		store:  store,
		locale: locale,
	}
}

// RegisterRoutes 注册资源相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/resources", h.handleGetResources)
	r.Get("/resources/all", h.handleListResources)
}

// handleGetResources 返回配置地区（或 ?locale= 指定地区）的危机资源
func (h *Handler) handleGetResources(w http.ResponseWriter, r *http.Request) {
	locale := h.locale
	if q := r.URL.Query().Get("locale"); q != "" {
		locale = q
	}

	notice, ok := resource.Resolve(h.store, locale)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "no crisis resources configured")
		return
	}
	utils.RespondJSON(w, http.StatusOK, notice)
}

func (h *Handler) handleListResources(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}
