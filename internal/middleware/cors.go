package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// corsOptions 允许任意来源的浏览器前端访问 API，不携带凭证。
var corsOptions = cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
	ExposedHeaders: []string{"X-Request-Id"},
	MaxAge:         300,
}

// CORS answers preflight requests and tags cross-origin responses.
var CORS = cors.Handler(corsOptions)
