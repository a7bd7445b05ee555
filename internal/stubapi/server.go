// Package stubapi содержит stub-реализацию серверного API в памяти.
// Используется интеграционными тестами и локальной разработкой клиента,
// когда настоящий сервер недоступен. Формат провода совпадает с боевым API.
package stubapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type contextKey string

const userContextKey contextKey = "stubapi.user"

// Server stub-сервер с хранилищем в памяти
type Server struct {
	store  *store
	router *mux.Router
	logger Logger
}

// NewServer создает stub-сервер с предзаполненными данными
func NewServer(logger Logger) *Server {
	s := &Server{
		store:  newStore(),
		router: mux.NewRouter(),
		logger: logger,
	}
	s.routes()
	return s
}

// Handler возвращает корневой http.Handler сервера
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Публичные маршруты
	api.HandleFunc("/users", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/users/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/users/forgot-password", s.handleForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/users/reset-password", s.handleResetPassword).Methods(http.MethodPost)
	api.HandleFunc("/salon", s.handleListSalons).Methods(http.MethodGet)
	api.HandleFunc("/salon/{salonId}", s.handleGetSalon).Methods(http.MethodGet)
	api.HandleFunc("/salon/{salonId}/working-hours", s.handleGetWorkingHours).Methods(http.MethodGet)
	api.HandleFunc("/salon/{salonId}/services", s.handleGetServices).Methods(http.MethodGet)

	// Маршруты, требующие аутентификации
	protected := api.NewRoute().Subrouter()
	protected.Use(s.authMiddleware)
	protected.HandleFunc("/users/logout", s.handleLogout).Methods(http.MethodPost)
	protected.HandleFunc("/booking", s.handleCreateBooking).Methods(http.MethodPost)
	protected.HandleFunc("/booking/customer/history", s.handleCustomerHistory).Methods(http.MethodGet)
	protected.HandleFunc("/booking/salon/{salonId}/bookings", s.handleSalonBookings).Methods(http.MethodGet)
	protected.HandleFunc("/booking/{bookingId}/cancel", s.handleCancelBooking).Methods(http.MethodPut)
	protected.HandleFunc("/booking/{bookingId}/reschedule", s.handleRescheduleBooking).Methods(http.MethodPut)
	protected.HandleFunc("/booking/{bookingId}/approve", s.handleApproveBooking).Methods(http.MethodPut)
	protected.HandleFunc("/booking/{bookingId}/reject", s.handleRejectBooking).Methods(http.MethodPut)
}

// authMiddleware проверяет bearer-токен и кладет пользователя в контекст
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondUnauthorized(w)
			return
		}

		user, ok := s.store.userByToken(token)
		if !ok {
			respondUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser извлекает пользователя из контекста запроса
func currentUser(r *http.Request) *userRecord {
	user, _ := r.Context().Value(userContextKey).(*userRecord)
	return user
}

// bearerToken извлекает токен из заголовка Authorization
func bearerToken(r *http.Request) string {
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return token
}
