package fakeapi

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	// ServiceName is reported by the info endpoint.
	ServiceName = "Customer Service REST API"
	// ServiceVersion is reported by the info endpoint.
	ServiceVersion = "1.0"

	customerIDParam = "customer_id"
	jsonContentType = "application/json"
	dateLayout      = "2006-01-02"
)

// filterOrder is the precedence of list query parameters.
var filterOrder = []string{"name", "address", "email", "phone_number", "member_since"}

// Option configures a Server.
type Option func(*Server)

// WithLogger logs every request.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore replaces the empty default store.
func WithStore(store *Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// Server serves the customer REST API from memory.
type Server struct {
	store  *Store
	logger *zap.Logger
	router chi.Router
}

// New builds the server and its routes.
func New(options ...Option) *Server {
	s := &Server{
		store:  NewStore(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.router = s.routes()
	return s
}

// Store exposes the backing store.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "The requested URL was not found on the server.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
	})

	r.Get("/", s.serviceInfo)
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		r.MethodFunc(method, "/", rootNotAllowed)
	}

	idPath := "/customers/{" + customerIDParam + ":-?[0-9]+}"
	r.Get("/customers", s.listCustomers)
	r.With(requireJSON).Post("/customers", s.createCustomer)
	r.Get(idPath, s.getCustomer)
	r.With(requireJSON).Put(idPath, s.updateCustomer)
	r.Delete(idPath, s.deleteCustomer)
	r.Put(idPath+"/suspend", s.suspendCustomer)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", ww.Status()),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func requireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Content-Type")
		if raw == "" {
			writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be "+jsonContentType)
			return
		}
		mediaType, _, err := mime.ParseMediaType(raw)
		if err != nil || mediaType != jsonContentType {
			writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be "+jsonContentType)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func rootNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "Method not allowed. Please use GET method for this endpoint.",
	})
}

func (s *Server) serviceInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    ServiceName,
		"version": ServiceVersion,
		"paths":   absoluteURL(r, "/customers"),
	})
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter Filter
	for _, field := range filterOrder {
		if value := query.Get(field); value != "" {
			filter = Filter{Field: field, Value: value}
			break
		}
	}
	if filter.Field == "member_since" {
		if _, err := time.Parse(dateLayout, filter.Value); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid member_since: %s", filter.Value))
			return
		}
	}
	writeJSON(w, http.StatusOK, s.store.List(filter))
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	in, err := decodeCustomer(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created := s.store.Create(in.apply(Customer{}))
	w.Header().Set("Location", absoluteURL(r, "/customers/"+strconv.FormatInt(created.ID, 10)))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	c, found := s.store.Find(id)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Customer with id [%d] not found", id))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	if _, found := s.store.Find(id); !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Customer with id '%d' was not found.", id))
		return
	}
	in, err := decodeCustomer(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, found := s.store.Update(id, in.apply)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Customer with id '%d' was not found.", id))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	s.store.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) suspendCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	suspended, found := s.store.Update(id, func(c Customer) Customer {
		c.Status = StatusSuspended
		return c
	})
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Customer with id '%d' was not found.", id))
		return
	}
	writeJSON(w, http.StatusOK, suspended)
}

func customerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, customerIDParam)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Customer with id [%s] not found", raw))
		return 0, false
	}
	return id, true
}

func absoluteURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}
