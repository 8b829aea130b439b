package api

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Victor-armando18/promo-cart/internal/domain"
	"github.com/Victor-armando18/promo-cart/internal/interfaces"
	"github.com/Victor-armando18/promo-cart/internal/metrics"
)

// Server exposes one cart session over HTTP. The cart itself is not safe for
// concurrent use, so every handler that touches it holds mu.
type Server struct {
	mu      sync.Mutex
	cart    interfaces.CartFacade
	catalog interfaces.CatalogRepository
	metrics *metrics.ServerMetrics
	logger  *zap.Logger
}

func NewServer(cart interfaces.CartFacade, catalog interfaces.CatalogRepository, m *metrics.ServerMetrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cart: cart, catalog: catalog, metrics: m, logger: logger}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/products", s.handleListProducts, s.observe("products"))
	e.GET("/cart", s.handleGetCart, s.observe("cart"))
	e.POST("/cart/items/:sku", s.handleAddItem, s.observe("add_item"))
	e.DELETE("/cart/items/:sku", s.handleRemoveItem, s.observe("remove_item"))
	e.POST("/cart/checkout", s.handleCheckout, s.observe("checkout"))
	e.DELETE("/cart", s.handleClear, s.observe("clear"))
}

type errorResponse struct {
	Error string `json:"error"`
	SKU   string `json:"sku,omitempty"`
}

func (s *Server) handleListProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.catalog.List())
}

func (s *Server) handleGetCart(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.cart.Lines())
}

func (s *Server) handleAddItem(c echo.Context) error {
	qty, err := quantity(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sku := c.Param("sku")
	if err := s.cart.AddItems(sku, qty); err != nil {
		return s.domainError(c, err)
	}
	return c.JSON(http.StatusCreated, s.cart.Lines())
}

func (s *Server) handleRemoveItem(c echo.Context) error {
	qty, err := quantity(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sku := c.Param("sku")
	if err := s.cart.RemoveItems(sku, qty); err != nil {
		return s.domainError(c, err)
	}
	return c.JSON(http.StatusOK, s.cart.Lines())
}

func (s *Server) handleCheckout(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	receipt, err := s.cart.CheckoutReceipt(c.Request().Context())
	if err != nil {
		s.logger.Warn("receipt incomplete", zap.Error(err))
	}
	return c.JSON(http.StatusOK, receipt)
}

func (s *Server) handleClear(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.ClearCart()
	return c.NoContent(http.StatusNoContent)
}

// quantity reads the optional ?qty= parameter.
func quantity(c echo.Context) (int, error) {
	raw := c.QueryParam("qty")
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("qty must be a positive integer")
	}
	return n, nil
}

func (s *Server) domainError(c echo.Context, err error) error {
	resp := errorResponse{Error: err.Error()}
	var de *domain.Error
	if errors.As(err, &de) {
		resp.SKU = de.SKU
	}
	return c.JSON(StatusFor(err), resp)
}

// StatusFor maps a cart error onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrItemNotInCart):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOutOfStock):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrLockContention):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) observe(handler string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if s.metrics != nil {
				status := c.Response().Status
				s.metrics.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
				s.metrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
			}
			return err
		}
	}
}
