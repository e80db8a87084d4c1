package http_handler

import (
	"context"
	"errors"
	"strconv"

	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/anthanhphan/timeshard/internal/timeshard/config"
	"github.com/anthanhphan/timeshard/internal/timeshard/port"
	"github.com/anthanhphan/timeshard/pkg/idgen"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.IDService
}

func NewServer(cfg *config.Config, service port.IDService) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)

	v1 := s.app.Group("/v1")
	v1.Get("/ids", s.handleNext)
	v1.Get("/ids/:id", s.handleParse)
	v1.Get("/info", s.handleInfo)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.HTTPAddr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

type idResponse struct {
	ID string `json:"id"`
}

type idsResponse struct {
	IDs []string `json:"ids"`
}

type parseResponse struct {
	idgen.Components
	ID       string `json:"id"`
	Datetime string `json:"datetime"`
}

type infoResponse struct {
	idgen.Info
	Summary string `json:"summary"`
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func (s *Server) sendServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, port.ErrInvalidCount), errors.Is(err, idgen.ErrInvalidPrefixPosition):
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, idgen.ErrClockMovedBack), errors.Is(err, idgen.ErrTimestampOutOfRange):
		sdklogger.Errorw("ID generation unavailable", "error", err.Error())
		return s.sendJSONError(c, fiber.StatusServiceUnavailable, err.Error())
	default:
		sdklogger.Errorw("ID request failed", "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleNext(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if raw := c.Query("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return s.sendJSONError(c, fiber.StatusBadRequest, "'count' must be an integer")
		}
		ids, err := s.service.NextIDs(ctx, count)
		if err != nil {
			return s.sendServiceError(c, err)
		}
		out := make([]string, len(ids))
		for i, id := range ids {
			out[i] = id.String()
		}
		return c.JSON(idsResponse{IDs: out})
	}

	if prefix := c.Query("prefix"); prefix != "" {
		position := -1
		if raw := c.Query("position"); raw != "" {
			p, err := strconv.Atoi(raw)
			if err != nil || p < 0 {
				return s.sendJSONError(c, fiber.StatusBadRequest, "'position' must be a non-negative integer")
			}
			position = p
		}
		rendered, err := s.service.NextPrefixed(ctx, prefix, position)
		if err != nil {
			return s.sendServiceError(c, err)
		}
		return c.JSON(idResponse{ID: rendered})
	}

	id, err := s.service.NextID(ctx)
	if err != nil {
		return s.sendServiceError(c, err)
	}
	return c.JSON(idResponse{ID: id.String()})
}

func (s *Server) handleParse(c *fiber.Ctx) error {
	raw, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "ID must be an unsigned 64-bit decimal")
	}

	components := s.service.Parse(c.UserContext(), idgen.ID(raw))
	return c.JSON(parseResponse{
		Components: components,
		ID:         components.ID.String(),
		Datetime:   components.Datetime(),
	})
}

func (s *Server) handleInfo(c *fiber.Ctx) error {
	info := s.service.Info(c.UserContext())
	return c.JSON(infoResponse{Info: info, Summary: info.String()})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	health, err := s.service.Health(c.UserContext())
	if errors.Is(err, port.ErrNodeIDConflict) {
		sdklogger.Warnw("Health check reports node ID conflict", "node_id", health.NodeID, "peers", health.Conflicts)
		return c.Status(fiber.StatusConflict).JSON(health)
	}
	if err != nil {
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(health)
}
