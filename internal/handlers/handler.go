package handlers

import (
	"log/slog"

	"codebliss/internal/config"
	"codebliss/internal/services"
)

type Handler struct {
	cfg      config.Config
	logger   *slog.Logger
	users    *services.UserService
	projects *services.ProjectService
	tokens   *services.TokenService
	audit    *services.AuditService
	qr       *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	users *services.UserService,
	projects *services.ProjectService,
	tokens *services.TokenService,
	audit *services.AuditService,
	qr *services.QRService,
) *Handler {
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		users:    users,
		projects: projects,
		tokens:   tokens,
		audit:    audit,
		qr:       qr,
	}
}
