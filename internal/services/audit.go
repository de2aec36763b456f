package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"codebliss/internal/models"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

const auditBufferSize = 100

// AuditService records account and project actions off the request path.
// Entries are enriched (browser, OS, country, masked IP) by the worker
// started with Start; when the buffer is full new entries are dropped.
type AuditService struct {
	db      *gorm.DB
	logger  *slog.Logger
	geoIP   *GeoIPService
	entries chan models.AuditLog
}

func NewAuditService(db *gorm.DB, logger *slog.Logger, geoIP *GeoIPService) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		geoIP:   geoIP,
		entries: make(chan models.AuditLog, auditBufferSize),
	}
}

func (s *AuditService) Start(ctx context.Context) {
	s.logger.Info("Audit worker starting")
	for {
		select {
		case entry := <-s.entries:
			s.enrich(&entry)

			if err := s.db.Create(&entry).Error; err != nil {
				s.logger.Error("Failed to write audit log", "action", entry.Action, "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Audit worker stopping")
			return
		}
	}
}

func (s *AuditService) LogAction(userID *string, action, entityID string, details interface{}, ip, userAgent string) {
	detailBytes, _ := json.Marshal(details)

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		Details:   string(detailBytes),
		IPAddress: ip,
		UserAgent: userAgent,
		Timestamp: time.Now(),
	}

	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("Audit channel full, dropping entry", "action", action)
	}
}

func (s *AuditService) enrich(entry *models.AuditLog) {
	if entry.UserAgent != "" {
		ua := user_agent.New(entry.UserAgent)
		name, version := ua.Browser()
		entry.Browser = strings.TrimSpace(name + " " + version)
		entry.OS = ua.OS()
	}

	entry.Country = "Unknown"
	if s.geoIP != nil {
		entry.Country = s.geoIP.GetCountry(entry.IPAddress)
	}

	entry.IPAddress = maskIP(entry.IPAddress)
}

// maskIP zeroes the last IPv4 octet and hides IPv6 addresses entirely.
func maskIP(ip string) string {
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == '.' {
			return ip[:i] + ".0"
		}
		if ip[i] == ':' {
			return "IPv6 (Masked)"
		}
	}
	return ip
}
