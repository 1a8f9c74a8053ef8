// Package api is the request/response pipeline between the client and the
// CreatorGenius backend. It attaches the stored bearer credential to every
// outbound call, normalizes every failure into *APIError, and reports
// credential rejections to the session layer.
package api

import (
	"context"

	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/models"
)

// Client is the surface of the backend consumed by the rest of the client.
//
// All methods honor context cancellation. Failures are always *APIError
// values also matchable against the common sentinels via errors.Is.
type Client interface {
	// Auth.
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) (string, error)
	Me(ctx context.Context) (*models.UserProfile, error)

	// Ideation.
	GenerateIdeas(ctx context.Context, topic, audience string) ([]models.Idea, error)
	SavedIdeas(ctx context.Context) ([]models.Idea, error)

	// Scripts.
	GenerateScript(ctx context.Context, ideaID string) (*models.Script, error)
	ListScripts(ctx context.Context) ([]models.Script, error)

	// SEO.
	AnalyzeSEO(ctx context.Context, title, description string) (*models.SEOReport, error)

	// Calendar.
	CalendarEvents(ctx context.Context) ([]models.CalendarEvent, error)
	ScheduleEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error)
}
