// Package leads records the interest registrations left on the landing page
// and lets the CMS operator follow them up.
package leads

import (
	"context"
	"strings"

	"github.com/debemdeboas/oremos-juntos/internal/repository"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog"
)

var leadsLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	leadsLogger = l
}

// Registration is what a visitor submits in the registration modal.
type Registration struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Normalize trims both fields and lowercases the email.
func (r Registration) Normalize() Registration {
	return Registration{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.ToLower(strings.TrimSpace(r.Email)),
	}
}

func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 120)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.EmailFormat),
	)
}

type Service struct {
	repo repository.LeadRepository
}

func NewService(repo repository.LeadRepository) *Service {
	return &Service{repo: repo}
}

// Register validates reg and stores it. Validation failures come back as
// validation.Errors keyed by json field name.
func (s *Service) Register(ctx context.Context, reg Registration) (repository.Lead, error) {
	reg = reg.Normalize()
	if err := reg.Validate(); err != nil {
		return repository.Lead{}, err
	}

	lead, err := s.repo.Insert(ctx, reg.Name, reg.Email)
	if err != nil {
		return repository.Lead{}, err
	}
	leadsLogger.Info().Str("lead_id", lead.ID).Msg("New registration")
	return lead, nil
}

func (s *Service) List(ctx context.Context) ([]repository.Lead, error) {
	return s.repo.List(ctx)
}

func (s *Service) SetContacted(ctx context.Context, id string, contacted bool) error {
	return s.repo.SetContacted(ctx, id, contacted)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
