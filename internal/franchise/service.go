// Package franchise captures franchise leads from the landing page form.
package franchise

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/zafran-house/ordering/internal/supabase"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Application is one franchise lead.
type Application struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Message string `json:"message,omitempty"`
}

// ValidationError reports per-field validation failures. These are caught
// before any network call is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return "franchise: invalid fields: " + strings.Join(keys, ", ")
}

// Service submits franchise applications.
type Service struct {
	db *supabase.Client
}

// New creates a franchise service.
func New(db *supabase.Client) *Service {
	return &Service{db: db}
}

// Submit validates the application and inserts it. A single insert; no
// read-back beyond success or failure.
func (s *Service) Submit(ctx context.Context, app Application) error {
	app.Name = strings.TrimSpace(app.Name)
	app.Email = strings.TrimSpace(app.Email)
	app.Phone = strings.TrimSpace(app.Phone)
	app.City = strings.TrimSpace(app.City)
	app.Message = strings.TrimSpace(app.Message)

	if err := validate(app); err != nil {
		return err
	}

	_, err := s.db.From("franchise_applications").Insert(app).Execute(ctx)
	if err != nil {
		return fmt.Errorf("submit franchise application: %w", err)
	}
	return nil
}

func validate(app Application) error {
	fields := make(map[string]string)
	if app.Name == "" {
		fields["name"] = "name is required"
	}
	if app.Email == "" {
		fields["email"] = "email is required"
	} else if !emailPattern.MatchString(app.Email) {
		fields["email"] = "email is not valid"
	}
	if app.Phone == "" {
		fields["phone"] = "phone is required"
	}
	if app.City == "" {
		fields["city"] = "city is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
