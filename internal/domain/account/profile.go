package account

import (
	"strings"

	"github.com/espacoviv/agendamento/internal/models"
)

const MinPasswordLength = 6

type SpecialtyInput struct {
	Name        string
	CustomPrice *float64
}

// BuildSpecialties trims names, drops blanks and duplicates, and keeps
// the given order as Position.
func BuildSpecialties(in []SpecialtyInput) []models.TherapistSpecialty {
	out := make([]models.TherapistSpecialty, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, models.TherapistSpecialty{
			Name:        name,
			Position:    len(out),
			CustomPrice: s.CustomPrice,
		})
	}
	return out
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeCPF keeps only the digits; an empty result means no CPF.
func NormalizeCPF(cpf string) *string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	s := b.String()
	return &s
}
