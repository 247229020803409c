package seed

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/espacoviv/agendamento/internal/auth"
	"github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/domain/catalog"
	"github.com/espacoviv/agendamento/internal/models"
)

const demoPassword = "123456"

const defaultHours = "Seg a Sex 09:00-20:00, Sáb e Dom 09:00-19:00"

func Units() []models.Unit {
	return []models.Unit{
		{Code: "sp-perdizes", Name: "São Paulo - Perdizes", City: "São Paulo", State: "SP", Address: "Rua da Consolação, 123"},
		{Code: "sp-vila-clementino", Name: "São Paulo - Vila Clementino", City: "São Paulo", State: "SP", Address: "Av. Domingos de Morais, 456"},
		{Code: "sp-ingleses", Name: "São Paulo - Ingleses", City: "São Paulo", State: "SP", Address: "Rua Augusta, 789"},
		{Code: "sp-prudente", Name: "São Paulo - Prudente", City: "São Paulo", State: "SP", Address: "Av. Paulista, 1000"},
		{Code: "rj-centro", Name: "Rio de Janeiro - Centro", City: "Rio de Janeiro", State: "RJ", Address: "Av. Rio Branco, 200"},
		{Code: "rj-copacabana", Name: "Rio de Janeiro - Copacabana", City: "Rio de Janeiro", State: "RJ", Address: "Av. Atlântica, 500"},
		{Code: "bsb-sudoeste", Name: "Brasília - Sudoeste", City: "Brasília", State: "DF", Address: "SHS Quadra 6"},
		{Code: "bsb-asa-sul", Name: "Brasília - Asa Sul", City: "Brasília", State: "DF", Address: "Galeria Hotel Nacional"},
	}
}

func Services() []models.Service {
	return []models.Service{
		{Code: "shiatsu", Name: "Shiatsu", DurationMinutes: 60, Price: 120, Description: "Pressão com os dedos nos pontos de energia do corpo."},
		{Code: "relaxante", Name: "Relaxante", DurationMinutes: 60, Price: 100, Description: "Movimentos suaves para aliviar o estresse."},
		{Code: "quick-massage", Name: "Quick Massage", DurationMinutes: 15, Price: 40, Description: "Sessão rápida na cadeira, focada em costas e pescoço."},
		{Code: "terapeutica", Name: "Terapêutica", DurationMinutes: 75, Price: 150, Description: "Tratamento de tensões e dores musculares."},
		{Code: "drenagem-linfatica", Name: "Drenagem Linfática", DurationMinutes: 90, Price: 180, Description: "Estimula a circulação linfática e reduz inchaços."},
		{Code: "pedras-quentes", Name: "Pedras Quentes", DurationMinutes: 80, Price: 160, Description: "Pedras aquecidas para relaxamento profundo."},
		{Code: "ventosaterapia", Name: "Ventosaterapia", DurationMinutes: 45, Price: 80, Description: "Ventosas para liberar a musculatura."},
	}
}

type demoTherapist struct {
	name, email, cpf, phone, unit string
	specialties                   []string
}

var demoTherapists = []demoTherapist{
	{"Ana Silva", "ana@espacoviv.com", "11111111111", "(11) 99999-1111", "sp-perdizes", []string{"Shiatsu", "Relaxante"}},
	{"Maria Santos", "maria@espacoviv.com", "22222222222", "(11) 99999-2222", "sp-vila-clementino", []string{"Quick Massage", "Terapêutica"}},
	{"João Costa", "joao@espacoviv.com", "33333333333", "(21) 99999-3333", "rj-centro", []string{"Relaxante", "Pedras Quentes"}},
}

type Result struct {
	Units      int
	Services   int
	Therapists int
}

// Run inserts the reference units and services that are missing. With
// demo set it also creates the demo therapists whose e-mail is free.
func Run(
	ctx context.Context,
	cat catalog.Repository,
	accounts account.Repository,
	demo bool,
	log *zap.Logger,
) (Result, error) {
	var res Result

	units := Units()
	for i := range units {
		units[i].OpeningHours = defaultHours
		units[i].IsActive = true
	}
	n, err := cat.EnsureUnits(ctx, units)
	if err != nil {
		return res, err
	}
	res.Units = n

	services := Services()
	for i := range services {
		services[i].IsActive = true
	}
	if res.Services, err = cat.EnsureServices(ctx, services); err != nil {
		return res, err
	}

	if demo {
		if res.Therapists, err = seedDemo(ctx, accounts); err != nil {
			return res, err
		}
	}

	log.Info("seed finished",
		zap.Int("units", res.Units),
		zap.Int("services", res.Services),
		zap.Int("therapists", res.Therapists),
	)
	return res, nil
}

func seedDemo(ctx context.Context, accounts account.Repository) (int, error) {
	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, d := range demoTherapists {
		specs := make([]account.SpecialtyInput, 0, len(d.specialties))
		for _, s := range d.specialties {
			specs = append(specs, account.SpecialtyInput{Name: s})
		}
		unit := d.unit
		cpf := d.cpf

		err := accounts.CreateUser(ctx, &models.User{
			Name:           d.name,
			Email:          strings.ToLower(d.email),
			PasswordHash:   hash,
			CPF:            &cpf,
			Phone:          d.phone,
			UserType:       models.UserTypeMassagista,
			UnitPreference: &unit,
			IsAvailable:    true,
			IsActive:       true,
			Specialties:    account.BuildSpecialties(specs),
		})
		if errors.Is(err, account.ErrEmailTaken) || errors.Is(err, account.ErrCPFTaken) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
