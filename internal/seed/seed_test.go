package seed

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/espacoviv/agendamento/internal/infra/memory"
)

func TestRunIsRepeatable(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	res, err := Run(ctx, s, s, true, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if res.Units != 8 || res.Services != 7 || res.Therapists != 3 {
		t.Errorf("first run = %+v", res)
	}

	res, err = Run(ctx, s, s, true, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if res != (Result{}) {
		t.Errorf("second run created %+v", res)
	}

	units, _ := s.ListUnits(ctx)
	if len(units) != 8 || units[0].Code != "bsb-asa-sul" {
		t.Errorf("units = %d, first %s", len(units), units[0].Code)
	}
	therapists, _ := s.ListTherapistsByUnit(ctx, "sp-perdizes")
	if len(therapists) != 1 || therapists[0].Name != "Ana Silva" {
		t.Errorf("perdizes therapists = %+v", therapists)
	}
}

func TestRunWithoutDemo(t *testing.T) {
	s := memory.New()
	res, err := Run(context.Background(), s, s, false, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if res.Therapists != 0 {
		t.Errorf("demo therapists created: %d", res.Therapists)
	}
}
