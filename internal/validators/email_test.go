package validators

import (
	"context"
	"errors"
	"net"
	"testing"
)

type fakeResolver struct {
	mx  map[string][]*net.MX
	ips map[string][]net.IPAddr
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if mx, ok := f.mx[name]; ok {
		return mx, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if ips, ok := f.ips[host]; ok {
		return ips, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainValid(t *testing.T) {
	v := NewEmailDomain(fakeResolver{
		mx:  map[string][]*net.MX{"espacoviv.com": {{Host: "mx.espacoviv.com.", Pref: 10}}},
		ips: map[string][]net.IPAddr{"only-a.com.br": {{IP: net.IPv4(10, 0, 0, 1)}}},
	}, 0)

	tests := []struct {
		email string
		want  bool
	}{
		{"ana@espacoviv.com", true},
		{"ana@EspacoViv.com", true},
		{"bia@only-a.com.br", true},
		{"joao@nowhere.invalid", false},
		{"sem-arroba", false},
		{"ana@", false},
	}

	for _, tt := range tests {
		if got := v.Valid(tt.email); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
