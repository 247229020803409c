package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const defaultLookupTimeout = 3 * time.Second

// Resolver is the subset of *net.Resolver used by EmailDomain.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomain accepts an address whose domain has MX records or, failing
// that, resolves to an address.
type EmailDomain struct {
	resolver Resolver
	timeout  time.Duration
}

func NewEmailDomain(r Resolver, timeout time.Duration) *EmailDomain {
	if r == nil {
		r = net.DefaultResolver
	}
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &EmailDomain{resolver: r, timeout: timeout}
}

func (v *EmailDomain) Valid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))

	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	if mx, err := v.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := v.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
