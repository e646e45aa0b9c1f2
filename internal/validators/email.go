package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

type resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// EmailDomainChecker reports whether the domain of an address resolves to a
// mail exchanger or, failing that, to any host.
type EmailDomainChecker struct {
	r resolver
}

func NewEmailDomainChecker() *EmailDomainChecker {
	return &EmailDomainChecker{r: net.DefaultResolver}
}

func (c *EmailDomainChecker) Valid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	if mx, err := c.r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if hosts, err := c.r.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return true
	}
	return false
}
