package checker

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/types"
)

// checkDNS probes a dns://host service by resolving its A/AAAA records.
func (c *Checker) checkDNS(ctx context.Context, parsed *url.URL) Result {
	host := parsed.Host

	if host == "" {
		host = parsed.Opaque
	}

	if host == "" {
		return Result{
			Status:       types.StatusDown,
			ErrorMessage: "no hostname in DNS probe URL",
		}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resolver := &net.Resolver{}

	start := time.Now()

	ips, err := resolver.LookupIPAddr(lookupCtx, host)

	if err != nil {
		return Result{
			Status:       types.StatusDown,
			ErrorMessage: fmt.Sprintf("failed to resolve %s: %v", host, err),
		}
	}

	if len(ips) == 0 {
		return Result{
			Status:       types.StatusDown,
			ErrorMessage: fmt.Sprintf("no records found for %s", host),
		}
	}

	return c.latencyResult(time.Since(start))
}
