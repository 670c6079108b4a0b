package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/MKhiriev/go-guardian/internal/utils"
)

const healthcheckFlag = "healthcheck"

// extractHealthcheckFlag removes -healthcheck (or --healthcheck) from args so
// the rest can go to the config flag set.
func extractHealthcheckFlag(args []string) ([]string, bool) {
	rest := make([]string, 0, len(args))
	found := false
	for _, arg := range args {
		if arg == "-"+healthcheckFlag || arg == "--"+healthcheckFlag {
			found = true
			continue
		}
		rest = append(rest, arg)
	}
	return rest, found
}

// healthcheckURL turns a listen address into a URL reachable from the same
// host. Wildcard hosts become the loopback address.
func healthcheckURL(address string) (string, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return "", fmt.Errorf("invalid server address %q: %w", address, err)
	}

	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}

	return "http://" + net.JoinHostPort(host, port), nil
}

// runHealthcheck probes GET /health and returns the process exit code.
func runHealthcheck(address string) int {
	return probeHealth(address, healthcheckTimeout)
}

func probeHealth(address string, timeout time.Duration) int {
	baseURL, err := healthcheckURL(address)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	resp, err := utils.NewHTTPClient(baseURL, timeout).R().Get("/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "health check failed: %v\n", err)
		return 1
	}
	if resp.StatusCode() != http.StatusOK {
		fmt.Fprintf(os.Stderr, "health check failed: %s\n", resp.Status())
		return 1
	}

	return 0
}
