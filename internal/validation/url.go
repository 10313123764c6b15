// Package validation checks user-supplied URLs and values before they reach
// the Paystack API.
//
// Base URL overrides must use https and may not point at private networks or
// cloud metadata endpoints. Private and loopback hosts can be allowed for
// local mocks via PAYSTACK_ALLOW_PRIVATE or SetAllowPrivate(true); metadata
// endpoints stay blocked either way.
package validation

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var allowPrivate atomic.Bool

var privateNetworks []*net.IPNet

func init() {
	v, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("PAYSTACK_ALLOW_PRIVATE")))
	allowPrivate.Store(v)

	privateCIDRs := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"100.64.0.0/10",
		"169.254.0.0/16",
		"192.0.0.0/24",
		"192.0.2.0/24",
		"198.18.0.0/15",
		"198.51.100.0/24",
		"203.0.113.0/24",
		"240.0.0.0/4",
		"fc00::/7",
		"fe80::/10",
		"ff00::/8",
		"::1/128",
		"::/128",
		"100::/64",
		"2001:db8::/32",
	}
	privateNetworks = make([]*net.IPNet, 0, len(privateCIDRs))
	for _, cidr := range privateCIDRs {
		if _, network, err := net.ParseCIDR(cidr); err == nil {
			privateNetworks = append(privateNetworks, network)
		}
	}
}

// SetAllowPrivate toggles whether private and loopback hosts are accepted.
func SetAllowPrivate(enabled bool) {
	allowPrivate.Store(enabled)
}

// AllowPrivateEnabled reports the current private-host setting.
func AllowPrivateEnabled() bool {
	return allowPrivate.Load()
}

// ValidateBaseURL checks a Paystack API base URL override. Plain http is only
// accepted for loopback hosts while private hosts are allowed.
func ValidateBaseURL(rawURL string) error {
	u, hostname, err := parseHTTPURL(rawURL)
	if err != nil {
		return err
	}
	if isCloudMetadata(hostname) {
		return fmt.Errorf("cloud metadata endpoints are not allowed")
	}

	local := isLocalhost(hostname)
	if local && !allowPrivate.Load() {
		return fmt.Errorf("localhost URLs are not allowed (set PAYSTACK_ALLOW_PRIVATE=1 for local mocks)")
	}
	if u.Scheme != "https" && !(local && allowPrivate.Load()) {
		return fmt.Errorf("base URL must use https, got %q", u.Scheme)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("base URL must not contain a query or fragment")
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return validateIPAddress(ip)
	}
	return resolveAndCheck(hostname, validateIPAddress)
}

// ValidateForwardURL checks a URL that verified webhook events are relayed
// to. Loopback hosts are always allowed so events can reach a local app.
func ValidateForwardURL(rawURL string) error {
	_, hostname, err := parseHTTPURL(rawURL)
	if err != nil {
		return err
	}
	if isCloudMetadata(hostname) {
		return fmt.Errorf("cloud metadata endpoints are not allowed")
	}
	if ip := net.ParseIP(hostname); ip != nil {
		return validateForwardIPAddress(ip)
	}
	if isLocalhost(hostname) {
		return nil
	}
	return resolveAndCheck(hostname, validateForwardIPAddress)
}

func parseHTTPURL(rawURL string) (*url.URL, string, error) {
	if rawURL == "" {
		return nil, "", fmt.Errorf("URL cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return nil, "", fmt.Errorf("URL exceeds maximum length of %d characters", MaxURLLength)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", fmt.Errorf("invalid URL scheme: only http and https are allowed, got %q", u.Scheme)
	}
	hostname := u.Hostname()
	if hostname == "" {
		return nil, "", fmt.Errorf("URL must contain a hostname")
	}
	return u, hostname, nil
}

func isLocalhost(hostname string) bool {
	h := strings.ToLower(hostname)
	switch h {
	case "localhost", "127.0.0.1", "::1", "0.0.0.0", "::":
		return true
	}
	return strings.HasSuffix(h, ".localhost")
}

func isCloudMetadata(hostname string) bool {
	h := strings.ToLower(hostname)
	switch h {
	case "169.254.169.254", "metadata.google.internal", "metadata", "instance-data", "fd00:ec2::254":
		return true
	}
	return strings.HasSuffix(h, ".metadata.google.internal")
}

func validateIPAddress(ip net.IP) error {
	if ip.String() == "169.254.169.254" {
		return fmt.Errorf("cloud metadata IP address is not allowed")
	}
	if ip.IsUnspecified() {
		return fmt.Errorf("unspecified IP addresses are not allowed")
	}
	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return fmt.Errorf("link-local IP addresses are not allowed")
	}
	if allowPrivate.Load() {
		return nil
	}
	if ip.IsLoopback() {
		return fmt.Errorf("loopback IP addresses are not allowed")
	}
	if isPrivateIP(ip) {
		return fmt.Errorf("private IP addresses are not allowed")
	}
	return nil
}

func validateForwardIPAddress(ip net.IP) error {
	if ip.String() == "169.254.169.254" {
		return fmt.Errorf("cloud metadata IP address is not allowed")
	}
	if ip.IsLoopback() || ip.IsUnspecified() {
		return nil
	}
	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return fmt.Errorf("link-local IP addresses are not allowed")
	}
	if !allowPrivate.Load() && isPrivateIP(ip) {
		return fmt.Errorf("private IP addresses are not allowed")
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// resolveAndCheck validates every address a hostname resolves to. Lookup
// failures pass so unpublished hosts can still be configured.
func resolveAndCheck(hostname string, check func(net.IP) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ips, err := net.DefaultResolver.LookupIP(ctx, "ip", hostname)
	if err != nil {
		return nil
	}
	for _, ip := range ips {
		if err := check(ip); err != nil {
			return fmt.Errorf("domain %q resolves to forbidden IP %s: %w", hostname, ip.String(), err)
		}
	}
	return nil
}
