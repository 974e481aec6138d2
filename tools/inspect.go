package tools

import (
	"context"
	"crypto/tls"
	"net"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/rs/zerolog/log"

	"seo-audit-agent/seo"
)

// DomainInspection is a registration and reachability snapshot of a domain.
// Fields stay at their zero values when the underlying lookup fails, the
// probe degrades instead of erroring so a flaky whois server cannot sink a
// whole audit.
type DomainInspection struct {
	Domain        string `json:"domain"`
	IPAddress     string `json:"ip_address,omitempty"`
	HTTPSOk       bool   `json:"https_ok"`
	TLSDaysLeft   int    `json:"tls_days_left,omitempty"`
	TLSExpiryDate string `json:"tls_expiry_date,omitempty"`
	AgeDays       int    `json:"domain_age_days,omitempty"`
	RegisteredOn  string `json:"registered_on,omitempty"`
	UpdatedOn     string `json:"updated_on,omitempty"`
	ExpiresOn     string `json:"expires_on,omitempty"`
	Registrar     string `json:"registrar,omitempty"`
}

// InspectDomain resolves a domain and probes its TLS and whois records.
func (t *Tools) InspectDomain(ctx context.Context, domain string) DomainInspection {
	domain = seo.NormalizeDomain(domain)
	result := DomainInspection{Domain: domain}
	if domain == "" {
		return result
	}

	result.IPAddress = lookupIP(ctx, domain)
	result.HTTPSOk, result.TLSDaysLeft, result.TLSExpiryDate = probeTLS(ctx, domain)

	rec := lookupWhois(domain)
	if !rec.created.IsZero() {
		result.AgeDays = int(time.Since(rec.created).Hours() / 24)
		result.RegisteredOn = rec.created.Format("02/01/2006")
	}
	if !rec.updated.IsZero() {
		result.UpdatedOn = rec.updated.Format("02/01/2006")
	}
	if !rec.expires.IsZero() {
		result.ExpiresOn = rec.expires.Format("02/01/2006")
	}
	result.Registrar = rec.registrar

	log.Debug().
		Str("domain", domain).
		Str("ip", result.IPAddress).
		Bool("https", result.HTTPSOk).
		Int("age_days", result.AgeDays).
		Msg("domain inspected")

	return result
}

//
// DNS + TLS
//

func lookupIP(ctx context.Context, domain string) string {
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip", domain)
	if err != nil || len(ips) == 0 {
		return ""
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String()
		}
	}
	return ips[0].String()
}

func probeTLS(ctx context.Context, domain string) (bool, int, string) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: 5 * time.Second},
		Config:    &tls.Config{ServerName: domain},
	}
	conn, err := dialer.DialContext(ctx, "tcp", domain+":443")
	if err != nil {
		return false, 0, ""
	}
	defer conn.Close()

	certs := conn.(*tls.Conn).ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return false, 0, ""
	}

	expiry := certs[0].NotAfter
	return true, int(time.Until(expiry).Hours() / 24), expiry.Format("02/01/2006")
}

//
// WHOIS LOOKUP
//

type whoisRecord struct {
	created   time.Time
	updated   time.Time
	expires   time.Time
	registrar string
}

// whoisDateLayouts covers the formats registries actually emit.
var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

func lookupWhois(domain string) whoisRecord {
	raw, err := whois.Whois(domain)
	if err != nil {
		return whoisRecord{}
	}

	p, err := whoisparser.Parse(raw)
	if err != nil || p.Domain == nil {
		// For subdomains, retry against the registrable parent.
		parts := strings.Split(domain, ".")
		if len(parts) > 2 {
			return lookupWhois(strings.Join(parts[1:], "."))
		}
		return whoisRecord{}
	}

	rec := whoisRecord{
		created: parseWhoisDate(p.Domain.CreatedDate),
		updated: parseWhoisDate(p.Domain.UpdatedDate),
		expires: parseWhoisDate(p.Domain.ExpirationDate),
	}
	if p.Registrar != nil {
		rec.registrar = p.Registrar.Name
	}
	return rec
}

func parseWhoisDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range whoisDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
