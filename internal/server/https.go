// internal/server/https.go
package server

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/tlycrimson/bot-website-api/internal/log"
	"golang.org/x/crypto/acme/autocert"
)

// ValidateDomain checks that domain can carry a Let's Encrypt certificate.
// Localhost, IP addresses, and malformed names are rejected.
func ValidateDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain required for HTTPS")
	}

	if strings.ToLower(domain) == "localhost" {
		return fmt.Errorf("Let's Encrypt requires a public domain, not localhost. Use a reverse proxy for local HTTPS")
	}

	if ip := net.ParseIP(domain); ip != nil {
		return fmt.Errorf("Let's Encrypt requires a domain name, not an IP address")
	}
	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		return fmt.Errorf("Let's Encrypt requires a domain name, not an IP address")
	}

	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") ||
		strings.Contains(domain, "..") {
		return fmt.Errorf("invalid domain format: %s", domain)
	}

	return nil
}

// ListenAndServeHTTPS serves the API over TLS with an automatically
// provisioned Let's Encrypt certificate, cached under certDir. A plain
// HTTP listener on :80 answers ACME challenges and redirects everything
// else to HTTPS.
func (s *Server) ListenAndServeHTTPS(domain, certDir string) error {
	if err := ValidateDomain(domain); err != nil {
		return err
	}

	s.autocertMgr = &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domain),
		Cache:      autocert.DirCache(certDir),
	}

	redirect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := "https://" + domain + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
	s.httpRedirect = &http.Server{
		Addr:    ":80",
		Handler: s.autocertMgr.HTTPHandler(redirect),
	}

	go func() {
		if err := s.httpRedirect.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP redirect listener failed", "error", err.Error())
		}
	}()

	s.httpsServer = &http.Server{
		Addr:    ":443",
		Handler: s.router,
		TLSConfig: &tls.Config{
			GetCertificate: s.autocertMgr.GetCertificate,
			NextProtos:     []string{"h2", "http/1.1"}, // Enable HTTP/2
		},
	}

	log.Info("serving HTTPS", "domain", domain, "cert_dir", certDir)
	return s.httpsServer.ListenAndServeTLS("", "")
}
