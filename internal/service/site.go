// File: internal/service/site.go
package service

import "os"

// SiteURL is the externally visible base URL used in emails and OAuth
// redirect URIs.
func SiteURL() string {
	if v := os.Getenv("SITE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}
