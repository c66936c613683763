// Package problemdetails renders RFC 7807 problem responses.
package problemdetails

import "fmt"

const (
	TypeInvalidFormat      = "invalid-format"
	TypeUnauthorized       = "unauthorized"
	TypeNotFound           = "not-found"
	TypeEmptyCatalog       = "empty-catalog"
	TypeStorageUnavailable = "storage-unavailable"
	TypeRateLimitExceeded  = "rate-limit-exceeded"
	TypeInternalError      = "internal-error"
)

const typeBase = "https://link-catalog.dev/problems/"

type ProblemDetail struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail"`
	Success bool   `json:"success"`
}

func New(status int, problemType, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   fmt.Sprintf("%s%s", typeBase, problemType),
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

func (p *ProblemDetail) Error() string {
	return fmt.Sprintf("%d %s: %s", p.Status, p.Title, p.Detail)
}
