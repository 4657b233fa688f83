// Package models defines data structures shared by the docsctl client and dashboard.
package models

// Document status values reported by the document service.
// Anything other than StatusPending means the document has been embedded.
const (
	StatusPending = "PENDING"
)

// Document mirrors a document record owned by the remote service.
// The client never originates ids or statuses; it only reflects what the
// service returned on the last successful fetch.
type Document struct {
	ID        string `json:"id"`
	OrgID     string `json:"orgId"`
	FileName  string `json:"fileName"`
	URL       string `json:"url"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// Trained reports whether the service has embedded the document.
func (d Document) Trained() bool {
	return d.Status != StatusPending
}

// DocumentListResponse is the envelope returned by GET /documents.
type DocumentListResponse struct {
	Data []Document `json:"data"`
}
