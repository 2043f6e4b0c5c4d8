package dto

// AuditEntryResponse represents one audit record in API responses
type AuditEntryResponse struct {
	ID            string         `json:"id"`
	ActorID       uint64         `json:"actorId,omitempty"`
	ActorType     string         `json:"actorType"`
	Action        string         `json:"action"`
	ResourceType  string         `json:"resourceType"`
	ResourceID    string         `json:"resourceId,omitempty"`
	Outcome       string         `json:"outcome"`
	Details       map[string]any `json:"details,omitempty"`
	CorrelationID string         `json:"correlationId,omitempty"`
	CreatedAt     string         `json:"createdAt"`
}

// AuditListResponse represents an audit query result page
type AuditListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}
