package staging

// Staged record shapes: the connector-neutral wire format of one exported
// record per NDJSON line. Every record carries the origin system's
// external identifier; the rest is whatever its entity type requires.
// Unknown origin fields are dropped at decode, not errors.

type GroupRecord struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type OrganizationRecord struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Domain     string `json:"domain,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// CustomerRecord doubles for staff: records with Staff=true additionally
// materialize a User row with the given role.
type CustomerRecord struct {
	ExternalID             string `json:"external_id"`
	Name                   string `json:"name"`
	Email                  string `json:"email,omitempty"`
	Phone                  string `json:"phone,omitempty"`
	OrganizationExternalID string `json:"organization_external_id,omitempty"`
	Staff                  bool   `json:"staff,omitempty"`
	Role                   string `json:"role,omitempty"`
	GroupExternalID        string `json:"group_external_id,omitempty"`
	CreatedAt              string `json:"created_at,omitempty"`
	UpdatedAt              string `json:"updated_at,omitempty"`
}

type BrandRecord struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Subdomain  string `json:"subdomain,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type TicketFormRecord struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Position   int    `json:"position,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type CustomFieldRecord struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	FieldType  string `json:"field_type,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type ViewRecord struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Definition string `json:"definition,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type SLAPolicyRecord struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Definition string `json:"definition,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type TicketRecord struct {
	ExternalID             string   `json:"external_id"`
	Subject                string   `json:"subject"`
	Description            string   `json:"description,omitempty"`
	Status                 string   `json:"status,omitempty"`
	Priority               string   `json:"priority,omitempty"`
	RequesterExternalID    string   `json:"requester_external_id"`
	AssigneeExternalID     string   `json:"assignee_external_id,omitempty"`
	GroupExternalID        string   `json:"group_external_id,omitempty"`
	BrandExternalID        string   `json:"brand_external_id,omitempty"`
	FormExternalID         string   `json:"form_external_id,omitempty"`
	OrganizationExternalID string   `json:"organization_external_id,omitempty"`
	Tags                   []string `json:"tags,omitempty"`
	CreatedAt              string   `json:"created_at,omitempty"`
	UpdatedAt              string   `json:"updated_at,omitempty"`
}

type AttachmentRecord struct {
	ExternalID  string `json:"external_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
	URL         string `json:"url,omitempty"`
}

// MessageRecord.OriginType decides visibility: "note" ingests as an
// internal message, anything else as public.
type MessageRecord struct {
	ExternalID       string             `json:"external_id"`
	TicketExternalID string             `json:"ticket_external_id"`
	AuthorExternalID string             `json:"author_external_id,omitempty"`
	OriginType       string             `json:"origin_type,omitempty"`
	Body             string             `json:"body,omitempty"`
	Attachments      []AttachmentRecord `json:"attachments,omitempty"`
	CreatedAt        string             `json:"created_at,omitempty"`
	UpdatedAt        string             `json:"updated_at,omitempty"`
}

type AuditEventRecord struct {
	ExternalID       string `json:"external_id"`
	TicketExternalID string `json:"ticket_external_id"`
	ActorExternalID  string `json:"actor_external_id,omitempty"`
	Action           string `json:"action"`
	Detail           string `json:"detail,omitempty"`
	OccurredAt       string `json:"occurred_at,omitempty"`
}

type CsatRatingRecord struct {
	ExternalID       string `json:"external_id"`
	TicketExternalID string `json:"ticket_external_id"`
	Score            int    `json:"score"`
	Comment          string `json:"comment,omitempty"`
	RatedAt          string `json:"rated_at,omitempty"`
}

type TimeEntryRecord struct {
	ExternalID       string `json:"external_id"`
	TicketExternalID string `json:"ticket_external_id"`
	AgentExternalID  string `json:"agent_external_id,omitempty"`
	Minutes          int    `json:"minutes"`
	Note             string `json:"note,omitempty"`
	LoggedAt         string `json:"logged_at,omitempty"`
}

type KBArticleRecord struct {
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
	Body       string `json:"body,omitempty"`
	State      string `json:"state,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type RuleRecord struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Definition string `json:"definition,omitempty"`
	Active     *bool  `json:"active,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}
