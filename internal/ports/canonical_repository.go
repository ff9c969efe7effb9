package ports

import "context"

// Canonical entity shapes as seen by the usecase layer. Save methods
// insert or update by primary key, preserving created_at on update, so
// the ingestion engine's mapping lookup alone decides row identity.

type Group struct {
	GroupID     string
	WorkspaceID string
	Name        string
	CreatedAt   string
	UpdatedAt   string
}

type Organization struct {
	OrganizationID string
	WorkspaceID    string
	Name           string
	Domain         string
	Notes          string
	CreatedAt      string
	UpdatedAt      string
}

type Customer struct {
	CustomerID     string
	WorkspaceID    string
	OrganizationID *string
	Name           string
	Email          string
	Phone          string
	CreatedAt      string
	UpdatedAt      string
}

type User struct {
	UserID      string
	WorkspaceID string
	GroupID     *string
	Name        string
	Email       string
	Role        string
	CreatedAt   string
	UpdatedAt   string
}

type Brand struct {
	BrandID     string
	WorkspaceID string
	Name        string
	Subdomain   string
	CreatedAt   string
	UpdatedAt   string
}

type TicketForm struct {
	TicketFormID string
	WorkspaceID  string
	Name         string
	Position     int
	CreatedAt    string
	UpdatedAt    string
}

type CustomField struct {
	CustomFieldID string
	WorkspaceID   string
	Name          string
	FieldType     string
	CreatedAt     string
	UpdatedAt     string
}

type View struct {
	ViewID      string
	WorkspaceID string
	Name        string
	Definition  string
	CreatedAt   string
	UpdatedAt   string
}

type SLAPolicy struct {
	SLAPolicyID string
	WorkspaceID string
	Name        string
	Definition  string
	CreatedAt   string
	UpdatedAt   string
}

type Ticket struct {
	TicketID       string
	WorkspaceID    string
	Subject        string
	Description    string
	Status         string
	Priority       string
	RequesterID    string
	AssigneeID     *string
	GroupID        *string
	BrandID        *string
	TicketFormID   *string
	OrganizationID *string
	CreatedAt      string
	UpdatedAt      string
}

type Conversation struct {
	ConversationID string
	TicketID       string
	CreatedAt      string
}

type Message struct {
	MessageID      string
	ConversationID string
	AuthorKind     string
	AuthorID       *string
	Visibility     string
	Body           string
	CreatedAt      string
	UpdatedAt      string
}

type Attachment struct {
	AttachmentID string
	MessageID    string
	FileName     string
	ContentType  string
	SizeBytes    int64
	URL          string
	CreatedAt    string
}

type AuditEvent struct {
	AuditEventID string
	TicketID     string
	ActorID      *string
	Action       string
	Detail       string
	OccurredAt   string
}

type CsatRating struct {
	CsatRatingID string
	TicketID     string
	Score        int
	Comment      string
	RatedAt      string
}

type TimeEntry struct {
	TimeEntryID string
	TicketID    string
	AgentID     *string
	Minutes     int
	Note        string
	LoggedAt    string
}

type KBArticle struct {
	KBArticleID string
	WorkspaceID string
	Title       string
	Body        string
	State       string
	CreatedAt   string
	UpdatedAt   string
}

type Rule struct {
	RuleID      string
	WorkspaceID string
	Name        string
	Definition  string
	Active      bool
	CreatedAt   string
	UpdatedAt   string
}

type CanonicalRepository interface {
	SaveGroup(ctx context.Context, row Group) error
	SaveOrganization(ctx context.Context, row Organization) error
	SaveCustomer(ctx context.Context, row Customer) error
	SaveUser(ctx context.Context, row User) error
	SaveBrand(ctx context.Context, row Brand) error
	SaveTicketForm(ctx context.Context, row TicketForm) error
	SaveCustomField(ctx context.Context, row CustomField) error
	SaveView(ctx context.Context, row View) error
	SaveSLAPolicy(ctx context.Context, row SLAPolicy) error
	SaveTicket(ctx context.Context, row Ticket) error
	SaveConversation(ctx context.Context, row Conversation) error
	SaveMessage(ctx context.Context, row Message) error
	SaveAttachment(ctx context.Context, row Attachment) error
	SaveAuditEvent(ctx context.Context, row AuditEvent) error
	SaveCsatRating(ctx context.Context, row CsatRating) error
	SaveTimeEntry(ctx context.Context, row TimeEntry) error
	SaveKBArticle(ctx context.Context, row KBArticle) error
	SaveRule(ctx context.Context, row Rule) error

	// EnsureTag resolves a workspace-scoped tag by name, creating it when
	// absent, and returns its internal ID.
	EnsureTag(ctx context.Context, workspaceID string, name string, createdAt string) (string, error)
	// TagTicket inserts the join row; duplicate joins are no-ops.
	TagTicket(ctx context.Context, ticketID string, tagID string) error

	GetTicket(ctx context.Context, ticketID string) (Ticket, bool, error)
	TicketsUpdatedSince(ctx context.Context, workspaceID string, since string) ([]Ticket, error)
	CountTickets(ctx context.Context, workspaceID string) (int64, error)
}
