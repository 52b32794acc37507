package presentation

const (
	TTag      = "t"
	AuthKey   = "Authorization"
	TypeKey   = "Content-Type"
	XTag      = "x"
	ExpTag    = "expiration"
	PK        = "pk"
	IDParam   = "id"
	ServerTag = "server"
	ReasonTag = "X-Reason"

	UploadAction = "upload"
	GetAction    = "get"
	DeleteAction = "delete"

	// AuthEventKind is the Nostr event kind carried in the Authorization header.
	AuthEventKind = 24242
)
