package state

// Role distinguishes citizens from sanitary workers.
type Role string

const (
	RoleUser   Role = "user"
	RoleWorker Role = "worker"
)

// WasteType categorises the reported dump.
type WasteType string

const (
	WasteOrganic WasteType = "organic"
	WastePlastic WasteType = "plastic"
	WasteEWaste  WasteType = "e-waste"
	WasteMetal   WasteType = "metal"
	WasteGlass   WasteType = "glass"
	WasteMixed   WasteType = "mixed"
)

// Toxicity is the reporter's hazard estimate.
type Toxicity string

const (
	ToxicityLow    Toxicity = "low"
	ToxicityMedium Toxicity = "medium"
	ToxicityHigh   Toxicity = "high"
)

// Status is a complaint's position in its lifecycle. Rejected is a reserved
// state: nothing in the core transitions into it.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusVerified   Status = "verified"
	StatusInProgress Status = "in_progress"
	StatusCollected  Status = "collected"
	StatusRejected   Status = "rejected"
)

// Account is a registered credential record plus profile. The password is
// stored in plain text: a demo shortcut carried over deliberately, not a
// security design.
type Account struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	DOB      string `json:"dob,omitempty"`
}

// SessionUser is the slice of an account's identity exposed to the logged-in
// UI. Derived at login; at most one active at a time.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// Complaint is a single reported dump site.
type Complaint struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Image           string    `json:"image,omitempty"`
	CollectedImages []string  `json:"collectedImages,omitempty"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	WasteType       WasteType `json:"wasteType"`
	Toxicity        Toxicity  `json:"toxicity"`
	Verified        bool      `json:"verified"`
	Status          Status    `json:"status"`
	CreatedAt       int64     `json:"createdAt"` // unix milliseconds
	ReporterID      string    `json:"reporterId"`
	ReporterName    string    `json:"reporterName"`
}

// ComplaintDraft carries every complaint field the caller supplies; ID,
// Status and CreatedAt are computed by the store.
type ComplaintDraft struct {
	Title           string
	Description     string
	Image           string
	CollectedImages []string
	Lat             float64
	Lng             float64
	WasteType       WasteType
	Toxicity        Toxicity
	Verified        bool
	ReporterID      string
	ReporterName    string
}

// AccountPatch is a partial profile update. A non-nil field overwrites, a nil
// field leaves the stored value untouched.
type AccountPatch struct {
	Name  *string
	Email *string
	Phone *string
	DOB   *string
}
