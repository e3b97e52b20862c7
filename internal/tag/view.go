package tag

// ViewKind discriminates what a viewer is allowed to see for a scanned tag.
type ViewKind string

const (
	// KindNotFound means the token matched no profile. Terminal; the viewer
	// can only go back.
	KindNotFound ViewKind = "not_found"
	// KindGuest is shown to unauthenticated viewers: masked numbers, no call
	// action, and a prompt to log in.
	KindGuest ViewKind = "guest"
	// KindOwnerAccess is shown to any authenticated viewer: unmasked,
	// callable numbers.
	KindOwnerAccess ViewKind = "owner_access"
)

// View is the resolved, policy-filtered presentation of a scanned tag. The
// emergency number is only ever populated when the owner opted in, regardless
// of the viewer's session state.
type View struct {
	Kind            ViewKind `json:"kind"`
	FullName        string   `json:"fullName,omitempty"`
	ContactNumber   string   `json:"contactNumber,omitempty"`
	EmergencyNumber string   `json:"emergencyNumber,omitempty"`
	Callable        bool     `json:"callable"`
}
