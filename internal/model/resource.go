package model

// Owned is implemented by every resource guarded by owner checks.
// OwnedBy returns the stored owner reference, whatever the column is called.
type Owned interface {
	OwnedBy() string
}

// Payload is a free-form JSON object stored alongside a resource.
type Payload map[string]any

func orEmpty(p Payload) Payload {
	if p == nil {
		return Payload{}
	}
	return p
}
