package model

// Identity is the authenticated caller as resolved by the identity
// provider. SubjectID is the only key the entitlement store trusts; ids
// supplied in request bodies are ignored.
type Identity struct {
	SubjectID string
	Email     string
}

func (i *Identity) IsZero() bool { return i == nil || i.SubjectID == "" }
