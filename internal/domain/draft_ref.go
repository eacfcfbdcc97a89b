package domain

// DraftRef identifies the server record behind a wizard. A draft has no id
// until it is first persisted, so callers must handle both cases.
type DraftRef interface {
	draftRef()
}

// Unsaved is a draft that exists only in the wizard.
type Unsaved struct{}

// Saved is a draft the marketplace API has assigned an id to.
type Saved struct {
	ID ID
}

func (Unsaved) draftRef() {}
func (Saved) draftRef()   {}

// DraftID returns the id of a saved draft.
func DraftID(ref DraftRef) (ID, bool) {
	if s, ok := ref.(Saved); ok {
		return s.ID, true
	}
	return "", false
}
