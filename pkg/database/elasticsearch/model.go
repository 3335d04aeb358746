package elasticsearch

// BaseModel holds the document identity. Embed it (by value) in a model struct
// and implement IndexName on the model to declare the default index.
//
// The id is excluded from the document body on purpose: Elasticsearch carries
// it in _id, not in _source.
type BaseModel struct {
	ID string `json:"-"`
}

// NewBaseModel creates a BaseModel with an explicit id. Leave the id empty to
// have the engine assign one on first save.
func NewBaseModel(id string) BaseModel {
	return BaseModel{ID: id}
}

// GetID returns the document ID
func (b *BaseModel) GetID() string {
	return b.ID
}

// SetID sets the document ID
func (b *BaseModel) SetID(id string) {
	b.ID = id
}

// ResolveIndex picks the index an operation targets: an explicit override wins
// over the model default, and having neither is a configuration error.
func ResolveIndex(override, fallback string) (string, error) {
	if override != "" {
		return override, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", ErrMissingIndex
}
