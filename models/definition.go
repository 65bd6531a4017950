package models

// DefinitionKind distinguishes what a definition names.
type DefinitionKind string

const (
	DefinitionKindTag     DefinitionKind = "tag"
	DefinitionKindFeature DefinitionKind = "feature"
)

// ValidDefinitionKinds returns the accepted kind names.
func ValidDefinitionKinds() []string {
	return []string{string(DefinitionKindTag), string(DefinitionKindFeature)}
}

// IsValidDefinitionKind reports whether k names a known kind.
func IsValidDefinitionKind(k DefinitionKind) bool {
	return k == DefinitionKindTag || k == DefinitionKindFeature
}

// Definition is a named glossary entry describing a tag or feature used
// across task contexts. Names are unique within the definitions document;
// tag definitions must use legal tag names.
type Definition struct {
	Name        string         `json:"name" validate:"required,min=1,max=128"`
	Kind        DefinitionKind `json:"kind" validate:"required,oneof=tag feature"`
	Description string         `json:"description"`
	Created     string         `json:"created"`
	Updated     string         `json:"updated"`
}

// NewDefinition builds a definition with fresh timestamps.
func NewDefinition(name string, kind DefinitionKind, description string) Definition {
	now := NowTimestamp()
	return Definition{
		Name:        name,
		Kind:        kind,
		Description: description,
		Created:     now,
		Updated:     now,
	}
}

// DefinitionsDocument is the stored shape of the definitions file.
type DefinitionsDocument struct {
	Definitions []Definition `json:"definitions"`
}

// Find returns the definition with the given name, or nil.
func (d *DefinitionsDocument) Find(name string) *Definition {
	for i := range d.Definitions {
		if d.Definitions[i].Name == name {
			return &d.Definitions[i]
		}
	}
	return nil
}

// Remove deletes the definition with the given name. Returns false when
// no definition matched.
func (d *DefinitionsDocument) Remove(name string) bool {
	for i := range d.Definitions {
		if d.Definitions[i].Name == name {
			d.Definitions = append(d.Definitions[:i], d.Definitions[i+1:]...)
			return true
		}
	}
	return false
}
