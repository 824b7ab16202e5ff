package model

// Asset describes a physical or logical asset.
type Asset struct {
	identifiable
	AssetKind                AssetKind
	AssetIdentificationModel *AASReference
	BillOfMaterial           *AASReference
}

// NewAsset returns an asset instance with the given identifier.
func NewAsset(id Identifier, kind AssetKind) *Asset {
	return &Asset{identifiable: newIdentifiable(id), AssetKind: kind}
}

func (*Asset) Kind() Kind { return KindAsset }

// AssetAdministrationShell is the digital representation of one asset. It
// is a namespace over its views and concept dictionaries.
type AssetAdministrationShell struct {
	identifiable
	namespace
	Asset       AASReference
	DerivedFrom *AASReference
	// Submodels references the shell's submodels in insertion order.
	Submodels []AASReference

	conceptDictionaries *NamespaceSet[*ConceptDictionary]
	views               *NamespaceSet[*View]
}

// NewAssetAdministrationShell returns a shell for the referenced asset.
func NewAssetAdministrationShell(id Identifier, asset AASReference) *AssetAdministrationShell {
	aas := &AssetAdministrationShell{identifiable: newIdentifiable(id), Asset: asset}
	aas.conceptDictionaries = newNamespaceSet[*ConceptDictionary](aas)
	aas.views = newNamespaceSet[*View](aas)
	return aas
}

func (*AssetAdministrationShell) Kind() Kind { return KindAssetAdministrationShell }

func (a *AssetAdministrationShell) ConceptDictionaries() *NamespaceSet[*ConceptDictionary] {
	return a.conceptDictionaries
}

func (a *AssetAdministrationShell) Views() *NamespaceSet[*View] { return a.views }

// AddSubmodel appends a submodel reference unless an equal one is
// present. It reports whether the reference was added.
func (a *AssetAdministrationShell) AddSubmodel(ref AASReference) bool {
	for _, r := range a.Submodels {
		if r.Equal(ref) {
			return false
		}
	}
	a.Submodels = append(a.Submodels, ref)
	return true
}

// ConceptDescription defines the semantics of a property or other element.
type ConceptDescription struct {
	identifiable
	IsCaseOf []Reference
}

// NewConceptDescription returns an empty concept description.
func NewConceptDescription(id Identifier) *ConceptDescription {
	return &ConceptDescription{identifiable: newIdentifiable(id)}
}

func (*ConceptDescription) Kind() Kind { return KindConceptDescription }

// View selects a subset of a shell's elements.
type View struct {
	referable
	semantic
	ContainedElements []AASReference
}

// NewView returns an empty view.
func NewView(idShort string) (*View, error) {
	r, err := newReferable(idShort)
	if err != nil {
		return nil, err
	}
	return &View{referable: r}, nil
}

func (*View) Kind() Kind { return KindView }

// ConceptDictionary groups references to concept descriptions.
type ConceptDictionary struct {
	referable
	ConceptDescriptions []AASReference
}

// NewConceptDictionary returns an empty dictionary.
func NewConceptDictionary(idShort string) (*ConceptDictionary, error) {
	r, err := newReferable(idShort)
	if err != nil {
		return nil, err
	}
	return &ConceptDictionary{referable: r}, nil
}

func (*ConceptDictionary) Kind() Kind { return KindConceptDictionary }
