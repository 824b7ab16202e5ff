package model

// Kind identifies a meta-model class. Every graph object reports its most
// specific Kind; abstract kinds exist so that expected reference targets
// can name a family of classes (e.g. any SubmodelElement).
type Kind int

const (
	KindInvalid Kind = iota

	KindReferable
	KindIdentifiable

	KindAsset
	KindAssetAdministrationShell
	KindConceptDescription
	KindSubmodel

	KindView
	KindConceptDictionary

	KindSubmodelElement
	KindDataElement
	KindProperty
	KindMultiLanguageProperty
	KindRange
	KindBlob
	KindFile
	KindReferenceElement
	KindRelationshipElement
	KindAnnotatedRelationshipElement
	KindOperation
	KindCapability
	KindEntity
	KindEvent
	KindBasicEvent
	KindSubmodelElementCollection
	KindSubmodelElementCollectionOrdered
	KindSubmodelElementCollectionUnordered

	// Non-referable classes.
	KindConstraint
	KindQualifier
	KindFormula
	KindOperationVariable
)

type kindInfo struct {
	name     string
	parent   Kind
	abstract bool
}

var kinds = map[Kind]kindInfo{
	KindReferable:                          {"Referable", KindInvalid, true},
	KindIdentifiable:                       {"Identifiable", KindReferable, true},
	KindAsset:                              {"Asset", KindIdentifiable, false},
	KindAssetAdministrationShell:           {"AssetAdministrationShell", KindIdentifiable, false},
	KindConceptDescription:                 {"ConceptDescription", KindIdentifiable, false},
	KindSubmodel:                           {"Submodel", KindIdentifiable, false},
	KindView:                               {"View", KindReferable, false},
	KindConceptDictionary:                  {"ConceptDictionary", KindReferable, false},
	KindSubmodelElement:                    {"SubmodelElement", KindReferable, true},
	KindDataElement:                        {"DataElement", KindSubmodelElement, true},
	KindProperty:                           {"Property", KindDataElement, false},
	KindMultiLanguageProperty:              {"MultiLanguageProperty", KindDataElement, false},
	KindRange:                              {"Range", KindDataElement, false},
	KindBlob:                               {"Blob", KindDataElement, false},
	KindFile:                               {"File", KindDataElement, false},
	KindReferenceElement:                   {"ReferenceElement", KindDataElement, false},
	KindRelationshipElement:                {"RelationshipElement", KindSubmodelElement, false},
	KindAnnotatedRelationshipElement:       {"AnnotatedRelationshipElement", KindRelationshipElement, false},
	KindOperation:                          {"Operation", KindSubmodelElement, false},
	KindCapability:                         {"Capability", KindSubmodelElement, false},
	KindEntity:                             {"Entity", KindSubmodelElement, false},
	KindEvent:                              {"Event", KindSubmodelElement, true},
	KindBasicEvent:                         {"BasicEvent", KindEvent, false},
	KindSubmodelElementCollection:          {"SubmodelElementCollection", KindSubmodelElement, true},
	KindSubmodelElementCollectionOrdered:   {"SubmodelElementCollectionOrdered", KindSubmodelElementCollection, false},
	KindSubmodelElementCollectionUnordered: {"SubmodelElementCollectionUnordered", KindSubmodelElementCollection, false},
	KindConstraint:                         {"Constraint", KindInvalid, true},
	KindQualifier:                          {"Qualifier", KindConstraint, false},
	KindFormula:                            {"Formula", KindConstraint, false},
	KindOperationVariable:                  {"OperationVariable", KindInvalid, false},
}

// String returns the meta-model class name.
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return "Invalid"
}

// Parent returns the direct superclass of k, or KindInvalid for roots of
// the hierarchy.
func (k Kind) Parent() Kind {
	return kinds[k].parent
}

// Abstract reports whether k has no concrete instances.
func (k Kind) Abstract() bool {
	return kinds[k].abstract
}

// Is reports whether k equals other or is a subclass of it.
func (k Kind) Is(other Kind) bool {
	for c := k; c != KindInvalid; c = c.Parent() {
		if c == other {
			return true
		}
	}
	return false
}

// ModelType returns the discriminator written to modelType.name. Both
// collection variants share the "SubmodelElementCollection" tag and are
// told apart by their "ordered" flag.
func (k Kind) ModelType() string {
	if k.Is(KindSubmodelElementCollection) {
		return KindSubmodelElementCollection.String()
	}
	return k.String()
}

// KindByName looks up a kind by its class name.
func KindByName(name string) (Kind, bool) {
	for k, info := range kinds {
		if info.name == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// KeyElement returns the key element naming k, or false if k cannot be
// the target of a key.
func (k Kind) KeyElement() (KeyElement, bool) {
	if k.Is(KindSubmodelElementCollection) {
		return KeySubmodelElementCollection, true
	}
	for e, info := range keyElements {
		if info.kind == k {
			return e, true
		}
	}
	return 0, false
}

// Band groups key elements by how the key value is interpreted.
type Band int

const (
	// BandIdentifiable keys carry a global identifier.
	BandIdentifiable Band = iota
	// BandReferable keys carry an id_short local to the previous step.
	BandReferable
	// BandReference keys point outside the AAS graph.
	BandReference
)

// KeyElement is the element kind named by one Key.
type KeyElement int

const (
	KeyAsset KeyElement = iota
	KeyAssetAdministrationShell
	KeyConceptDescription
	KeySubmodel

	KeyAccessPermissionRule
	KeyAnnotatedRelationshipElement
	KeyBasicEvent
	KeyBlob
	KeyCapability
	KeyConceptDictionary
	KeyDataElement
	KeyFile
	KeyEntity
	KeyEvent
	KeyMultiLanguageProperty
	KeyOperation
	KeyProperty
	KeyRange
	KeyReferenceElement
	KeyRelationshipElement
	KeySubmodelElement
	KeySubmodelElementCollection
	KeyView

	KeyGlobalReference
	KeyFragmentReference
)

type keyElementInfo struct {
	name string
	band Band
	kind Kind
}

var keyElements = map[KeyElement]keyElementInfo{
	KeyAsset:                        {"Asset", BandIdentifiable, KindAsset},
	KeyAssetAdministrationShell:     {"AssetAdministrationShell", BandIdentifiable, KindAssetAdministrationShell},
	KeyConceptDescription:           {"ConceptDescription", BandIdentifiable, KindConceptDescription},
	KeySubmodel:                     {"Submodel", BandIdentifiable, KindSubmodel},
	KeyAccessPermissionRule:         {"AccessPermissionRule", BandReferable, KindReferable},
	KeyAnnotatedRelationshipElement: {"AnnotatedRelationshipElement", BandReferable, KindAnnotatedRelationshipElement},
	KeyBasicEvent:                   {"BasicEvent", BandReferable, KindBasicEvent},
	KeyBlob:                         {"Blob", BandReferable, KindBlob},
	KeyCapability:                   {"Capability", BandReferable, KindCapability},
	KeyConceptDictionary:            {"ConceptDictionary", BandReferable, KindConceptDictionary},
	KeyDataElement:                  {"DataElement", BandReferable, KindDataElement},
	KeyFile:                         {"File", BandReferable, KindFile},
	KeyEntity:                       {"Entity", BandReferable, KindEntity},
	KeyEvent:                        {"Event", BandReferable, KindEvent},
	KeyMultiLanguageProperty:        {"MultiLanguageProperty", BandReferable, KindMultiLanguageProperty},
	KeyOperation:                    {"Operation", BandReferable, KindOperation},
	KeyProperty:                     {"Property", BandReferable, KindProperty},
	KeyRange:                        {"Range", BandReferable, KindRange},
	KeyReferenceElement:             {"ReferenceElement", BandReferable, KindReferenceElement},
	KeyRelationshipElement:          {"RelationshipElement", BandReferable, KindRelationshipElement},
	KeySubmodelElement:              {"SubmodelElement", BandReferable, KindSubmodelElement},
	KeySubmodelElementCollection:    {"SubmodelElementCollection", BandReferable, KindSubmodelElementCollection},
	KeyView:                         {"View", BandReferable, KindView},
	KeyGlobalReference:              {"GlobalReference", BandReference, KindInvalid},
	KeyFragmentReference:            {"FragmentReference", BandReference, KindInvalid},
}

// String returns the JSON name of the key element.
func (e KeyElement) String() string {
	if info, ok := keyElements[e]; ok {
		return info.name
	}
	return "Invalid"
}

// Band reports how the value of a key with this element is interpreted.
func (e KeyElement) Band() Band {
	return keyElements[e].band
}

// Kind returns the class named by the key element. Pure reference
// elements return KindInvalid.
func (e KeyElement) Kind() Kind {
	return keyElements[e].kind
}

// ParseKeyElement looks up a key element by its JSON name.
func ParseKeyElement(name string) (KeyElement, bool) {
	for e, info := range keyElements {
		if info.name == name {
			return e, true
		}
	}
	return 0, false
}
