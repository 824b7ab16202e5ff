package model_test

import (
	"fmt"

	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/xsd"
)

type provider map[model.Identifier]model.Identifiable

func (p provider) GetIdentifiable(id model.Identifier) (model.Identifiable, error) {
	return p[id], nil
}

func Example() {
	sm := model.NewSubmodel(model.Identifier{ID: "urn:example:sm", IDType: model.IRI})
	temp, _ := model.NewProperty("Temperature", xsd.Double)
	_ = temp.Assign(21.5)
	_ = sm.SubmodelElements().Add(temp)

	ref, _ := model.ReferenceTo(temp)
	fmt.Println(ref)

	found, _ := ref.Resolve(provider{sm.Identification(): sm})
	fmt.Println(found.IDShort(), found.(*model.Property).Value())
	// Output:
	// (Submodel)[IRI]urn:example:sm, (Property)[IdShort]Temperature
	// Temperature 21.5
}

func ExampleOrderedNamespaceSet_Move() {
	c, _ := model.NewSubmodelElementCollectionOrdered("Steps")
	for _, name := range []string{"A", "B", "C"} {
		p, _ := model.NewProperty(name, xsd.String)
		_ = c.AddElement(p)
	}
	_ = c.Elements().Move(2, 0)
	for _, e := range c.Value() {
		fmt.Print(e.IDShort(), " ")
	}
	fmt.Println()
	// Output: C A B
}
