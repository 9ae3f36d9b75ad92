package graph_test

import (
	"fmt"

	"github.com/matzehuels/stakemap/pkg/graph"
	"github.com/matzehuels/stakemap/pkg/project"
)

func ExampleBuildOverlapEdges() {
	modules := []project.Module{
		{ID: "auth", Name: "Auth", Stakeholders: []string{"Ops", "Security"}},
		{ID: "billing", Name: "Billing", Stakeholders: []string{"Finance", "Ops"}},
		{ID: "reports", Name: "Reports", Stakeholders: []string{"Finance"}},
	}

	for _, e := range graph.BuildOverlapEdges(modules) {
		fmt.Printf("%s - %s %v\n", e.A, e.B, e.Shared)
	}
	// Output:
	// auth - billing [Ops]
	// billing - reports [Finance]
}

func ExampleAdaptConnections() {
	conns := []project.Connection{
		{ID: "c1", SourceType: project.EntityModule, SourceID: "auth", TargetType: project.EntityFunction, TargetID: "login"},
		{ID: "c2", SourceType: project.EntityModule, SourceID: "auth", TargetType: project.EntityModule, TargetID: "deleted"},
	}
	modules := map[string]bool{"auth": true}
	features := map[string]bool{"login": true}

	for _, e := range graph.AdaptConnections(conns, modules, features) {
		fmt.Println(e.Source, "->", e.Target, e.Category)
	}
	// Output:
	// module:auth -> function:login mixed
}
