package explore

import (
	"github.com/matzehuels/stakemap/pkg/graph"
	"github.com/matzehuels/stakemap/pkg/project"
)

var (
	auth    = graph.ModuleNodeID("auth")
	billing = graph.ModuleNodeID("billing")
	reports = graph.ModuleNodeID("reports")
	login   = graph.FeatureNodeID("login")
)

// billingDataset has an Auth–Billing overlap, an isolated Reports module,
// one feature and two connections, one of them dangling.
func billingDataset() project.Dataset {
	return project.Dataset{
		Modules: []project.Module{
			{ID: "auth", Name: "Auth", Code: "AUTH", Priority: project.PriorityHigh, Status: project.StatusInProgress, Stakeholders: []string{"Ops", "Security"}},
			{ID: "billing", Name: "Billing", Priority: project.PriorityMedium, Status: project.StatusPlanned, Stakeholders: []string{"Finance", "Ops"}},
			{ID: "reports", Name: "Reports", Priority: project.PriorityLow, Status: project.StatusCompleted, Stakeholders: []string{"Analytics"}},
		},
		Features: []project.Feature{
			{ID: "login", ModuleID: "auth", Name: "Login"},
			{ID: "orphan", ModuleID: "gone", Name: "Orphan"},
		},
		Connections: []project.Connection{
			{ID: "c1", SourceType: project.EntityModule, SourceID: "billing", TargetType: project.EntityFunction, TargetID: "login"},
			{ID: "c2", SourceType: project.EntityModule, SourceID: "reports", TargetType: project.EntityModule, TargetID: "deleted"},
		},
	}
}

func highlighted(v View) []graph.NodeID {
	var out []graph.NodeID
	for _, n := range v.Nodes {
		if n.Highlighted {
			out = append(out, n.ID)
		}
	}
	return out
}

func visible(v View) []graph.NodeID {
	var out []graph.NodeID
	for _, n := range v.VisibleNodes() {
		out = append(out, n.ID)
	}
	return out
}
