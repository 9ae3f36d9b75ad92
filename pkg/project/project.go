// Package project defines the read-only entity records the graph engine
// consumes: modules, the features they own, and explicit connections.
//
// Records arrive from an external store (see pkg/source) and are never
// mutated by the engine. The wire format uses snake_case keys and calls
// features "functions", matching the store:
//
//	{
//	  "modules":     [{"id": "m1", "name": "Auth", "priority": "high",
//	                   "status": "planned", "stakeholders": ["Ops"]}],
//	  "functions":   [{"id": "f1", "module_id": "m1", "name": "Login"}],
//	  "connections": [{"id": "c1", "source_type": "module", "source_id": "m1",
//	                   "target_type": "function", "target_id": "f1"}]
//	}
package project

import (
	"slices"
	"strings"
)

// Priority ranks a module. Unknown values are tolerated by the engine and
// cluster with the lowest group.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists priorities in clustering order (most urgent first).
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// Status is the lifecycle state of a module.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

// Statuses lists statuses in clustering order.
var Statuses = []Status{StatusPlanned, StatusInProgress, StatusCompleted, StatusOnHold}

// EntityType tags the endpoint of an explicit connection.
type EntityType string

const (
	EntityModule   EntityType = "module"
	EntityFunction EntityType = "function"
)

// Module is a top-level work item.
type Module struct {
	ID           string   `json:"id" bson:"id" toml:"id" validate:"required,max=256"`
	Name         string   `json:"name" bson:"name" toml:"name" validate:"required"`
	Code         string   `json:"code,omitempty" bson:"code,omitempty" toml:"code,omitempty"`
	Priority     Priority `json:"priority" bson:"priority" toml:"priority" validate:"oneof=low medium high critical"`
	Status       Status   `json:"status" bson:"status" toml:"status" validate:"oneof=planned in_progress completed on_hold"`
	Stakeholders []string `json:"stakeholders,omitempty" bson:"stakeholders,omitempty" toml:"stakeholders,omitempty"`
}

// Feature is a sub-item owned by exactly one module.
type Feature struct {
	ID       string `json:"id" bson:"id" toml:"id" validate:"required,max=256"`
	ModuleID string `json:"module_id" bson:"module_id" toml:"module_id" validate:"required"`
	Name     string `json:"name" bson:"name" toml:"name" validate:"required"`
	Code     string `json:"code,omitempty" bson:"code,omitempty" toml:"code,omitempty"`
}

// Connection is a user-declared directed link between two entities.
type Connection struct {
	ID         string     `json:"id" bson:"id" toml:"id" validate:"required"`
	SourceType EntityType `json:"source_type" bson:"source_type" toml:"source_type"`
	SourceID   string     `json:"source_id" bson:"source_id" toml:"source_id"`
	TargetType EntityType `json:"target_type" bson:"target_type" toml:"target_type"`
	TargetID   string     `json:"target_id" bson:"target_id" toml:"target_id"`
}

// Dataset is everything a source returns in one fetch.
type Dataset struct {
	Modules     []Module     `json:"modules" bson:"modules" toml:"modules" validate:"dive"`
	Features    []Feature    `json:"functions" bson:"functions" toml:"functions" validate:"dive"`
	Connections []Connection `json:"connections" bson:"connections" toml:"connections" validate:"-"`
}

// ModuleIDs returns the set of known module IDs.
func (d Dataset) ModuleIDs() map[string]bool {
	ids := make(map[string]bool, len(d.Modules))
	for _, m := range d.Modules {
		ids[m.ID] = true
	}
	return ids
}

// FeatureIDs returns the set of known feature IDs whose owner exists.
// A feature pointing at a deleted module is treated as deleted too.
func (d Dataset) FeatureIDs() map[string]bool {
	modules := d.ModuleIDs()
	ids := make(map[string]bool, len(d.Features))
	for _, f := range d.Features {
		if modules[f.ModuleID] {
			ids[f.ID] = true
		}
	}
	return ids
}

// FeaturesByModule groups features by owning module, preserving input order
// within each group. Features with an unknown owner are omitted.
func (d Dataset) FeaturesByModule() map[string][]Feature {
	modules := d.ModuleIDs()
	out := make(map[string][]Feature)
	for _, f := range d.Features {
		if !modules[f.ModuleID] {
			continue
		}
		out[f.ModuleID] = append(out[f.ModuleID], f)
	}
	return out
}

// Stakeholders returns the sorted, de-duplicated union of all stakeholder
// names across modules. Hosts use it to offer the single-stakeholder filter.
func (d Dataset) Stakeholders() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range d.Modules {
		for _, s := range m.Stakeholders {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

// Normalize returns a copy of the dataset with stakeholder names trimmed,
// empty names dropped and duplicates removed (first occurrence wins).
func (d Dataset) Normalize() Dataset {
	out := Dataset{
		Modules:     make([]Module, len(d.Modules)),
		Features:    slices.Clone(d.Features),
		Connections: slices.Clone(d.Connections),
	}
	for i, m := range d.Modules {
		out.Modules[i] = m.Normalize()
	}
	return out
}

// Normalize returns a copy of m with a cleaned stakeholder list.
func (m Module) Normalize() Module {
	if len(m.Stakeholders) == 0 {
		m.Stakeholders = nil
		return m
	}
	seen := make(map[string]bool, len(m.Stakeholders))
	clean := make([]string, 0, len(m.Stakeholders))
	for _, s := range m.Stakeholders {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		clean = append(clean, s)
	}
	m.Stakeholders = clean
	return m
}

// DisplayLabel returns the code if set, otherwise the name.
func (m Module) DisplayLabel() string {
	if m.Code != "" {
		return m.Code
	}
	return m.Name
}

// DisplayLabel returns the code if set, otherwise the name.
func (f Feature) DisplayLabel() string {
	if f.Code != "" {
		return f.Code
	}
	return f.Name
}
