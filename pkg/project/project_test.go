package project

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/stakemap/pkg/errors"
)

func sampleDataset() Dataset {
	return Dataset{
		Modules: []Module{
			{ID: "m1", Name: "Auth", Code: "AUTH", Priority: PriorityHigh, Status: StatusPlanned, Stakeholders: []string{"Ops", "Security"}},
			{ID: "m2", Name: "Billing", Priority: PriorityLow, Status: StatusCompleted, Stakeholders: []string{"Finance", "Ops"}},
		},
		Features: []Feature{
			{ID: "f1", ModuleID: "m1", Name: "Login"},
			{ID: "f2", ModuleID: "m2", Name: "Invoices", Code: "INV"},
			{ID: "f3", ModuleID: "m1", Name: "Logout"},
			{ID: "f4", ModuleID: "gone", Name: "Orphan"},
		},
		Connections: []Connection{
			{ID: "c1", SourceType: EntityModule, SourceID: "m1", TargetType: EntityFunction, TargetID: "f2"},
		},
	}
}

func TestDatasetIDs(t *testing.T) {
	d := sampleDataset()

	modules := d.ModuleIDs()
	if len(modules) != 2 || !modules["m1"] || !modules["m2"] {
		t.Errorf("ModuleIDs() = %v", modules)
	}

	features := d.FeatureIDs()
	if len(features) != 3 {
		t.Errorf("FeatureIDs() = %v, want 3 entries", features)
	}
	if features["f4"] {
		t.Error("feature with unknown owner should be excluded")
	}
}

func TestFeaturesByModulePreservesOrder(t *testing.T) {
	groups := sampleDataset().FeaturesByModule()

	var ids []string
	for _, f := range groups["m1"] {
		ids = append(ids, f.ID)
	}
	if !slices.Equal(ids, []string{"f1", "f3"}) {
		t.Errorf("m1 features = %v, want [f1 f3]", ids)
	}
	if _, ok := groups["gone"]; ok {
		t.Error("orphan owner should not appear")
	}
}

func TestStakeholders(t *testing.T) {
	got := sampleDataset().Stakeholders()
	want := []string{"Finance", "Ops", "Security"}
	if !slices.Equal(got, want) {
		t.Errorf("Stakeholders() = %v, want %v", got, want)
	}
}

func TestModuleNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"trims", []string{" Ops ", "Finance"}, []string{"Ops", "Finance"}},
		{"drops empty", []string{"", "  ", "Ops"}, []string{"Ops"}},
		{"dedupes keeping first", []string{"Ops", "Finance", "Ops "}, []string{"Ops", "Finance"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Module{ID: "m", Stakeholders: tt.in}.Normalize()
			if !slices.Equal(m.Stakeholders, tt.want) {
				t.Errorf("Normalize() = %q, want %q", m.Stakeholders, tt.want)
			}
		})
	}
}

func TestDatasetNormalizeDoesNotMutate(t *testing.T) {
	d := Dataset{Modules: []Module{{ID: "m", Stakeholders: []string{" a ", "a"}}}}
	_ = d.Normalize()
	if d.Modules[0].Stakeholders[0] != " a " {
		t.Error("Normalize mutated the input dataset")
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Module{Name: "Auth", Code: "AUTH"}).DisplayLabel(); got != "AUTH" {
		t.Errorf("module label = %q, want AUTH", got)
	}
	if got := (Feature{Name: "Login"}).DisplayLabel(); got != "Login" {
		t.Errorf("feature label = %q, want Login", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Dataset)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(d *Dataset) {},
		},
		{
			name:    "missing module name",
			mutate:  func(d *Dataset) { d.Modules[0].Name = "" },
			wantErr: "Name",
		},
		{
			name:    "bad priority",
			mutate:  func(d *Dataset) { d.Modules[1].Priority = "urgent" },
			wantErr: "Priority",
		},
		{
			name:    "bad status",
			mutate:  func(d *Dataset) { d.Modules[1].Status = "done" },
			wantErr: "Status",
		},
		{
			name:   "bad connection type",
			mutate: func(d *Dataset) { d.Connections[0].TargetType = "feature" },
		},
		{
			name:   "missing connection endpoint",
			mutate: func(d *Dataset) { d.Connections[0].SourceID = "" },
		},
		{
			name:    "duplicate module id",
			mutate:  func(d *Dataset) { d.Modules[1].ID = "m1" },
			wantErr: `duplicate module id "m1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sampleDataset()
			tt.mutate(&d)

			err := Validate(d)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDataset) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDataset)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMalformedConnections(t *testing.T) {
	M := EntityModule
	tests := []struct {
		name string
		conn Connection
		want string
	}{
		{"Valid", Connection{ID: "c1", SourceType: M, SourceID: "a", TargetType: M, TargetID: "b"}, ""},
		{"UnknownSourceType", Connection{ID: "c1", SourceType: "feature", SourceID: "a", TargetType: M, TargetID: "b"}, "source_type"},
		{"EmptyTargetID", Connection{ID: "c1", SourceType: M, SourceID: "a", TargetType: M}, "target_id"},
		{"MissingID", Connection{SourceType: M, SourceID: "a", TargetType: M, TargetID: "b"}, `"required" on ID`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MalformedConnections([]Connection{tt.conn})
			if tt.want == "" {
				if len(got) != 0 {
					t.Errorf("problems = %v, want none", got)
				}
				return
			}
			if len(got) != 1 || !strings.Contains(got[0], tt.want) {
				t.Errorf("problems = %v, want one mentioning %q", got, tt.want)
			}
		})
	}
}

func TestValidateDanglingReferencesAreAllowed(t *testing.T) {
	d := sampleDataset()
	d.Connections = append(d.Connections, Connection{
		ID: "c2", SourceType: EntityModule, SourceID: "deleted", TargetType: EntityModule, TargetID: "m1",
	})
	if err := Validate(d); err != nil {
		t.Errorf("dangling connection should validate, got %v", err)
	}
}
