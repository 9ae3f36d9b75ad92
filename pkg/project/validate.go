package project

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/stakemap/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(validateConnection, Connection{})
	})
	return validate
}

// validateConnection checks the endpoint types and presence of both ids.
// Whether the ids exist is not checked here: dangling references are
// expected and dropped by the graph adapter.
func validateConnection(sl validator.StructLevel) {
	c := sl.Current().Interface().(Connection)
	if !validEntityType(c.SourceType) {
		sl.ReportError(c.SourceType, "source_type", "SourceType", "entitytype", "")
	}
	if !validEntityType(c.TargetType) {
		sl.ReportError(c.TargetType, "target_type", "TargetType", "entitytype", "")
	}
	if c.SourceID == "" {
		sl.ReportError(c.SourceID, "source_id", "SourceID", "required", "")
	}
	if c.TargetID == "" {
		sl.ReportError(c.TargetID, "target_id", "TargetID", "required", "")
	}
}

func validEntityType(t EntityType) bool {
	return t == EntityModule || t == EntityFunction
}

// Validate checks every module and feature in the dataset and reports all
// violations in a single INVALID_DATASET error. Duplicate module or feature
// IDs are reported as well.
//
// Connections are not part of the check: a broken link must not block the
// graph. See [MalformedConnections].
func Validate(d Dataset) error {
	var problems []string

	if err := validatorInstance().Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return errors.Wrap(errors.ErrCodeInternal, err, "validate dataset")
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
	}

	problems = append(problems, duplicates("module", len(d.Modules), func(i int) string { return d.Modules[i].ID })...)
	problems = append(problems, duplicates("function", len(d.Features), func(i int) string { return d.Features[i].ID })...)

	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidDataset, "%d invalid record(s)", len(problems)).WithDetails(problems...)
}

// MalformedConnections lists connections with a missing ID, an unknown
// endpoint type or an empty endpoint ID. The graph adapter drops such links;
// hosts report the list as a warning.
func MalformedConnections(conns []Connection) []string {
	var out []string
	for i, c := range conns {
		err := validatorInstance().Struct(c)
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			continue
		}
		for _, fe := range verrs {
			out = append(out, fmt.Sprintf("connections[%d] %q: failed %q on %s", i, c.ID, fe.Tag(), fe.Field()))
		}
	}
	return out
}

func duplicates(kind string, n int, id func(int) string) []string {
	seen := make(map[string]bool, n)
	var out []string
	for i := 0; i < n; i++ {
		v := id(i)
		if v == "" {
			continue
		}
		if seen[v] {
			out = append(out, fmt.Sprintf("duplicate %s id %q", kind, v))
		}
		seen[v] = true
	}
	return out
}
