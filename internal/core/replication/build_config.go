package replication

import (
	"fmt"
	"reflect"

	"github.com/replicon-net/replicon/internal/config"
)

// BuildWithConfig runs Build with cfg's additional, configuration-driven
// constraints applied before classification: a record whose role is not
// in cfg.EnabledRoles is rejected outright, and a record whose field
// count exceeds cfg.MaxFields is rejected even if it would otherwise
// clear the hard 32-field bound classifyRecord enforces (spec.md §3 sets
// the ceiling; cfg.MaxFields may only tighten it — NewConfig/Load already
// clamp the reverse case).
//
// When cfg.StrictMode is set, any classification diagnostic returned
// alongside a successful build (spec.md §4.1's "discouraged" findings)
// is escalated to a build error instead of being left for the caller to
// log and ignore.
func BuildWithConfig(cfg config.GeneratorConfig, records []RoleRecord, compositeReg *CompositeRegistry) (*Registry, []Diagnostic, error) {
	for _, rr := range records {
		if !cfg.RoleEnabled(rr.Role.String()) {
			return nil, nil, newBuildError(rr.Type.String(), fmt.Errorf("%w: role %s disabled by configuration", ErrInvalidLayout, rr.Role))
		}
		if rr.Type.Kind() == reflect.Struct && rr.Type.NumField() > cfg.MaxFields {
			return nil, nil, newBuildError(rr.Type.String(),
				fmt.Errorf("%w: record has %d fields, exceeding configured bound %d", ErrInvalidLayout, rr.Type.NumField(), cfg.MaxFields))
		}
	}

	reg, diags, err := Build(records, compositeReg)
	if err != nil {
		return nil, diags, err
	}
	if cfg.StrictMode && len(diags) > 0 {
		return nil, diags, fmt.Errorf("strict mode: %d classification diagnostic(s): %s", len(diags), diags[0].Message)
	}
	return reg, diags, nil
}
