package lint

import (
	"fmt"

	"bracketlint/internal/diag"
)

// Registry holds every known rule, keyed by id. It is populated once at
// startup and read-only during analysis, so unit passes need no locking.
type Registry struct {
	units    map[diag.Code]func() Rule
	programs map[diag.Code]func() ProgramRule
	metas    map[diag.Code]Meta
	order    []diag.Code
	sealed   bool
}

func NewRegistry() *Registry {
	return &Registry{
		units:    make(map[diag.Code]func() Rule),
		programs: make(map[diag.Code]func() ProgramRule),
		metas:    make(map[diag.Code]Meta),
	}
}

func (r *Registry) register(meta Meta) error {
	if r.sealed {
		return fmt.Errorf("lint: registry sealed, cannot register %q", meta.ID)
	}
	if meta.ID == "" {
		return fmt.Errorf("lint: rule with empty id")
	}
	if meta.ID.IsInternal() {
		return fmt.Errorf("lint: rule id %q collides with tool codes", meta.ID)
	}
	if _, dup := r.metas[meta.ID]; dup {
		return fmt.Errorf("lint: duplicate rule id %q", meta.ID)
	}
	r.metas[meta.ID] = meta
	r.order = append(r.order, meta.ID)
	return nil
}

// Register adds a per-unit rule constructor. The factory is invoked once
// immediately to read the rule's Meta and then once per traversal.
func (r *Registry) Register(factory func() Rule) error {
	meta := factory().Meta()
	if err := r.register(meta); err != nil {
		return err
	}
	if len(meta.Kinds) == 0 {
		delete(r.metas, meta.ID)
		r.order = r.order[:len(r.order)-1]
		return fmt.Errorf("lint: rule %q declares no interest set", meta.ID)
	}
	r.units[meta.ID] = factory
	return nil
}

// RegisterProgram adds a cross-file rule constructor.
func (r *Registry) RegisterProgram(factory func() ProgramRule) error {
	meta := factory().Meta()
	if err := r.register(meta); err != nil {
		return err
	}
	r.programs[meta.ID] = factory
	return nil
}

// MustRegister is Register for init-time rule catalogs, where a
// registration failure is a programming error.
func (r *Registry) MustRegister(factory func() Rule) {
	if err := r.Register(factory); err != nil {
		panic(err)
	}
}

// MustRegisterProgram is RegisterProgram with the same contract.
func (r *Registry) MustRegisterProgram(factory func() ProgramRule) {
	if err := r.RegisterProgram(factory); err != nil {
		panic(err)
	}
}

// Seal freezes the registry. Registration after Seal fails; analysis may
// start only on a sealed registry.
func (r *Registry) Seal() { r.sealed = true }

// Meta returns the metadata of a registered rule.
func (r *Registry) Meta(id diag.Code) (Meta, bool) {
	m, ok := r.metas[id]
	return m, ok
}

// IDs lists all registered rule ids in registration order.
func (r *Registry) IDs() []diag.Code {
	out := make([]diag.Code, len(r.order))
	copy(out, r.order)
	return out
}

// Selection is the resolved enablement state for one run: rule id to
// on/off. Rules absent from the map fall back to EnabledByDefault.
type Selection map[diag.Code]bool

// Enabled reports whether a rule runs under sel.
func (r *Registry) Enabled(id diag.Code, sel Selection) bool {
	meta, ok := r.metas[id]
	if !ok {
		return false
	}
	if sel != nil {
		if on, configured := sel[id]; configured {
			return on
		}
	}
	return meta.EnabledByDefault
}

// activeUnitRules instantiates the enabled per-unit rules in registration
// order.
func (r *Registry) activeUnitRules(sel Selection) []*activeRule {
	out := make([]*activeRule, 0, len(r.units))
	for _, id := range r.order {
		factory, ok := r.units[id]
		if !ok || !r.Enabled(id, sel) {
			continue
		}
		out = append(out, &activeRule{meta: r.metas[id], rule: factory()})
	}
	return out
}

// activeProgramRules instantiates the enabled cross-file rules in
// registration order.
func (r *Registry) activeProgramRules(sel Selection) []ProgramRule {
	out := make([]ProgramRule, 0, len(r.programs))
	for _, id := range r.order {
		factory, ok := r.programs[id]
		if !ok || !r.Enabled(id, sel) {
			continue
		}
		out = append(out, factory())
	}
	return out
}
