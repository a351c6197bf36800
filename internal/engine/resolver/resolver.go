package resolver

import (
	"context"

	slogcontext "github.com/veqryn/slog-context"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
	"go.trai.ch/sackd/internal/engine/nevra"
	"go.trai.ch/sackd/internal/engine/sack"
)

var _ ports.PackageResolver = (*Resolver)(nil)

// Resolver answers best-match queries against the index held by a Handle.
type Resolver struct {
	handle   *Handle
	hostArch string
}

// New creates a resolver. hostArch is used when a specifier names no architecture.
func New(handle *Handle, hostArch string) *Resolver {
	return &Resolver{handle: handle, hostArch: hostArch}
}

// Resolve returns the best package matching spec in the given state, or nil for no match.
// Only index build failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, spec string, state domain.InstallState) (*domain.Package, error) {
	poss := nevra.Parse(spec)
	if len(poss) == 0 {
		slogcontext.FromCtx(ctx).Debug("specifier has no readings", "spec", spec)
		return nil, nil
	}

	s, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	filter := r.filter(s, spec, poss, state)
	candidates := s.Query(filter)
	slogcontext.FromCtx(ctx).Debug("candidate query",
		"spec", spec,
		"state", state.String(),
		"arches", filter.Arches,
		"name", filter.Name,
		"provides", filter.Provides,
		"candidates", len(candidates),
	)
	best := SelectBest(candidates)
	if best != nil {
		slogcontext.FromCtx(ctx).Debug("best match", "spec", spec, "package", best.NEVRA(), "repo", best.Repo)
	}
	return best, nil
}

// Flush invalidates the index.
func (r *Resolver) Flush() {
	r.handle.Invalidate()
}

// filter builds the candidate query: the arch set from the first explicit arch or the host,
// then the first reading that names packages in the index, else a provides lookup.
func (r *Resolver) filter(s *sack.Sack, spec string, poss []nevra.Possibility, state domain.InstallState) domain.FilterSpec {
	arch := r.hostArch
	for _, p := range poss {
		if p.HasArch() {
			arch = p.Arch
			break
		}
	}

	for _, p := range poss {
		if p.Relation {
			continue
		}
		probe := p.Filter(state)
		if !s.Contains(probe) {
			continue
		}
		probe.Arches = domain.ArchSet(arch)
		return probe
	}

	return domain.FilterSpec{
		Arches:   domain.ArchSet(arch),
		State:    state,
		Provides: spec,
	}
}
