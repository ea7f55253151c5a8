package runtime

import (
	"context"

	"gitwip.dev/gitwip/internal/config"
	gitwiperrors "gitwip.dev/gitwip/internal/errors"
	"gitwip.dev/gitwip/internal/git"
	"gitwip.dev/gitwip/internal/output"
	"gitwip.dev/gitwip/internal/wip"
)

// Context provides access to the git facade, logger and resolved
// configuration for one command invocation
type Context struct {
	Git     git.Runner
	Splog   *output.Splog
	Config  *config.Config
	Owner   string
	Remotes []string
	Policy  wip.DivergencePolicy
	DryRun  bool
	Offline bool
	Base    string // explicit base branch from -b, if any

	// RemoteFilter is the explicit -r remote, if any; it narrows snapshots
	RemoteFilter string

	guard *checkoutGuard
}

// Options are the global CLI flags that shape a context
type Options struct {
	Verbose    bool
	DryRun     bool
	Offline    bool
	Remote     string
	ConfigPath string
	Base       string
}

// GetContext opens the repository containing the working directory and builds
// the execution context from it and the global flags
func GetContext(ctx context.Context, opts Options) (*Context, error) {
	g, err := git.Open(".")
	if err != nil {
		return nil, err
	}
	return NewContext(ctx, g, opts)
}

// NewContext builds an execution context around an existing facade
func NewContext(ctx context.Context, g *git.Git, opts Options) (*Context, error) {
	splog := output.NewSplog(opts.Verbose)

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath(g.Root())
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	owner, err := cfg.OwnerID()
	if err != nil {
		return nil, err
	}

	var remotes []string
	if opts.Remote != "" {
		remotes = []string{opts.Remote}
	} else {
		configured, err := g.ConfiguredRemotes(ctx)
		if err != nil {
			return nil, err
		}
		remotes = cfg.CandidateRemotes(configured)
	}

	policy := wip.PolicyAutoJoin
	if cfg.DivergencePolicy() == config.PolicyFail {
		policy = wip.PolicyFail
	}

	var runner git.Runner = g
	if opts.DryRun {
		runner = git.NewDryRun(g, splog.Info)
	}

	return &Context{
		Git:     runner,
		Splog:   splog,
		Config:  cfg,
		Owner:   owner,
		Remotes: remotes,
		Policy:  policy,
		DryRun:  opts.DryRun,
		Offline: opts.Offline,
		Base:    opts.Base,

		RemoteFilter: opts.Remote,
	}, nil
}

// RequireRemotes returns the candidate remotes, or ErrNoRemotesConfigured if
// there are none
func (c *Context) RequireRemotes() ([]string, error) {
	if len(c.Remotes) == 0 {
		return nil, gitwiperrors.ErrNoRemotesConfigured
	}
	return c.Remotes, nil
}

// Engine constructs a reconciliation engine from this context's settings
func (c *Context) Engine() *wip.Engine {
	return wip.NewEngine(c.Git, c.Owner, c.Remotes, c.Policy, c.Config.ShouldPruneStale())
}

// Maintainer constructs a merge-branch maintainer from this context's settings
func (c *Context) Maintainer() *wip.Maintainer {
	return wip.NewMaintainer(c.Git, c.Policy)
}
