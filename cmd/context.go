package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/masmgr/gitwork/config"
	"github.com/masmgr/gitwork/internal/discovery"
	"github.com/masmgr/gitwork/internal/git"
	"github.com/masmgr/gitwork/internal/output"
	"github.com/masmgr/gitwork/internal/window"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Overridable in tests.
var (
	now             = time.Now
	resolveIdentity = git.ResolveIdentity
)

// RunContext holds the resolved inputs of one run.
type RunContext struct {
	Config        *config.Config
	BaseDir       string
	Window        window.Window
	Identity      git.Identity
	AllAuthors    bool
	IncludeMerges bool
	Fetch         bool
	Output        output.OutputOptions
	Logger        *logrus.Logger
}

// NewRunContext resolves configuration, flags, the base directory, the time
// window and the caller's identity.
func NewRunContext(c *cli.Context) (*RunContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	mode, err := windowMode(c)
	if err != nil {
		return nil, err
	}
	win, err := window.Compute(mode, cfg.Window.Days, now())
	if err != nil {
		return nil, err
	}

	format, err := outputFormat(c, cfg)
	if err != nil {
		return nil, err
	}

	switch git.Backend(cfg.Git.Backend) {
	case git.BackendGoGit, git.BackendGitCLI:
	default:
		return nil, fmt.Errorf("unknown backend %q (expected go-git or git-cli)", cfg.Git.Backend)
	}

	dir := "."
	if c.NArg() > 1 {
		for _, arg := range c.Args().Tail() {
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("flag %s must come before DIR", arg)
			}
		}
		return nil, fmt.Errorf("expected at most one directory, got %d arguments", c.NArg())
	}
	if c.NArg() == 1 {
		dir = c.Args().First()
	}
	base, err := discovery.Canonicalize(dir)
	if err != nil {
		return nil, err
	}

	all := c.Bool("all")
	var identity git.Identity
	if !all {
		identity = resolveIdentity()
	}

	logger := newLogger(c.Bool("verbose"), c.App.ErrWriter)
	logger.WithFields(logrus.Fields{
		"base":     base,
		"mode":     mode.String(),
		"window":   win.Description(),
		"since":    win.Since.Format(time.RFC3339),
		"identity": identity,
	}).Debug("Resolved run")

	return &RunContext{
		Config:        cfg,
		BaseDir:       base,
		Window:        win,
		Identity:      identity,
		AllAuthors:    all,
		IncludeMerges: c.Bool("merges"),
		Fetch:         c.Bool("remote"),
		Output: output.OutputOptions{
			Format:     format,
			OutputPath: c.String("output"),
			TimeLayout: cfg.Output.TimeLayout,
			Stdout:     c.App.Writer,
		},
		Logger: logger,
	}, nil
}

// ReadOptions returns the per-repository history options for this run.
func (rc *RunContext) ReadOptions() git.ReadOptions {
	return git.ReadOptions{
		Since:         rc.Window.Since,
		Until:         rc.Window.Until,
		Identity:      rc.Identity,
		IncludeMerges: rc.IncludeMerges,
		AllAuthors:    rc.AllAuthors,
		Backend:       git.Backend(rc.Config.Git.Backend),
	}
}

// IdentityFiltered reports whether commits were restricted to the
// caller's identity.
func (rc *RunContext) IdentityFiltered() bool {
	return !rc.AllAuthors && !rc.Identity.IsZero()
}

// loadConfig loads configuration from file or defaults and applies the
// flags that were set explicitly.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("max-depth") {
		cfg.Scan.MaxDepth = c.Int("max-depth")
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Scan.Exclude = excludes
	}
	if c.IsSet("workers") {
		cfg.Scan.Workers = c.Int("workers")
	}
	if c.IsSet("days") {
		cfg.Window.Days = c.Int("days")
	}
	if c.IsSet("limit") {
		cfg.Output.Limit = c.Int("limit")
	}
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.IsSet("backend") {
		cfg.Git.Backend = c.String("backend")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// windowMode picks the window from the mutually exclusive mode flags.
func windowMode(c *cli.Context) (window.Mode, error) {
	var set []string
	mode := window.ModeDays
	if c.IsSet("days") {
		set = append(set, "--days")
	}
	if c.Bool("today") {
		set = append(set, "--today")
		mode = window.ModeToday
	}
	if c.Bool("month") {
		set = append(set, "--month")
		mode = window.ModeMonth
	}
	if c.Bool("last-month") {
		set = append(set, "--last-month")
		mode = window.ModeLastMonth
	}
	if len(set) > 1 {
		return 0, fmt.Errorf("%s cannot be combined", strings.Join(set, ", "))
	}
	return mode, nil
}

// outputFormat resolves --raw and --format against the configured format.
func outputFormat(c *cli.Context, cfg *config.Config) (output.OutputFormat, error) {
	if c.Bool("raw") {
		if c.IsSet("format") && !strings.EqualFold(c.String("format"), string(output.FormatRaw)) {
			return "", errors.New("--raw cannot be combined with --format " + c.String("format"))
		}
		return output.FormatRaw, nil
	}
	return output.ParseFormat(cfg.Output.Format)
}

func newLogger(verbose bool, w io.Writer) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
