package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"workshopdex/internal/adapters/workshop"
	"workshopdex/internal/core/langs"
	"workshopdex/internal/core/query"
	"workshopdex/internal/core/version"
	"workshopdex/internal/platform/config"
	perr "workshopdex/internal/platform/errors"
	"workshopdex/internal/platform/net/http/bind"
	"workshopdex/internal/services/api/pages/domain"
	"workshopdex/internal/services/api/pages/service"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
)

// exit codes
const (
	exitFailure = 1
	exitUsage   = 2
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "workshopdex",
		Version: version.Info("workshopdex").Version,
		Usage:   "Query a workshop backend and print page data as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Workshop backend root",
				Aliases: []string{"b"},
				Sources: cli.EnvVars("WORKSHOP_API_BASE_URL"),
			},
			&cli.StringFlag{
				Name:    "language-param",
				Usage:   "Query key the backend reads the language from (language or languages)",
				Sources: cli.EnvVars("WORKSHOP_API_LANGUAGE_PARAM"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Give up on a request after this long, 0 waits forever",
				Aliases: []string{"t"},
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Print JSON on one line",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "query",
				Usage:  "Print the list query a filter builds, without sending it",
				Flags:  append([]cli.Flag{appFlag()}, filterFlags()...),
				Action: queryAction,
			},
			{
				Name:   "list",
				Usage:  "Fetch the filtered item listing",
				Flags:  append([]cli.Flag{appFlag()}, filterFlags()...),
				Action: listAction,
			},
			{
				Name:      "app",
				Usage:     "Fetch an app and its filtered listing",
				ArgsUsage: "<id>",
				Flags:     filterFlags(),
				Action:    appAction,
			},
			{
				Name:      "item",
				Usage:     "Fetch one item",
				ArgsUsage: "<id>",
				Action:    itemAction,
			},
			{
				Name:   "apps",
				Usage:  "Fetch every app",
				Action: appsAction,
			},
			{
				Name:   "admin",
				Usage:  "Fetch admin users and properties",
				Action: adminAction,
			},
			{
				Name:  "languages",
				Usage: "List the language names the backend understands",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Usage: "Also show each name written in this language (BCP 47, e.g. de)"},
				},
				Action: languagesAction,
			},
			{
				Name:  "version",
				Usage: "Print the version information",
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintln(cmd.Root().Writer, version.Info("workshopdex").String())
					return err
				},
			},
		},
		// main picks the exit status, keep cli from calling os.Exit itself
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// flags are built per command, cli keeps parse state on them
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "Language name or code, e.g. English, en, ja-JP"},
		&cli.StringSliceFlag{Name: "tag", Usage: "Tag to require, repeatable"},
		&cli.StringFlag{Name: "order-by", Aliases: []string{"o"}, Usage: "Alphabetical, LastUpdated, Score or Dependents"},
		&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Page size, 0..100"},
		&cli.StringFlag{Name: "title", Usage: "Title substring"},
		&cli.StringFlag{Name: "last-updated", Usage: "Only items updated since this date"},
	}
}

func appFlag() cli.Flag {
	return &cli.StringFlag{Name: "app", Aliases: []string{"a"}, Usage: "App id to scope the listing to"}
}

func queryAction(_ context.Context, cmd *cli.Command) error {
	snap, err := snapshot(cmd, cmd.String("app"))
	if err != nil {
		return err
	}
	svc, err := pages(cmd)
	if err != nil {
		return err
	}
	pv, err := svc.Preview(snap)
	if err != nil {
		return err
	}
	return printJSON(cmd, pv)
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	snap, err := snapshot(cmd, cmd.String("app"))
	if err != nil {
		return err
	}
	c, err := client(cmd)
	if err != nil {
		return err
	}
	raw, err := c.Builder().Build(snap)
	if err != nil {
		return err
	}
	res, err := c.Listing(ctx, raw)
	if err != nil {
		return err
	}
	if err := printJSON(cmd, res); err != nil {
		return err
	}
	if !res.OK {
		return cli.Exit(fmt.Sprintf("listing failed: %d %s", res.Failure.Status, res.Failure.StatusText), exitFailure)
	}
	return nil
}

func appAction(ctx context.Context, cmd *cli.Command) error {
	id, err := arg(cmd, "app id")
	if err != nil {
		return err
	}
	snap, err := snapshot(cmd, "")
	if err != nil {
		return err
	}
	svc, err := pages(cmd)
	if err != nil {
		return err
	}
	page, err := svc.App(ctx, id, snap)
	if err != nil {
		return err
	}
	return printJSON(cmd, page)
}

func itemAction(ctx context.Context, cmd *cli.Command) error {
	id, err := arg(cmd, "item id")
	if err != nil {
		return err
	}
	svc, err := pages(cmd)
	if err != nil {
		return err
	}
	page, err := svc.Item(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(cmd, page)
}

func appsAction(ctx context.Context, cmd *cli.Command) error {
	svc, err := pages(cmd)
	if err != nil {
		return err
	}
	page, err := svc.Home(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, page)
}

func adminAction(ctx context.Context, cmd *cli.Command) error {
	svc, err := pages(cmd)
	if err != nil {
		return err
	}
	page, err := svc.Admin(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, page)
}

// client builds a workshop client from WORKSHOP_API_* with flag overrides
func client(cmd *cli.Command) (*workshop.Client, error) {
	opts := workshop.FromConfig(config.New().Prefix("WORKSHOP_API_"))
	if v := cmd.String("base-url"); v != "" {
		opts.BaseURL = v
	}
	if v := cmd.String("language-param"); v != "" {
		switch v {
		case query.KeyLanguage, query.KeyLanguages:
			opts.LanguageParam = v
		default:
			return nil, perr.WithField(
				perr.InvalidArgf("language-param must be %s or %s", query.KeyLanguage, query.KeyLanguages),
				"language-param",
			)
		}
	}
	if cmd.IsSet("timeout") {
		opts.Timeout = cmd.Duration("timeout")
	}
	return workshop.NewClient(opts), nil
}

func pages(cmd *cli.Command) (*service.Svc, error) {
	c, err := client(cmd)
	if err != nil {
		return nil, err
	}
	return service.New(c), nil
}

// snapshot validates the filter flags with the same rules the gateway applies
func snapshot(cmd *cli.Command, app string) (query.Snapshot, error) {
	in := domain.QueryInput{
		FilterInput: domain.FilterInput{
			Language:    cmd.String("language"),
			Tags:        cmd.StringSlice("tag"),
			OrderBy:     cmd.String("order-by"),
			Title:       cmd.String("title"),
			LastUpdated: cmd.String("last-updated"),
		},
		App: app,
	}
	if cmd.IsSet("limit") {
		n := int(cmd.Int("limit"))
		in.Limit = &n
	}
	if err := bind.Validate(in); err != nil {
		return query.Snapshot{}, err
	}
	return in.Snapshot()
}

func arg(cmd *cli.Command, name string) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", perr.InvalidArgf("exactly one %s is required", name)
	}
	return cmd.Args().First(), nil
}

func printJSON(cmd *cli.Command, v any) error {
	return writeJSON(cmd.Root().Writer, v, !cmd.Root().Bool("compact"))
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// exitCode maps input problems to 2 and everything else to 1
func exitCode(err error) int {
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	if perr.IsCode(err, perr.ErrorCodeInvalidArgument) || perr.IsCode(err, perr.ErrorCodeValidation) {
		return exitUsage
	}
	return exitFailure
}

// errorMessage is the line printed on failure. Errors a later run could get past say so
func errorMessage(err error) string {
	msg := "Error: " + err.Error()
	if perr.Retryable(err) {
		msg += " (the workshop backend may be down or busy, try again later)"
	}
	return msg
}

type languageName struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

func languagesAction(_ context.Context, cmd *cli.Command) error {
	in := cmd.String("in")
	if in == "" {
		return printJSON(cmd, langs.Names())
	}
	tag, err := language.Parse(in)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("in: %q is not a language tag", in), "in")
	}
	out := make([]languageName, 0, len(langs.Names()))
	for _, n := range langs.Names() {
		out = append(out, languageName{Name: n, Display: langs.Display(n, tag)})
	}
	return printJSON(cmd, out)
}
