// Command spendctl is a terminal front end for the expense API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"spendbook/client"
	"spendbook/dashboard"
	"spendbook/models"
	"spendbook/report"
	"spendbook/session"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

const usage = `Usage: spendctl [-api URL] [-session FILE] <command> [flags]

Commands:
  signup      create a local account and sign in
  login       sign in
  logout      sign out
  whoami      show the signed-in user
  health      check the backend
  categories  list the expense categories
  list        list expenses (-category, -month)
  summary     totals and category breakdown (-category, -month)
  add         add an expense
  edit        change an expense (-id and the fields to change)
  delete      delete an expense (-id)
`

// errNotSignedIn mirrors the dashboard being reachable only after login.
var errNotSignedIn = errors.New("not signed in, run spendctl login or spendctl signup first")

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode reports err and maps it to the process status. Asking for help is not a failure.
func exitCode(err error, stderr io.Writer) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// app is what every command gets.
type app struct {
	api     *client.Client
	session *session.Session
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"signup":     cmdSignup,
	"login":      cmdLogin,
	"logout":     cmdLogout,
	"whoami":     cmdWhoami,
	"health":     cmdHealth,
	"categories": cmdCategories,
	"list":       cmdList,
	"summary":    cmdSummary,
	"add":        cmdAdd,
	"edit":       cmdEdit,
	"delete":     cmdDelete,
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spendbook-session.json"
	}
	return filepath.Join(home, ".spendbook", "session.json")
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("spendctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	apiURL := fs.String("api", envOr("SPENDBOOK_API", client.DefaultBaseURL), "backend base URL")
	sessionPath := fs.String("session", envOr("SPENDBOOK_SESSION", defaultSessionPath()), "local session file")
	timeout := fs.Duration("timeout", 30*time.Second, "request timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprint(stdout, usage)
		return errors.New("missing command")
	}

	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	a := &app{
		api:     client.New(*apiURL, client.WithTimeout(*timeout)),
		session: session.New(session.NewFileStorage(*sessionPath)),
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}
	if _, err := a.session.Restore(); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}

	return cmd(ctx, a, fs.Args()[1:])
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) requireUser() error {
	if a.session.User() == nil {
		return errNotSignedIn
	}
	return nil
}

func (a *app) password(given string) (string, error) {
	if given != "" {
		return given, nil
	}
	fmt.Fprint(a.stdout, "Password: ")
	password, err := readPassword(a.stdin)
	fmt.Fprintln(a.stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func cmdSignup(_ context.Context, a *app, args []string) error {
	fs := a.flags("signup")
	email := fs.String("email", "", "email")
	name := fs.String("name", "", "display name")
	passwordFlag := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *name == "" {
		return errors.New("missing required flags: email, name")
	}

	password, err := a.password(*passwordFlag)
	if err != nil {
		return err
	}
	user, err := a.session.Signup(*email, password, *name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Account created successfully! Welcome, %s\n", user.Name)
	return nil
}

func cmdLogin(_ context.Context, a *app, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "email")
	passwordFlag := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("missing required flags: email")
	}

	password, err := a.password(*passwordFlag)
	if err != nil {
		return err
	}
	user, err := a.session.Login(*email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Logged in successfully! Welcome, %s\n", user.Name)
	return nil
}

func cmdLogout(_ context.Context, a *app, _ []string) error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Logged out successfully")
	return nil
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	user := a.session.User()
	fmt.Fprintf(a.stdout, "%s <%s>\n", user.Name, user.Email)
	return nil
}

func cmdHealth(ctx context.Context, a *app, _ []string) error {
	health, err := a.api.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s %s\n", health.Status, health.Timestamp.Format(time.RFC3339))
	return nil
}

func cmdCategories(_ context.Context, a *app, _ []string) error {
	for _, c := range models.GetCategories() {
		fmt.Fprintln(a.stdout, c)
	}
	return nil
}

// loadDashboard fetches the list and applies the -category and -month flags.
func (a *app) loadDashboard(ctx context.Context, name string, args []string) (*dashboard.Dashboard, error) {
	fs := a.flags(name)
	category := fs.String("category", models.CategoryAll, "category or all")
	month := fs.String("month", "", "month as YYYY-MM")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := a.requireUser(); err != nil {
		return nil, err
	}

	d := dashboard.New(a.api, dashboard.WithNotifier(a))
	if err := d.SetFilter(report.Filter{Category: *category, Month: *month}); err != nil {
		return nil, err
	}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

func cmdList(ctx context.Context, a *app, args []string) error {
	d, err := a.loadDashboard(ctx, "list", args)
	if err != nil {
		return err
	}

	expenses := d.Filtered()
	if len(expenses) == 0 {
		fmt.Fprintln(a.stdout, "No expenses found")
		return nil
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tTITLE")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t$%s\t%s\n", e.ID, e.Date.Format(time.DateOnly), e.Category, report.FormatAmount(e.Amount), e.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "\nTotal: $%s (%d transactions)\n", report.FormatAmount(d.Total()), d.Count())
	return nil
}

func cmdSummary(ctx context.Context, a *app, args []string) error {
	d, err := a.loadDashboard(ctx, "summary", args)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Total Expenses: $%s\n%d transactions\n\n", report.FormatAmount(d.Total()), d.Count())

	chart := d.Chart()
	if len(chart) == 0 {
		fmt.Fprintln(a.stdout, "No data available for chart")
		return nil
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTOTAL\tSHARE")
	for _, s := range chart {
		fmt.Fprintf(tw, "%s\t$%s\t%.0f%%\n", s.Category, report.FormatAmount(s.Total), s.Percent)
	}
	return tw.Flush()
}

func expenseFlags(fs *flag.FlagSet) (title, category, date *string, amount *float64) {
	title = fs.String("title", "", "title")
	amount = fs.Float64("amount", 0, "amount")
	category = fs.String("category", "", "category, see spendctl categories")
	date = fs.String("date", "", "date as YYYY-MM-DD")
	return
}

func cmdAdd(ctx context.Context, a *app, args []string) error {
	fs := a.flags("add")
	title, category, date, amount := expenseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireUser(); err != nil {
		return err
	}
	if *date == "" {
		*date = time.Now().Format(time.DateOnly)
	}

	d := dashboard.New(a.api, dashboard.WithNotifier(a))
	created, err := d.Add(ctx, client.Input{Title: *title, Amount: *amount, Category: *category, Date: *date})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, created.ID)
	return nil
}

func cmdEdit(ctx context.Context, a *app, args []string) error {
	fs := a.flags("edit")
	id := fs.String("id", "", "expense id")
	title, category, date, amount := expenseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireUser(); err != nil {
		return err
	}

	current, err := a.api.Get(ctx, *id)
	if err != nil {
		return err
	}

	// start from the stored values, like the edit form does
	in := client.Input{
		Title:    current.Title,
		Amount:   current.Amount,
		Category: current.Category,
		Date:     current.Date.Format(time.DateOnly),
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			in.Title = *title
		case "amount":
			in.Amount = *amount
		case "category":
			in.Category = *category
		case "date":
			in.Date = *date
		}
	})

	d := dashboard.New(a.api, dashboard.WithNotifier(a))
	_, err = d.Update(ctx, current.ID, in)
	return err
}

func cmdDelete(ctx context.Context, a *app, args []string) error {
	fs := a.flags("delete")
	id := fs.String("id", "", "expense id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireUser(); err != nil {
		return err
	}

	d := dashboard.New(a.api, dashboard.WithNotifier(a))
	return d.Delete(ctx, *id)
}

// Success and Error make the app the dashboard's notifier.
func (a *app) Success(message string) {
	fmt.Fprintln(a.stdout, message)
}

func (a *app) Error(message string) {
	fmt.Fprintln(a.stderr, message)
}
