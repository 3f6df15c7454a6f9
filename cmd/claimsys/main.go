/*
main.go - Application entry point

PURPOSE:
  Wires configuration, logging, the selected persistence backend and the
  domain services together, then dispatches one command. This CLI is the UI
  collaborator of the claim engine: it collects raw input, calls the typed
  operations and renders the structured results. There is no network surface.

COMMANDS:
  register  Register a lecturer account
  submit    Submit a work-hour claim (with optional supporting document)
  login     Verify lecturer credentials and re-evaluate pending claims
  approve   Approve a claim (manager)
  reject    Reject a claim (manager)
  claims    List claims, optionally for one lecturer
  report    Approved-claims report (HR), optionally exported to .xlsx
  invoice   Per-lecturer claim report (HR), optionally exported to .xlsx
  open      Open a claim's supporting document with the default viewer

GLOBAL FLAGS:
  -config  Path to a YAML config file (optional)
  -data    Override the application data directory

EXAMPLES:
  claimsys register -id L001 -name "A. Mokoena" -email a@uni.ac.za -password s3cret
  claimsys submit -id L001 -name "A. Mokoena" -email a@uni.ac.za -hours 10 -rate 15
  claimsys approve -claim 6f1fdc6e-...
  claimsys report -xlsx approved.xlsx
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/campuspay/claim-engine/attach"
	"github.com/campuspay/claim-engine/claim"
	"github.com/campuspay/claim-engine/config"
	"github.com/campuspay/claim-engine/export"
	"github.com/campuspay/claim-engine/lecturer"
	"github.com/campuspay/claim-engine/store/jsonfile"
	"github.com/campuspay/claim-engine/store/memory"
	"github.com/campuspay/claim-engine/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	dataDir := flag.String("data", "", "override the application data directory")
	flag.Usage = usage
	flag.Parse()

	if err := run(*configPath, *dataDir, flag.Args()); err != nil {
		if claim.IsInformational(err) {
			fmt.Println(err)
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath, dataDir string, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
		cfg.FilesDir = filepath.Join(dataDir, "Files")
		cfg.Store.SQLitePath = filepath.Join(dataDir, "claims.db")
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}

	claimStore, lecturerStore, closeStore, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	attachments, err := attach.NewManager(cfg.FilesDir, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	directory, err := lecturer.NewDirectory(ctx, lecturerStore, logger)
	if err != nil {
		return err
	}
	engine, err := claim.NewEngine(ctx, claimStore, attachments, directory, logger)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		usage()
		return nil
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return runRegister(ctx, directory, rest)
	case "submit":
		return runSubmit(ctx, engine, rest)
	case "login":
		return runLogin(ctx, directory, engine, rest)
	case "approve":
		return runDecide(ctx, engine, claim.DecisionApprove, rest)
	case "reject":
		return runDecide(ctx, engine, claim.DecisionReject, rest)
	case "claims":
		return runClaims(engine, rest)
	case "report":
		return runReport(engine, rest)
	case "invoice":
		return runInvoice(engine, rest)
	case "open":
		return runOpen(engine, attachments, rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: claimsys [-config file] [-data dir] <command> [flags]

commands:
  register  register a lecturer account
  submit    submit a work-hour claim
  login     verify credentials and re-evaluate pending claims
  approve   approve a claim
  reject    reject a claim
  claims    list claims
  report    approved-claims report
  invoice   per-lecturer claim report
  open      open a claim's supporting document`)
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func openStores(cfg *config.Config) (claim.Store, lecturer.Store, func() error, error) {
	switch cfg.Store.Backend {
	case "json":
		s, err := jsonfile.New(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, err
		}
		return s.Claims(), s.Lecturers(), func() error { return nil }, nil
	case "sqlite":
		s, err := sqlite.New(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return s.Claims(), s.Lecturers(), s.Close, nil
	case "memory":
		return memory.NewCollection[claim.Claim](),
			memory.NewCollection[lecturer.Lecturer](),
			func() error { return nil }, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// =============================================================================
// COMMANDS
// =============================================================================

func runRegister(ctx context.Context, directory *lecturer.Directory, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	id := fs.String("id", "", "lecturer id")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	rec, err := directory.Register(ctx, lecturer.RegisterInput{
		LecturerID: *id,
		FullName:   *name,
		Email:      *email,
		Password:   *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("lecturer %s (%s) registered\n", rec.LecturerID, rec.FullName)
	return nil
}

func runSubmit(ctx context.Context, engine *claim.Engine, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	name := fs.String("name", "", "lecturer name")
	id := fs.String("id", "", "lecturer id")
	email := fs.String("email", "", "lecturer email")
	hours := fs.String("hours", "", "hours worked")
	rate := fs.String("rate", "", "hourly rate")
	notes := fs.String("notes", "", "notes")
	file := fs.String("file", "", "supporting document path")
	fs.Parse(args)

	c, err := engine.Submit(ctx, claim.SubmitInput{
		LecturerName:   *name,
		LecturerID:     *id,
		LecturerEmail:  *email,
		HoursWorked:    *hours,
		HourlyRate:     *rate,
		Notes:          *notes,
		AttachmentPath: *file,
	})
	if err != nil {
		return err
	}

	fmt.Printf("claim %s submitted: total %s, status %s\n", c.ID, c.TotalAmount, c.Status)
	if c.Status == claim.StatusRejected {
		fmt.Println("claim automatically rejected: total amount less than 100")
	}
	return nil
}

func runLogin(ctx context.Context, directory *lecturer.Directory, engine *claim.Engine, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	id := fs.String("id", "", "lecturer id")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	rec, err := directory.Authenticate(*id, *password)
	if err != nil {
		return err
	}
	fmt.Printf("welcome, %s\n", rec.FullName)

	if _, err := engine.ReEvaluateOnLogin(ctx, rec.LecturerID); err != nil {
		return err
	}
	return printClaims(engine.ClaimsFor(rec.LecturerID))
}

func runDecide(ctx context.Context, engine *claim.Engine, d claim.Decision, args []string) error {
	fs := flag.NewFlagSet("decide", flag.ExitOnError)
	claimID := fs.String("claim", "", "claim id")
	fs.Parse(args)

	if err := engine.Decide(ctx, *claimID, d); err != nil {
		return err
	}
	fmt.Printf("claim %s: %s\n", *claimID, d)
	return nil
}

func runClaims(engine *claim.Engine, args []string) error {
	fs := flag.NewFlagSet("claims", flag.ExitOnError)
	lecturerID := fs.String("lecturer", "", "only claims for this lecturer id")
	fs.Parse(args)

	if *lecturerID != "" {
		return printClaims(engine.ClaimsFor(*lecturerID))
	}
	return printClaims(engine.Claims())
}

func runReport(engine *claim.Engine, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	xlsx := fs.String("xlsx", "", "also export the report to this .xlsx file")
	fs.Parse(args)

	lines, err := engine.ReportApproved()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, l := range lines {
		fmt.Fprintf(w, "%s\t%s (%s)\tTotal R%s\n", l.DateSubmitted, l.LecturerName, l.LecturerID, l.TotalAmount)
	}
	w.Flush()

	if *xlsx != "" {
		if err := export.ApprovedClaims(lines, *xlsx); err != nil {
			return err
		}
		fmt.Printf("report exported to %s\n", *xlsx)
	}
	return nil
}

func runInvoice(engine *claim.Engine, args []string) error {
	fs := flag.NewFlagSet("invoice", flag.ExitOnError)
	lecturerID := fs.String("lecturer", "", "lecturer id")
	xlsx := fs.String("xlsx", "", "also export the invoice to this .xlsx file")
	fs.Parse(args)

	inv, err := engine.InvoiceFor(*lecturerID)
	if err != nil {
		return err
	}

	fmt.Printf("Invoice / Claim Report for %s (%s):\n\n", inv.LecturerName, inv.LecturerID)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, l := range inv.Lines {
		fmt.Fprintf(w, "%s\t%s\tTotal R%s\t%s\n", l.DateSubmitted, l.Notes, l.TotalAmount, l.Status)
	}
	w.Flush()

	if *xlsx != "" {
		if err := export.Invoice(inv, *xlsx); err != nil {
			return err
		}
		fmt.Printf("invoice exported to %s\n", *xlsx)
	}
	return nil
}

func runOpen(engine *claim.Engine, attachments *attach.Manager, args []string) error {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	claimID := fs.String("claim", "", "claim id")
	fs.Parse(args)

	for _, c := range engine.Claims() {
		if c.ID != *claimID {
			continue
		}
		if c.StoredFilePath == "" {
			return fmt.Errorf("claim %s has no supporting document", c.ID)
		}
		return attachments.Open(c.StoredFilePath)
	}
	return claim.ErrClaimNotFound
}

func printClaims(claims []claim.Claim) error {
	if len(claims) == 0 {
		fmt.Println("no claims")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDate\tLecturer\tHours\tRate\tTotal\tStatus\tFile")
	for _, c := range claims {
		file := "-"
		if c.OriginalFileName != "" {
			file = c.OriginalFileName
		}
		fmt.Fprintf(w, "%s\t%s\t%s (%s)\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.DateSubmitted, c.LecturerName, c.LecturerID,
			c.HoursWorked, c.HourlyRate, c.TotalAmount, c.Status, file)
	}
	return w.Flush()
}
