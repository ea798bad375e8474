package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agisilaos/macsearch/internal/config"
)

type doctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type doctorReport struct {
	OK       bool          `json:"ok"`
	Failures int           `json:"failures"`
	Warnings int           `json:"warnings"`
	Checks   []doctorCheck `json:"checks"`
}

func (a App) cmdDoctor(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	strict := fs.Bool("strict", false, "Treat warnings as failures")
	if err := fs.Parse(args); err != nil {
		return newUsageError("doctor", "%v", err)
	}
	if len(fs.Args()) != 0 {
		return newUsageError("doctor", "usage: macsearch doctor [--strict]")
	}
	cfg, loadErr := config.Load()
	report := runDoctorChecks(cfg, loadErr)
	effectiveFailures := report.Failures
	if *strict {
		effectiveFailures += report.Warnings
	}
	switch {
	case g.JSON:
		if err := writeJSON(report); err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
	case g.Plain:
		writePlainTableHeader("status", "check", "message")
		for _, c := range report.Checks {
			writePlainTableRow(c.Status, c.Name, c.Message)
		}
		writePlainKV("ok", boolToPlain(report.OK), "failures", fmt.Sprint(report.Failures), "warnings", fmt.Sprint(report.Warnings))
	default:
		for _, c := range report.Checks {
			fmt.Printf("%s\t%s\t%s\n", strings.ToUpper(c.Status), c.Name, c.Message)
		}
		fmt.Printf("summary\tfailures=%d\twarnings=%d\n", report.Failures, report.Warnings)
	}
	if effectiveFailures > 0 {
		if *strict && report.Warnings > 0 && report.Failures == 0 {
			return newExitError(ExitGenericFailure, "doctor strict mode found %d warning(s)", report.Warnings)
		}
		return newExitError(ExitGenericFailure, "doctor found %d failing check(s)", report.Failures)
	}
	return nil
}

// runDoctorChecks reports on cfg. A non-nil loadErr fails config.load and the
// remaining checks run against whatever Load returned.
func runDoctorChecks(cfg config.Config, loadErr error) doctorReport {
	checks := []doctorCheck{}
	add := func(name, status, message string) {
		checks = append(checks, doctorCheck{Name: name, Status: status, Message: message})
	}

	if loadErr != nil {
		add("config.load", "fail", loadErr.Error())
	} else if path, err := config.ConfigPath(); err != nil {
		add("config.load", "fail", err.Error())
	} else {
		add("config.load", "ok", path)
	}

	switch err := validateEndpointsRuntime(cfg); {
	case err != nil:
		add("catalog.base_url", "fail", err.Error())
	case !isSecureBaseURL(cfg.BaseURL):
		add("catalog.base_url", "warn", fmt.Sprintf("%s is not https", cfg.BaseURL))
	default:
		add("catalog.base_url", "ok", cfg.BaseURL)
	}

	if dir, err := config.ConfigDir(); err != nil {
		add("paths.config", "fail", err.Error())
	} else if err := ensureWritableDir(dir); err != nil {
		add("paths.config", "fail", err.Error())
	} else {
		add("paths.config", "ok", dir)
	}

	if err := validateWaitRuntime(cfg); err != nil {
		add("catalog.wait_timeout", "warn", err.Error())
	} else {
		add("catalog.wait_timeout", "ok", cfg.WaitTimeout().String())
	}

	report := doctorReport{Checks: checks}
	for _, c := range checks {
		switch c.Status {
		case "fail":
			report.Failures++
		case "warn":
			report.Warnings++
		}
	}
	report.OK = report.Failures == 0
	return report
}

func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".macsearch-write-test")
	if err := os.WriteFile(probe, []byte("ok\n"), 0o600); err != nil {
		return err
	}
	return os.Remove(probe)
}
