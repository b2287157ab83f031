package initcmd

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/certwatch-app/cw-certscan/internal/render"
)

// NewWelcomeForm creates the welcome and file configuration form.
func NewWelcomeForm(state *WizardState) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to CertWatch Certificate Scanner Setup!").
				Description("This wizard will help you create a configuration file for cw-certscan.\n\n"+
					"Hosts are normally read from a file or stdin at scan time;\n"+
					"you can also store a fixed list of hosts in the configuration."),

			huh.NewInput().
				Title("Config file path").
				Description("Where to save the configuration file").
				Placeholder(DefaultConfigPath).
				Value(&state.ConfigPath).
				Validate(ValidateConfigPath),
		),
	).WithTheme(CreateTheme())
}

// NewScanForm creates the probe configuration form.
func NewScanForm(state *WizardState) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Scan Configuration").
				Description("Configure how hosts are probed"),

			huh.NewInput().
				Title("Default Port").
				Description("TLS port for hosts listed without one (default: 443)").
				Placeholder("443").
				Value(&state.PortStr).
				Validate(ValidatePort),

			huh.NewInput().
				Title("Concurrency").
				Description("Maximum probes in flight. 0 picks a size from the CPU count.").
				Placeholder("0").
				Value(&state.ConcurrencyStr).
				Validate(ValidateConcurrency),

			huh.NewSelect[string]().
				Title("Timeout").
				Description("Bound on each connection attempt").
				Options(
					huh.NewOption("None (platform default)", "0s"),
					huh.NewOption("5 seconds", "5s"),
					huh.NewOption("10 seconds (recommended)", "10s"),
					huh.NewOption("30 seconds", "30s"),
				).
				Value(&state.Timeout),
		),
	).WithTheme(CreateTheme())
}

// NewOutputForm creates the report and logging configuration form.
func NewOutputForm(state *WizardState) *huh.Form {
	formatOptions := make([]huh.Option[string], 0, len(render.Formats()))
	for _, f := range render.Formats() {
		formatOptions = append(formatOptions, huh.NewOption(f, f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Report Configuration").
				Description("Configure the report and logging"),

			huh.NewSelect[string]().
				Title("Report Format").
				Description("text is the classic per-status certificate dump").
				Options(formatOptions...).
				Value(&state.Format),

			huh.NewConfirm().
				Title("Sort hosts by name within each status?").
				Value(&state.Sort).
				Affirmative("Yes").
				Negative("No"),

			huh.NewSelect[string]().
				Title("Log Level").
				Description("Logging verbosity").
				Options(
					huh.NewOption("Debug (verbose)", "debug"),
					huh.NewOption("Info (recommended)", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error (quiet)", "error"),
				).
				Value(&state.LogLevel),
		),
	).WithTheme(CreateTheme())
}

// NewAdvancedForm creates the advanced configuration form for observability.
func NewAdvancedForm(state *WizardState) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Observability Settings").
				Description("Configure log files and metrics export (optional)"),

			huh.NewInput().
				Title("Log File").
				Description("Also write JSON logs to this rotating file. Leave empty to disable.").
				Placeholder("/var/log/cw-certscan.log").
				Value(&state.LogFile).
				Validate(ValidateOptionalPath),

			huh.NewInput().
				Title("Metrics Textfile").
				Description("Prometheus textfile collector output. Leave empty to disable.").
				Placeholder("/var/lib/node_exporter/textfile/certscan.prom").
				Value(&state.MetricsTextfile).
				Validate(ValidateOptionalPath),
		),
	).WithTheme(CreateTheme())
}

// NewHostForm creates a host entry form.
func NewHostForm(state *WizardState, hostNum int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("Host #%d", hostNum)).
				Description("Add a host to scan on every run. Leave empty to skip."),

			huh.NewInput().
				Title("Hostname").
				Description("The hostname to check, optionally with a port (e.g., api.example.com:8443)").
				Placeholder("api.example.com").
				Value(&state.CurrentHost).
				Validate(ValidateHostname),

			huh.NewConfirm().
				Title("Add another host?").
				Value(&state.AddAnother).
				Affirmative("Yes").
				Negative("No"),
		),
	).WithTheme(CreateTheme())
}

// NewOverwriteConfirmForm creates a form to confirm file overwrite.
func NewOverwriteConfirmForm(state *WizardState, path string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("File '%s' already exists. Overwrite?", path)).
				Description("The existing file will be replaced with the new configuration.").
				Value(&state.OverwriteFile).
				Affirmative("Yes, overwrite").
				Negative("No, cancel"),
		),
	).WithTheme(CreateTheme())
}
