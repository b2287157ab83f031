package initcmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/charmbracelet/huh"
)

// Wizard manages the interactive configuration wizard.
type Wizard struct {
	state      *WizardState
	outputPath string
}

// NewWizard creates a new wizard instance.
func NewWizard() *Wizard {
	return &Wizard{
		state: NewWizardState(),
	}
}

// SetOutputPath sets the output path (from command line flag).
func (w *Wizard) SetOutputPath(path string) {
	w.outputPath = path
	if path != "" {
		w.state.ConfigPath = path
	}
}

// Run executes the wizard flow.
func (w *Wizard) Run() error {
	// Setup signal handling for graceful Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer func() {
		signal.Stop(sigChan)
		close(sigChan)
	}()
	go func() {
		if _, ok := <-sigChan; !ok {
			return
		}
		fmt.Println()
		fmt.Println(RenderWarning("Setup canceled by user"))
		os.Exit(0)
	}()

	// Print header
	fmt.Println()
	fmt.Println(RenderHeader())
	fmt.Println()

	// Step 1: Welcome and file configuration
	if err := NewWelcomeForm(w.state).Run(); err != nil {
		return w.handleError(err)
	}

	// Step 2: Check for existing file
	if err := w.handleExistingFile(); err != nil {
		return err
	}

	// Step 3: Scan configuration
	fmt.Println(RenderSection("Scan Configuration"))
	if err := NewScanForm(w.state).Run(); err != nil {
		return w.handleError(err)
	}

	// Step 4: Report configuration
	fmt.Println(RenderSection("Report Configuration"))
	if err := NewOutputForm(w.state).Run(); err != nil {
		return w.handleError(err)
	}

	// Step 5: Observability
	fmt.Println(RenderSection("Observability"))
	if err := NewAdvancedForm(w.state).Run(); err != nil {
		return w.handleError(err)
	}

	// Step 6: Stored hosts (loop)
	fmt.Println(RenderSection("Hosts"))
	if err := w.runHostForms(); err != nil {
		return w.handleError(err)
	}

	// Step 7: Generate and validate config
	cfg, err := w.state.ToConfig()
	if err != nil {
		return w.handleError(fmt.Errorf("failed to create configuration: %w", err))
	}

	if err := cfg.Validate(); err != nil {
		return w.handleValidationError(err)
	}

	// Step 8: Write config file
	fmt.Println()
	if err := WriteConfig(cfg, w.state.ConfigPath); err != nil {
		return w.handleError(err)
	}

	// Step 9: Show success and next steps
	w.showSuccess()

	return nil
}

func (w *Wizard) runHostForms() error {
	hostNum := 1

	for {
		// Reset current host for new entry
		w.state.ResetCurrentHost()

		if err := NewHostForm(w.state, hostNum).Run(); err != nil {
			return err
		}

		w.state.SaveCurrentHost()

		// Check if user wants to add more
		if !w.state.AddAnother {
			break
		}

		hostNum++
	}

	return nil
}

func (w *Wizard) handleExistingFile() error {
	if !FileExists(w.state.ConfigPath) {
		return nil
	}

	form := NewOverwriteConfirmForm(w.state, w.state.ConfigPath)
	if err := form.Run(); err != nil {
		return w.handleError(err)
	}

	if !w.state.OverwriteFile {
		fmt.Println(RenderWarning("Setup canceled: file already exists"))
		os.Exit(0)
	}

	return nil
}

func (w *Wizard) handleError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Println()
		fmt.Println(RenderWarning("Setup canceled"))
		os.Exit(0)
	}
	fmt.Println()
	fmt.Println(RenderError(err.Error()))
	return err
}

func (w *Wizard) handleValidationError(err error) error {
	fmt.Println()
	fmt.Println(RenderError("Configuration validation failed:"))
	fmt.Println(RenderError("  " + err.Error()))
	fmt.Println()
	fmt.Println(RenderInfo("Please run 'cw-certscan init' again with corrected values."))
	return err
}

func (w *Wizard) showSuccess() {
	fmt.Println()
	fmt.Println(RenderSuccess("Config written to " + w.state.ConfigPath))
	fmt.Println(RenderSuccess("Validated successfully"))
	fmt.Println()

	concurrency := w.state.ConcurrencyStr
	if concurrency == "" || concurrency == "0" {
		concurrency = "auto"
	}

	// Show summary
	fmt.Println(RenderTitle("Configuration Summary:"))
	fmt.Println(RenderField("Port", w.state.PortStr))
	fmt.Println(RenderField("Concurrency", concurrency))
	fmt.Println(RenderField("Timeout", w.state.Timeout))
	fmt.Println(RenderField("Format", w.state.Format))
	fmt.Println(RenderField("Stored hosts", strconv.Itoa(len(w.state.Hosts))))
	fmt.Println()

	fmt.Println(RenderTitle("Next steps:"))
	fmt.Println()
	fmt.Println("  To validate your config:")
	fmt.Println("    " + RenderCode("cw-certscan validate -c "+w.state.ConfigPath))
	fmt.Println()
	fmt.Println("  To scan a list of hosts:")
	fmt.Println("    " + RenderCode("cw-certscan -c "+w.state.ConfigPath+" hosts.txt report.txt"))
	fmt.Println()
}

// RunNonInteractive runs the wizard in non-interactive mode using environment variables.
func RunNonInteractive(outputPath string) error {
	state := NewWizardState()
	if outputPath != "" {
		state.ConfigPath = outputPath
	}

	// Read from environment variables
	if port := os.Getenv("CW_SCAN_PORT"); port != "" {
		state.PortStr = port
	}

	if concurrency := os.Getenv("CW_SCAN_CONCURRENCY"); concurrency != "" {
		state.ConcurrencyStr = concurrency
	}

	if timeout := os.Getenv("CW_SCAN_TIMEOUT"); timeout != "" {
		state.Timeout = timeout
	}

	if format := os.Getenv("CW_OUTPUT_FORMAT"); format != "" {
		state.Format = format
	}

	if sortStr := os.Getenv("CW_OUTPUT_SORT"); sortStr != "" {
		sorted, err := strconv.ParseBool(sortStr)
		if err != nil {
			return fmt.Errorf("CW_OUTPUT_SORT must be a boolean: %w", err)
		}
		state.Sort = sorted
	}

	if level := os.Getenv("CW_LOG_LEVEL"); level != "" {
		state.LogLevel = level
	}

	state.LogFile = os.Getenv("CW_LOG_FILE")
	state.MetricsTextfile = os.Getenv("CW_METRICS_TEXTFILE")

	// Parse hosts from CW_HOSTS (comma-separated hostnames)
	state.Hosts = parseHosts(os.Getenv("CW_HOSTS"))
	for _, h := range state.Hosts {
		if err := ValidateHostname(h); err != nil {
			return fmt.Errorf("CW_HOSTS: %q: %w", h, err)
		}
	}

	// Convert and validate
	cfg, err := state.ToConfig()
	if err != nil {
		return fmt.Errorf("failed to create configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// Write config
	if err := WriteConfig(cfg, state.ConfigPath); err != nil {
		return err
	}

	fmt.Println(RenderSuccess("Config written to " + state.ConfigPath))
	return nil
}
