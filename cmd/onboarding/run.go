package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/onboarding-engine/internal/auth"
	"github.com/jonathan/onboarding-engine/internal/complete"
	"github.com/jonathan/onboarding-engine/internal/config"
	"github.com/jonathan/onboarding-engine/internal/engine"
	"github.com/jonathan/onboarding-engine/internal/localstore"
	"github.com/jonathan/onboarding-engine/internal/session"
	"github.com/jonathan/onboarding-engine/internal/types"
)

var runFlags struct {
	configPath string
	apiURL     string
	userID     string
	cachePath  string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive onboarding wizard",
	RunE:  runWizard,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.configPath, "config", "", "path to JSON config file")
	runCmd.Flags().StringVar(&runFlags.apiURL, "api-url", "", "base URL of the onboarding API")
	runCmd.Flags().StringVar(&runFlags.userID, "user-id", "", "user UUID the session belongs to")
	runCmd.Flags().StringVar(&runFlags.cachePath, "cache", "", "path to the local session cache (SQLite)")
	rootCmd.AddCommand(runCmd)
}

func buildConfig() (*config.Config, error) {
	cfg := &config.Config{
		APIBaseURL: runFlags.apiURL,
		UserID:     runFlags.userID,
		CachePath:  runFlags.cachePath,
	}
	cfg = ptr(cfg.MergeWithDefaults(*config.FromEnv()))

	if runFlags.configPath != "" {
		fileCfg, err := config.LoadConfig(runFlags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = ptr(cfg.MergeWithDefaults(*fileCfg))
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("an API base URL is required (--api-url or ONBOARDING_API_URL)")
	}
	if cfg.UserID == "" {
		return nil, fmt.Errorf("a user ID is required (--user-id or ONBOARDING_USER_ID)")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ptr(c config.Config) *config.Config { return &c }

// cliNotifier prints engine notifications the way a toast would surface them.
type cliNotifier struct {
	out io.Writer
}

func (n *cliNotifier) Info(msg string)  { fmt.Fprintf(n.out, "✔ %s\n", msg) }
func (n *cliNotifier) Error(msg string) { fmt.Fprintf(n.out, "✖ %s\n", msg) }

func runWizard(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	var tokens auth.TokenProvider
	if cfg.Token != "" {
		tokens = auth.Static(cfg.Token)
	} else {
		tokens = auth.NewMinter(cfg.JWTSecret, userID, 24*time.Hour)
	}

	var opts *session.ClientOptions
	if cfg.TimeoutSeconds > 0 {
		opts = &session.ClientOptions{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	client := session.NewClient(cfg.APIBaseURL, tokens, opts)

	var local localstore.Store
	if cfg.CachePath != "" {
		sqlite, err := localstore.Open(cfg.CachePath)
		if err != nil {
			return fmt.Errorf("failed to open local cache: %w", err)
		}
		local = sqlite
	} else {
		local = localstore.NewMemory()
	}
	defer func() { _ = local.Close() }()

	coordinator := session.NewCoordinator(userID, local, client)
	submitter := complete.NewSubmitter(client, coordinator)

	eng := engine.New(engine.Config{
		UserID:        userID,
		Sessions:      coordinator,
		Submit:        submitter,
		Notify:        &cliNotifier{out: cmd.OutOrStdout()},
		Events:        client,
		AutosaveDelay: time.Duration(cfg.AutosaveMS) * time.Millisecond,
	})
	defer eng.Close()

	ctx := cmd.Context()
	eng.Load(ctx)

	out := cmd.OutOrStdout()
	in := bufio.NewReader(os.Stdin)

	if wb := eng.WelcomeBack(); wb != nil {
		fmt.Fprintf(out, "\n%s (last here %s, on the %s step)\n", wb.Message, wb.TimeAway, wb.LastStepName)
	}

	for {
		step := eng.CurrentStep()
		if step.Terminal() {
			printActivation(out, eng.Result())
			return nil
		}

		progress := eng.Progress()
		fmt.Fprintf(out, "\n── %s (step %d of %d, %d%% complete) ──\n",
			strings.ToUpper(string(step)), progress.CurrentStep+1, progress.TotalSteps, progress.PercentComplete)

		collectStep(out, in, eng, step)

		action := promptAction(out, in, step)
		switch action {
		case "n":
			if err := eng.NextStep(ctx); err != nil {
				// Completion failed; stay on the step for retry.
				continue
			}
			printErrors(out, eng.Errors())
		case "b":
			eng.PreviousStep(ctx)
		case "s":
			if err := eng.SkipStep(ctx); err != nil {
				continue
			}
		case "q":
			eng.Save(ctx)
			fmt.Fprintln(out, "Progress saved. See you soon.")
			return nil
		}
	}
}

// collectStep prompts for the current step's fields and feeds them to the
// engine as a wholesale section update.
func collectStep(out io.Writer, in *bufio.Reader, eng *engine.Engine, step types.Step) {
	data := eng.Data()

	switch step {
	case types.StepIdentity:
		identity := types.Identity{}
		if data.Identity != nil {
			identity = *data.Identity
		}
		identity.FullName = promptString(out, in, "Full name", identity.FullName)
		identity.PreferredName = promptString(out, in, "Preferred name", identity.PreferredName)
		eng.UpdateData(types.OnboardingData{Identity: &identity})

	case types.StepContext:
		info := types.ContextInfo{}
		if data.Context != nil {
			info = *data.Context
		}
		status := promptString(out, in, "Current status (student/professional/transitioning/exploring)", string(info.CurrentStatus))
		info.CurrentStatus = types.UserStatus(status)
		if years, ok := promptInt(out, in, "Years of experience"); ok {
			info.YearsExperience = &years
		}
		info.Location = promptString(out, in, "Location", info.Location)
		info.IsRemoteOpen = promptBool(out, in, "Open to remote work?")
		eng.UpdateData(types.OnboardingData{Context: &info})

	case types.StepExpertise:
		expertise := types.Expertise{}
		if data.Expertise != nil {
			expertise = *data.Expertise
		}
		if skills := promptList(out, in, "Skills (comma separated, at least 3)"); len(skills) > 0 {
			expertise.Skills = skills
		}
		eng.UpdateData(types.OnboardingData{Expertise: &expertise})

	case types.StepAspirations:
		asp := types.Aspirations{}
		if data.Aspirations != nil {
			asp = *data.Aspirations
		}
		asp.DreamRole = promptString(out, in, "Dream role (optional)", asp.DreamRole)
		if months, ok := promptInt(out, in, "Timeline in months (6/12/24/36/60, optional)"); ok && types.ValidTimeline(months) {
			asp.TimelineMonths = months
		}
		asp.LongTermVision = promptString(out, in, "Long-term vision (optional)", asp.LongTermVision)
		eng.UpdateData(types.OnboardingData{Aspirations: &asp})

	case types.StepPreferences:
		prefs := types.Preferences{}
		if data.Preferences != nil {
			prefs = *data.Preferences
		}
		if values := promptList(out, in, "Culture values, most important first (optional)"); len(values) > 0 {
			prefs.CultureValues = values
		}
		if industries := promptList(out, in, "Industries of interest (optional)"); len(industries) > 0 {
			prefs.Industries = industries
		}
		eng.UpdateData(types.OnboardingData{Preferences: &prefs})
	}
}

func promptAction(out io.Writer, in *bufio.Reader, step types.Step) string {
	options := "[n]ext  [b]ack  [q]uit"
	if step.Optional() {
		options = "[n]ext  [b]ack  [s]kip  [q]uit"
	}
	for {
		fmt.Fprintf(out, "%s > ", options)
		line, err := in.ReadString('\n')
		if err != nil {
			return "q"
		}
		switch answer := strings.ToLower(strings.TrimSpace(line)); answer {
		case "n", "b", "q":
			return answer
		case "s":
			if step.Optional() {
				return answer
			}
		}
	}
}

func promptString(out io.Writer, in *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	line, err := in.ReadString('\n')
	if err != nil {
		return current
	}
	if answer := strings.TrimSpace(line); answer != "" {
		return answer
	}
	return current
}

func promptInt(out io.Writer, in *bufio.Reader, label string) (int, bool) {
	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, false
	}
	return n, true
}

func promptBool(out io.Writer, in *bufio.Reader, label string) bool {
	fmt.Fprintf(out, "%s (y/n): ", label)
	line, err := in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func promptList(out io.Writer, in *bufio.Reader, label string) []string {
	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil {
		return nil
	}
	var items []string
	for _, item := range strings.Split(line, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func printErrors(out io.Writer, errors map[string]string) {
	for field, msg := range errors {
		fmt.Fprintf(out, "  %s: %s\n", field, msg)
	}
}

func printActivation(out io.Writer, result *complete.Result) {
	fmt.Fprintln(out, "\n── ACTIVATION ──")
	if result == nil {
		fmt.Fprintln(out, "Profile setup finished.")
		return
	}
	fmt.Fprintf(out, "Profile completeness: %d%%\n", result.Completeness)
	if len(result.Features) > 0 {
		fmt.Fprintf(out, "Unlocked features:   %s\n", strings.Join(result.Features, ", "))
	}
}
