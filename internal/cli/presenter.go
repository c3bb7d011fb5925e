package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/npcready/internal/config"
	apperrors "github.com/agbru/npcready/internal/errors"
	"github.com/agbru/npcready/internal/orchestration"
	"github.com/agbru/npcready/internal/ui"
)

// PrintRunConfig displays the entity, its subsystems and the deadline before
// an attempt starts.
func PrintRunConfig(cfg config.AppConfig, entity string, subsystems []string, out io.Writer) {
	s := ui.GetCurrentTheme().Styles()
	fmt.Fprintf(out, "%s\n", s.Title.Render("--- Readiness ---"))
	fmt.Fprintf(out, "Entity %s, %d subsystem(s), deadline %s.\n",
		s.Name.Render(entity), len(subsystems), s.Warning.Render(cfg.Deadline.String()))
	if len(subsystems) > 0 {
		fmt.Fprintf(out, "Start order: %s.\n", s.Muted.Render(strings.Join(subsystems, " → ")))
	}
	if cfg.MetricsAddr != "" {
		fmt.Fprintf(out, "Probes on %s.\n", s.Info.Render(cfg.MetricsAddr))
	}
}

// PresentOutcome renders the outcome of an attempt.
func PresentOutcome(entity string, o orchestration.Outcome, out io.Writer) {
	s := ui.GetCurrentTheme().Styles()
	elapsed := s.Muted.Render(FormatExecutionDuration(o.Elapsed))

	switch o.Kind {
	case orchestration.OutcomeSuccess:
		fmt.Fprintf(out, "%s %s is ready (%s)\n", s.Success.Render("✓"), s.Name.Render(entity), elapsed)
	case orchestration.OutcomeFailure:
		fmt.Fprintf(out, "%s %s failed to initialize (%s)\n", s.Error.Render("✗"), s.Name.Render(entity), elapsed)
		fmt.Fprintf(out, "  %s\n", s.Error.Render(o.String()))
	case orchestration.OutcomeTimedOut:
		fmt.Fprintf(out, "%s %s timed out after %s\n", s.Warning.Render("!"), s.Name.Render(entity), o.Deadline)
		fmt.Fprintf(out, "  %s\n", s.Warning.Render(o.String()))
	}
	if o.Kind != orchestration.OutcomeSuccess && len(o.Completed) > 0 {
		fmt.Fprintf(out, "  ready before the end: %s\n", s.Muted.Render(strings.Join(o.Completed, ", ")))
	}
}

// FormatQuietOutcome renders the outcome as one unstyled line.
func FormatQuietOutcome(entity string, o orchestration.Outcome) string {
	if o.Success() {
		return fmt.Sprintf("%s ready %s", entity, FormatExecutionDuration(o.Elapsed))
	}
	return fmt.Sprintf("%s %s: %s", entity, o.Kind, o.String())
}

// HandleError prints err and returns the matching process exit code.
func HandleError(err error, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	s := ui.GetCurrentTheme().Styles()
	fmt.Fprintf(out, "%s %v\n", s.Error.Render("Error:"), err)
	return apperrors.ExitCode(err)
}

// DisplayRoster prints a roster as YAML.
func DisplayRoster(r *config.Roster, out io.Writer) error {
	doc, err := r.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(doc)
	return err
}
