package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/common"
)

// reportAPIError prints a normalized gateway failure. A credential rejection
// needs no extra ceremony here: by the time the error reaches us the session
// is already torn down and the prompt reflects the unauthenticated state.
func (a *App) reportAPIError(err error) {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		fmt.Fprintln(a.out, "Session expired, please log in again")
	case errors.Is(err, common.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unreachable, try again later")
	default:
		fmt.Fprintf(a.out, "Request failed: %v\n", err)
	}
}

// Ideas prompts for a topic and prints generated content ideas.
func (a *App) Ideas(ctx context.Context) error {
	topic, err := getSimpleText(a.reader, "Topic", a.out)
	if err != nil {
		return err
	}

	ideas, err := a.api.GenerateIdeas(ctx, topic, "")
	if err != nil {
		a.reportAPIError(err)
		return nil
	}

	for _, idea := range ideas {
		fmt.Fprintf(a.out, "- [%s] %s\n", idea.ID, idea.Title)
	}
	return nil
}

// Scripts lists previously generated scripts.
func (a *App) Scripts(ctx context.Context) error {
	scripts, err := a.api.ListScripts(ctx)
	if err != nil {
		a.reportAPIError(err)
		return nil
	}

	for _, s := range scripts {
		fmt.Fprintf(a.out, "- [%s] %s\n", s.ID, s.Title)
	}
	return nil
}

// SEO prompts for a title and description and prints the analysis.
func (a *App) SEO(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	report, err := a.api.AnalyzeSEO(ctx, title, description)
	if err != nil {
		a.reportAPIError(err)
		return nil
	}

	fmt.Fprintf(a.out, "Score: %d\n", report.Score)
	for _, s := range report.Suggestions {
		fmt.Fprintf(a.out, "- %s\n", s)
	}
	return nil
}

// Calendar lists scheduled content slots.
func (a *App) Calendar(ctx context.Context) error {
	events, err := a.api.CalendarEvents(ctx)
	if err != nil {
		a.reportAPIError(err)
		return nil
	}

	for _, e := range events {
		fmt.Fprintf(a.out, "%s  %-10s %s (%s)\n", e.Date, e.Platform, e.Title, e.Status)
	}
	return nil
}
