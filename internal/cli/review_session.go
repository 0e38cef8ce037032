// Package cli implements the interactive terminal front-end: the review
// session loop and the plan/recap printers.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/studycoach/studycoach/internal/dates"
	"github.com/studycoach/studycoach/internal/review"
)

// errEnd signals the normal end of an interactive session.
var errEnd = errors.New("session finished")

// skipPhrases are the explicit answers that grade as a failed recall. Any
// other non-trivial answer counts as a pass; answer grading is deliberately
// not a language-understanding problem.
var skipPhrases = map[string]struct{}{
	"pass":         {},
	"skip":         {},
	"don't know":   {},
	"i don't know": {},
}

// NormalizeAnswer maps a free-text answer onto a review result.
func NormalizeAnswer(answer string) review.Result {
	normalized := strings.ToLower(strings.TrimSpace(answer))
	if normalized == "" {
		return review.ResultFail
	}
	if _, ok := skipPhrases[normalized]; ok {
		return review.ResultFail
	}
	return review.ResultPass
}

// ReviewSession runs an interactive spaced-repetition review over the items
// that are due today.
type ReviewSession struct {
	reviews      review.Repository
	userID       string
	today        dates.Date
	queue        []string
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// NewReviewSession creates a review session for the user's due items.
func NewReviewSession(ctx context.Context, reviews review.Repository, userID string, today dates.Date) (*ReviewSession, error) {
	states, err := reviews.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reviews.FindByUser() > %w", err)
	}

	return &ReviewSession{
		reviews:      reviews,
		userID:       userID,
		today:        today,
		queue:        review.DueForReview(states, today),
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}, nil
}

// DueCount returns how many items the session will ask about.
func (s *ReviewSession) DueCount() int {
	return len(s.queue)
}

// Run drives the review loop until the queue is drained or the user
// interrupts.
func (s *ReviewSession) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := s.next(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return err
		}
	case <-ctx.Done():
	}
	return nil
}

// next asks about one due item, grades the answer, and advances its state.
func (s *ReviewSession) next(ctx context.Context) error {
	if len(s.queue) == 0 {
		fmt.Fprintln(s.stdoutWriter, "All caught up. Nothing is due for review.")
		return errEnd
	}

	itemID := s.queue[0]
	s.queue = s.queue[1:]

	if _, err := s.bold.Fprintf(s.stdoutWriter, "Recall item %s\n", itemID); err != nil {
		return fmt.Errorf("bold.Fprintf() > %w", err)
	}
	if _, err := s.italic.Fprint(s.stdoutWriter, "Your answer (or \"skip\"): "); err != nil {
		return fmt.Errorf("italic.Fprint() > %w", err)
	}

	answer, err := s.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errEnd
		}
		return fmt.Errorf("stdinReader.ReadString() > %w", err)
	}
	result := NormalizeAnswer(answer)

	state, err := s.reviews.Get(ctx, s.userID, itemID)
	if err != nil {
		return fmt.Errorf("reviews.Get() > %w", err)
	}
	if state == nil {
		seeded := review.NewState(s.userID, itemID, s.today)
		state = &seeded
	}

	updated := review.Advance(*state, result, s.today)
	if err := s.reviews.Save(ctx, updated); err != nil {
		return fmt.Errorf("reviews.Save() > %w", err)
	}

	if result == review.ResultPass {
		fmt.Fprintf(s.stdoutWriter, "Nice. Next review on %s.\n\n", updated.NextReviewDate)
	} else {
		fmt.Fprintf(s.stdoutWriter, "No worries, we'll try again tomorrow.\n\n")
	}
	return nil
}
