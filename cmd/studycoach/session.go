package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/studycoach/studycoach/internal/focus"
)

func newSessionCommand() *cobra.Command {
	sessionCommand := &cobra.Command{
		Use:   "session",
		Short: "Control the active focus session",
	}

	sessionCommand.AddCommand(newSessionStartCommand())
	sessionCommand.AddCommand(newSessionPauseCommand())
	sessionCommand.AddCommand(newSessionResumeCommand())
	sessionCommand.AddCommand(newSessionExtendCommand())
	sessionCommand.AddCommand(newSessionStatusCommand())
	sessionCommand.AddCommand(newSessionFinishCommand())

	return sessionCommand
}

func newSessionStartCommand() *cobra.Command {
	var userID string
	var subject string
	var durationMinutes int

	command := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSessionRepository(func(ctx context.Context, repository focus.SessionRepository, defaultMinutes int) error {
				if durationMinutes == 0 {
					durationMinutes = defaultMinutes
				}
				session := focus.NewManager().Start(subject, durationMinutes)
				if err := repository.Save(ctx, userID, session); err != nil {
					return err
				}
				fmt.Printf("Focus session started: %d minutes", session.DurationMinutes)
				if subject != "" {
					fmt.Printf(" on %s", subject)
				}
				fmt.Println()
				return nil
			})
		},
	}
	addUserFlag(command.Flags(), &userID)
	command.Flags().StringVar(&subject, "subject", "", "what this session is for")
	command.Flags().IntVar(&durationMinutes, "minutes", 0, "session length in minutes (defaults to the configured pomodoro length)")

	return command
}

func newSessionPauseCommand() *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "pause",
		Short: "Pause the active focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withActiveSession(userID, func(ctx context.Context, repository focus.SessionRepository, session focus.Session) error {
				updated := focus.NewManager().Pause(session)
				if err := repository.Save(ctx, userID, updated); err != nil {
					return err
				}
				fmt.Println("Paused. Resume when you're ready.")
				return nil
			})
		},
	}
	addUserFlag(command.Flags(), &userID)

	return command
}

func newSessionResumeCommand() *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withActiveSession(userID, func(ctx context.Context, repository focus.SessionRepository, session focus.Session) error {
				updated, err := focus.NewManager().Resume(session)
				if err != nil {
					return err
				}
				if err := repository.Save(ctx, userID, updated); err != nil {
					return err
				}
				fmt.Printf("Back to work. Interruptions so far: %d\n", updated.Interruptions)
				return nil
			})
		},
	}
	addUserFlag(command.Flags(), &userID)

	return command
}

func newSessionExtendCommand() *cobra.Command {
	var userID string
	var additionalMinutes int

	command := &cobra.Command{
		Use:   "extend",
		Short: "Add minutes to the active focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if additionalMinutes <= 0 {
				return fmt.Errorf("minutes must be positive")
			}
			return withActiveSession(userID, func(ctx context.Context, repository focus.SessionRepository, session focus.Session) error {
				updated := focus.NewManager().Extend(session, additionalMinutes)
				if err := repository.Save(ctx, userID, updated); err != nil {
					return err
				}
				fmt.Printf("Extended to %d minutes.\n", updated.DurationMinutes)
				return nil
			})
		},
	}
	addUserFlag(command.Flags(), &userID)
	command.Flags().IntVar(&additionalMinutes, "minutes", 5, "minutes to add")

	return command
}

func newSessionStatusCommand() *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "status",
		Short: "Show remaining time in the active focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withActiveSession(userID, func(ctx context.Context, repository focus.SessionRepository, session focus.Session) error {
				remaining, err := focus.NewManager().RemainingMinutes(session)
				if err != nil {
					return err
				}
				state := "running"
				if session.IsPaused {
					state = "paused"
				}
				fmt.Printf("Session %s: %d minutes remaining of %d.\n", state, remaining, session.DurationMinutes)
				return nil
			})
		},
	}
	addUserFlag(command.Flags(), &userID)

	return command
}

func newSessionFinishCommand() *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "finish",
		Short: "Finish the active focus session and record it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			ctx := cmd.Context()
			sessions := focus.NewDBSessionRepository(db)
			session, err := sessions.Get(ctx, userID)
			if err != nil {
				return err
			}
			if session == nil {
				return fmt.Errorf("no active focus session")
			}

			record := focus.Record{
				UserID:          userID,
				Kind:            focus.KindPomodoro,
				Subject:         session.Subject,
				DurationMinutes: session.DurationMinutes,
				Interruptions:   session.Interruptions,
				RecordedAt:      time.Now(),
			}
			if err := focus.NewDBRecordRepository(db).Create(ctx, &record); err != nil {
				return err
			}
			if err := sessions.Clear(ctx, userID); err != nil {
				return err
			}
			fmt.Printf("Recorded a %d minute session. Take a break!\n", record.DurationMinutes)
			return nil
		},
	}
	addUserFlag(command.Flags(), &userID)

	return command
}

// withSessionRepository opens the store and hands the session repository to
// run, along with the configured default session length.
func withSessionRepository(run func(ctx context.Context, repository focus.SessionRepository, defaultMinutes int) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func(db *sqlx.DB) {
		_ = db.Close()
	}(db)

	return run(context.Background(), focus.NewDBSessionRepository(db), cfg.Coach.PomodoroMinutes)
}

// withActiveSession loads the user's active session and hands it to run,
// failing when none exists.
func withActiveSession(userID string, run func(ctx context.Context, repository focus.SessionRepository, session focus.Session) error) error {
	return withSessionRepository(func(ctx context.Context, repository focus.SessionRepository, _ int) error {
		session, err := repository.Get(ctx, userID)
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("no active focus session")
		}
		return run(ctx, repository, *session)
	})
}
