package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/dates"
	"github.com/studycoach/studycoach/internal/reminders"
)

func newAssignmentCommand() *cobra.Command {
	assignmentCommand := &cobra.Command{
		Use:   "assignment",
		Short: "Manage assignments",
	}

	assignmentCommand.AddCommand(newAssignmentAddCommand())
	assignmentCommand.AddCommand(newAssignmentCompleteCommand())

	return assignmentCommand
}

func newAssignmentAddCommand() *cobra.Command {
	var userID string
	var className string
	var dueDate string
	var dueTime string
	var estimatedMinutes int
	var noReminder bool

	command := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an assignment and schedule a due-date reminder",
		Args:  cobra.ExactArgs(1),
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

			if _, err := dates.Parse(dueDate); err != nil {
				return err
			}

			a := assignment.Assignment{
				ID:               uuid.NewString(),
				UserID:           userID,
				ClassName:        className,
				Title:            args[0],
				DueDate:          dueDate,
				DueTime:          dueTime,
				EstimatedMinutes: estimatedMinutes,
				Status:           assignment.StatusNotStarted,
				Priority:         assignment.PriorityMedium,
			}
			if err := assignment.NewDBRepository(db).Create(cmd.Context(), &a); err != nil {
				return fmt.Errorf("failed to add assignment: %w", err)
			}
			fmt.Printf("Added %q due %s (%d min)\n", a.Title, a.DueDate, a.EstimatedMinutes)

			if noReminder || cfg.Reminders.ServiceURL == "" {
				return nil
			}

			triggerAt, err := reminders.TriggerAt(dueDate, dueTime, cfg.Reminders.Timezone, cfg.Reminders.LeadMinutes)
			if err != nil {
				return err
			}
			client := reminders.NewClient(cfg.Reminders.ServiceURL, cfg.Reminders.APIKey, cfg.Reminders.MaxAttempts)
			defer func() {
				_ = client.Close()
			}()
			err = client.Schedule(cmd.Context(), reminders.Reminder{
				UserID:    userID,
				Label:     a.Title,
				TriggerAt: triggerAt,
				Timezone:  cfg.Reminders.Timezone,
			})
			if errors.Is(err, reminders.ErrPermissionDenied) {
				fmt.Println("Reminder not scheduled: permission not granted.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to schedule reminder: %w", err)
			}
			fmt.Printf("Reminder scheduled for %s\n", triggerAt.Format(time.RFC1123))
			return nil
		},
	}
	addUserFlag(command.Flags(), &userID)
	command.Flags().StringVar(&className, "class", "", "class or subject name")
	command.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	command.Flags().StringVar(&dueTime, "due-time", "", "due time (HH:MM)")
	command.Flags().IntVar(&estimatedMinutes, "minutes", assignment.DefaultEstimatedMinutes, "estimated minutes of work")
	command.Flags().BoolVar(&noReminder, "no-reminder", false, "skip scheduling a reminder")
	_ = command.MarkFlagRequired("due")

	return command
}

func newAssignmentCompleteCommand() *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "complete <assignment-id>",
		Short: "Mark an assignment as completed",
		Args:  cobra.ExactArgs(1),
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

			if err := assignment.NewDBRepository(db).MarkCompleted(cmd.Context(), userID, args[0], time.Now()); err != nil {
				return fmt.Errorf("failed to complete assignment: %w", err)
			}
			fmt.Println("Done. Nice work!")
			return nil
		},
	}
	addUserFlag(command.Flags(), &userID)

	return command
}
