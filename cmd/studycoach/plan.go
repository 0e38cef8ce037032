package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/cli"
	"github.com/studycoach/studycoach/internal/dates"
	"github.com/studycoach/studycoach/internal/planner"
)

func newPlanCommand() *cobra.Command {
	var userID string
	var todayOverride string

	command := &cobra.Command{
		Use:   "plan",
		Short: "Show today's prioritized study plan",
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

			today, err := todayFlag(todayOverride)
			if err != nil {
				return err
			}

			repository := assignment.NewDBRepository(db)
			active, err := repository.FindActiveByUser(cmd.Context(), userID)
			if err != nil {
				return err
			}

			horizon := today.AddDays(cfg.Coach.PlanHorizonDays)
			relevant := make([]assignment.Assignment, 0, len(active))
			for _, a := range active {
				due, err := dates.Parse(a.DueDate)
				if err != nil {
					return fmt.Errorf("assignment %s: %w", a.ID, err)
				}
				if !due.After(horizon.Time) {
					relevant = append(relevant, a)
				}
			}

			items, err := planner.Rank(relevant, today)
			if err != nil {
				return err
			}
			cli.PrintPlan(os.Stdout, items, relevant)
			return nil
		},
	}
	addUserFlag(command.Flags(), &userID)
	command.Flags().StringVar(&todayOverride, "today", "", "treat this date (YYYY-MM-DD) as today")

	return command
}
