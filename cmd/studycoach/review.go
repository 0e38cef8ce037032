package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studycoach/studycoach/internal/cli"
	"github.com/studycoach/studycoach/internal/review"
)

func newReviewCommand() *cobra.Command {
	reviewCommand := &cobra.Command{
		Use:   "review",
		Short: "Spaced repetition review",
	}

	reviewCommand.AddCommand(newReviewStartCommand())
	reviewCommand.AddCommand(newReviewDueCommand())

	return reviewCommand
}

func newReviewStartCommand() *cobra.Command {
	var userID string
	var todayOverride string

	command := &cobra.Command{
		Use:   "start",
		Short: "Review everything that is due today",
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

			session, err := cli.NewReviewSession(cmd.Context(), review.NewDBRepository(db), userID, today)
			if err != nil {
				return err
			}

			fmt.Printf("Review session started: %d items due. Type 'skip' when you can't recall one.\n\n", session.DueCount())
			return session.Run(cmd.Context())
		},
	}
	addUserFlag(command.Flags(), &userID)
	command.Flags().StringVar(&todayOverride, "today", "", "treat this date (YYYY-MM-DD) as today")

	return command
}

func newReviewDueCommand() *cobra.Command {
	var userID string
	var todayOverride string

	command := &cobra.Command{
		Use:   "due",
		Short: "List items due for review today",
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

			states, err := review.NewDBRepository(db).FindByUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			due := review.DueForReview(states, today)
			if len(due) == 0 {
				fmt.Println("Nothing is due for review. Nice!")
				return nil
			}
			for _, itemID := range due {
				fmt.Println(itemID)
			}
			return nil
		},
	}
	addUserFlag(command.Flags(), &userID)
	command.Flags().StringVar(&todayOverride, "today", "", "treat this date (YYYY-MM-DD) as today")

	return command
}
