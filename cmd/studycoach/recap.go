package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/cli"
	"github.com/studycoach/studycoach/internal/focus"
	"github.com/studycoach/studycoach/internal/recap"
	"github.com/studycoach/studycoach/internal/report"
)

func newRecapCommand() *cobra.Command {
	var userID string
	var todayOverride string
	var outputDir string
	var exportPDF bool

	command := &cobra.Command{
		Use:   "recap",
		Short: "Show the end-of-day recap and tomorrow's priorities",
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

			ctx := cmd.Context()
			assignments := assignment.NewDBRepository(db)

			records, err := focus.NewDBRecordRepository(db).FindByUserAndDay(ctx, userID, today)
			if err != nil {
				return err
			}
			completed, err := assignments.FindCompletedOn(ctx, userID, today)
			if err != nil {
				return err
			}
			incomplete, err := assignments.FindActiveByUser(ctx, userID)
			if err != nil {
				return err
			}

			summary := recap.Build(records, completed, incomplete)
			rollover, err := recap.Rollover(incomplete, today)
			if err != nil {
				return err
			}

			cli.PrintRecap(os.Stdout, today, summary, rollover)

			if outputDir == "" {
				return nil
			}
			markdownPath := filepath.Join(outputDir, fmt.Sprintf("recap-%s.md", today))
			if err := report.SaveMarkdown(markdownPath, today, summary, rollover); err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", markdownPath)
			if exportPDF {
				pdfPath, err := report.ConvertMarkdownToPDF(markdownPath)
				if err != nil {
					return err
				}
				fmt.Printf("Saved %s\n", pdfPath)
			}
			return nil
		},
	}
	addUserFlag(command.Flags(), &userID)
	command.Flags().StringVar(&todayOverride, "today", "", "treat this date (YYYY-MM-DD) as today")
	command.Flags().StringVar(&outputDir, "output", "", "directory to write a markdown report to")
	command.Flags().BoolVar(&exportPDF, "pdf", false, "also convert the markdown report to PDF")

	return command
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
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

			if err := migrateDatabase(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}
