package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"uxlab/internal/bootstrap"
	stagedto "uxlab/internal/modules/stages/dto"
	"uxlab/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:           "uxlab",
		Short:         "Usability study data collection tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", ".", "study workspace directory")

	root.AddCommand(newTUICmd(&dir))
	root.AddCommand(newSubmitCmd(&dir))
	root.AddCommand(newStudyCmd(&dir))
	root.AddCommand(newDatasetsCmd(&dir))
	root.AddCommand(newReportCmd(&dir))
	root.AddCommand(newReindexCmd(&dir))
	return root
}

func loadApp(dir string) (*bootstrap.App, error) {
	cfg, err := config.New(dir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive study session",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Log.Sync() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newSubmitCmd(dir *string) *cobra.Command {
	submit := &cobra.Command{Use: "submit", Short: "Record a single study stage"}

	var agree bool
	consent := &cobra.Command{
		Use:   "consent --agree",
		Short: "Record the participant's consent answer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			out, err := app.StagesCLI.SubmitConsent(context.Background(), stagedto.ConsentInput{Agreed: agree})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "consent recorded: %s #%d at %s\n", out.Dataset, out.Seq, out.SubmittedAt)
			return nil
		},
	}
	consent.Flags().BoolVar(&agree, "agree", false, "participant agrees to take part")

	var name, occupation, familiarity string
	var age int
	demographics := &cobra.Command{
		Use:   "demographics --age <years> --familiarity <option>",
		Short: "Record the participant profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			out, err := app.StagesCLI.SubmitDemographics(context.Background(), stagedto.DemographicsInput{
				Name:        name,
				Age:         age,
				Occupation:  occupation,
				Familiarity: familiarity,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "demographics recorded: %s #%d at %s\n", out.Dataset, out.Seq, out.SubmittedAt)
			return nil
		},
	}
	demographics.Flags().StringVar(&name, "name", "", "participant name (optional)")
	demographics.Flags().IntVar(&age, "age", 0, "participant age")
	demographics.Flags().StringVar(&occupation, "occupation", "", "participant occupation (optional)")
	demographics.Flags().StringVar(&familiarity, "familiarity", "", "familiarity option from the study plan")

	var taskName, success, notes string
	var duration float64
	task := &cobra.Command{
		Use:   "task --task <name> --success <option>",
		Short: "Record one task attempt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(taskName) == "" {
				return fmt.Errorf("--task is required")
			}
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			input := stagedto.TaskInput{TaskName: taskName, Success: success, Notes: notes}
			if cmd.Flags().Changed("duration") {
				input.DurationSeconds = duration
				input.DurationSet = true
			}
			out, err := app.StagesCLI.SubmitTask(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task recorded: %s #%d at %s\n", out.Dataset, out.Seq, out.SubmittedAt)
			return nil
		},
	}
	task.Flags().StringVar(&taskName, "task", "", "task name from the study plan")
	task.Flags().StringVar(&success, "success", "", "success option from the study plan")
	task.Flags().Float64Var(&duration, "duration", 0, "task duration in seconds (omit to leave blank)")
	task.Flags().StringVar(&notes, "notes", "", "observer notes (optional)")

	var satisfaction, difficulty int
	var feedback string
	exit := &cobra.Command{
		Use:   "exit --satisfaction <rating> --difficulty <rating>",
		Short: "Record the exit questionnaire",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			out, err := app.StagesCLI.SubmitExit(context.Background(), stagedto.ExitInput{
				Satisfaction: satisfaction,
				Difficulty:   difficulty,
				Feedback:     feedback,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exit questionnaire recorded: %s #%d at %s\n", out.Dataset, out.Seq, out.SubmittedAt)
			return nil
		},
	}
	exit.Flags().IntVar(&satisfaction, "satisfaction", 0, "overall satisfaction rating")
	exit.Flags().IntVar(&difficulty, "difficulty", 0, "overall difficulty rating")
	exit.Flags().StringVar(&feedback, "feedback", "", "open feedback (optional)")

	submit.AddCommand(consent, demographics, task, exit)
	return submit
}

func newStudyCmd(dir *string) *cobra.Command {
	study := &cobra.Command{Use: "study", Short: "Inspect the study plan and documents"}

	study.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the study plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			plan, err := app.StudyCLI.ShowPlan(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s\n\n%s\n\nTasks:\n", plan.Title, plan.Intro)
			for i, t := range plan.Tasks {
				_, _ = fmt.Fprintf(w, "  %d. %s\n     %s\n", i+1, t.Name, t.Description)
			}
			_, _ = fmt.Fprintf(w, "\nfamiliarity options: %s\n", strings.Join(plan.Familiarity, " | "))
			_, _ = fmt.Fprintf(w, "success options: %s\n", strings.Join(plan.Success, " | "))
			_, _ = fmt.Fprintf(w, "rating scale: %d..%d\n", plan.ScaleMin, plan.ScaleMax)
			return nil
		},
	})

	study.AddCommand(&cobra.Command{
		Use:   "consent",
		Short: "Show the consent document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			doc, err := app.StudyCLI.ShowConsentDocument(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", doc.Title, doc.Body)
			return nil
		},
	})

	var taskName string
	instructions := &cobra.Command{
		Use:   "instructions --task <name>",
		Short: "Show the instructions for one task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(taskName) == "" {
				return fmt.Errorf("--task is required")
			}
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			doc, err := app.StudyCLI.ShowTaskInstructions(context.Background(), taskName)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", doc.Title, doc.Body)
			return nil
		},
	}
	instructions.Flags().StringVar(&taskName, "task", "", "task name from the study plan")
	study.AddCommand(instructions)

	return study
}

func newDatasetsCmd(dir *string) *cobra.Command {
	datasets := &cobra.Command{Use: "datasets", Short: "Inspect collected records"}

	datasets.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List datasets with record counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			infos, err := app.RecordsCLI.ListDatasets(context.Background())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no records")
				return nil
			}
			for _, info := range infos {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\tlast=%s\n", info.Dataset, info.Records, info.LastAt)
			}
			return nil
		},
	})

	datasets.AddCommand(&cobra.Command{
		Use:   "show <dataset>",
		Short: "Dump one dataset as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			snapshot, err := app.RecordsCLI.ShowDataset(context.Background(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(snapshot.Rows) == 0 {
				_, _ = fmt.Fprintln(w, "no records")
				return nil
			}
			_, _ = fmt.Fprintln(w, strings.Join(snapshot.Columns, "\t"))
			for _, row := range snapshot.Rows {
				_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			return nil
		},
	})

	return datasets
}

func newReportCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the aggregated study report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			out, err := app.ReportCLI.Generate(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Usability Test Report  (generated %s)\n", out.GeneratedAt)
			for _, section := range out.Sections {
				_, _ = fmt.Fprintf(w, "\n== %s ==\n", section.Title)
				if len(section.Rows) == 0 {
					_, _ = fmt.Fprintln(w, "(no records)")
					continue
				}
				_, _ = fmt.Fprintln(w, strings.Join(section.Columns, "\t"))
				for _, row := range section.Rows {
					_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
				}
			}
			if avg := out.ExitAverages; avg != nil {
				_, _ = fmt.Fprintf(w, "\nAverage Satisfaction: %.2f\n", avg.MeanSatisfaction)
				_, _ = fmt.Fprintf(w, "Average Difficulty: %.2f\n", avg.MeanDifficulty)
				_, _ = fmt.Fprintf(w, "(%d exit responses)\n", avg.Responses)
			}
			return nil
		},
	}
}

func newReindexCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite submission index from the CSV files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dir)
			if err != nil {
				return err
			}
			if err := app.RecordsCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}
