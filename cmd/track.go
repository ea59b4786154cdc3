package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "flowtime-logger.com/flowtime-logger/internal/configs"
	"flowtime-logger.com/flowtime-logger/internal/ledger"
	repository "flowtime-logger.com/flowtime-logger/internal/repositories"
	"flowtime-logger.com/flowtime-logger/internal/services"
)

var trackCmd = &cobra.Command{
	Use:   "track <description>",
	Short: "Track a task interactively",
	Long: "Starts tracking a task immediately and reads commands from the " +
		"terminal: stop, cont, end, status, quit. Quitting with a live task " +
		"stops and ends it first so the record is never lost.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			logrus.Debug(".env file not found, using environment variables")
		}

		cfg := config.Load()

		database := config.New(cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(database)

		ledgerWriter, err := ledger.NewWriter(cfg.LedgerDir)
		if err != nil {
			return err
		}

		sessions := services.NewSessionService(taskRepo, ledgerWriter, nil)
		ctx := context.Background()

		description := strings.Join(args, " ")
		snapshot, err := sessions.Start(ctx, description)
		if err != nil {
			return err
		}
		fmt.Printf("Tracking %q, started at %s\n", description, snapshot.StartTime.Format("15:04:05"))

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				// EOF behaves like quit.
				return finishSession(ctx, sessions)
			}

			switch strings.TrimSpace(scanner.Text()) {
			case "stop":
				if _, err := sessions.Stop(ctx); err != nil {
					fmt.Println(err)
					continue
				}
				fmt.Println("Taking a break")
			case "cont":
				if _, err := sessions.Cont(ctx); err != nil {
					fmt.Println(err)
					continue
				}
				fmt.Println("Back to work")
			case "end":
				result, err := sessions.End(ctx)
				if err != nil {
					fmt.Println(err)
					continue
				}
				printSummary(result)
				return nil
			case "status":
				printStatus(sessions)
			case "quit", "exit":
				return finishSession(ctx, sessions)
			case "":
			default:
				fmt.Println("Commands: stop, cont, end, status, quit")
			}
		}
	},
}

// finishSession mirrors the app's exit handling: a live task is stopped if
// running, then ended and saved before the program exits.
func finishSession(ctx context.Context, sessions *services.SessionService) error {
	snapshot, err := sessions.Current()
	if err != nil {
		return nil
	}

	if snapshot.Running {
		if _, err := sessions.Stop(ctx); err != nil {
			return err
		}
	}

	result, err := sessions.End(ctx)
	if err != nil {
		return err
	}

	printSummary(result)
	return nil
}

func printStatus(sessions *services.SessionService) {
	snapshot, err := sessions.Current()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s (%s): %d work period(s), %d break(s)\n",
		snapshot.Description, snapshot.State, snapshot.WorkPeriods, snapshot.BreakPeriods)
}

func printSummary(result *services.EndResult) {
	s := result.Summary
	fmt.Printf("Task %q saved as #%d\n", s.Description, result.TaskID)
	fmt.Printf("  started  %s\n", s.StartTime.Format("15:04:05"))
	fmt.Printf("  ended    %s\n", s.EndTime.Format("15:04:05"))
	fmt.Printf("  total    %s\n", s.TotalTime)
	fmt.Printf("  working  %s (%d period(s))\n", s.WorkingTime, s.WorkPeriodCount)
	fmt.Printf("  resting  %s (%d break(s))\n", s.RestingTime, s.BreakPeriodCount)
}

func init() {
	rootCmd.AddCommand(trackCmd)
}
