package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/model"
)

var pauseCmd = &cobra.Command{
	Use:   "pause <id>",
	Short: "Pause a subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setStatus(args[0], model.StatusPaused)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <id>",
	Short: "Resume a paused or canceled subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setStatus(args[0], model.StatusActive)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a subscription, keeping its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setStatus(args[0], model.StatusCanceled)
	},
}

func init() {
	rootCmd.AddCommand(pauseCmd, resumeCmd, cancelCmd)
}

// setStatus flips a subscription's lifecycle state. The change moment is
// recorded so lifetime-spend windows stop at the pause/cancel date.
func setStatus(idArg string, status model.Status) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("bad subscription id %q", idArg)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.SetStatus(id, status, time.Now()); err != nil {
		return err
	}

	sub, err := s.Get(id)
	if err != nil {
		return err
	}
	fmt.Printf("\n  %s is now %s\n", sub.Name, status)
	return nil
}
