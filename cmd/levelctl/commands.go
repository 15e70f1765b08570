package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/ahmetcoskunkizilkaya/budgetxp-backend/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newLevelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Inspect or import per-level XP thresholds",
	}

	var file string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Upsert thresholds (and optionally the default) from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			curve, err := parseCurveFile(f)
			if err != nil {
				return err
			}

			s, err := loadStack()
			if err != nil {
				return err
			}
			return runImport(cmd, s, curve)
		},
	}
	importCmd.Flags().StringVarP(&file, "file", "f", "", "path to the curve YAML")
	_ = importCmd.MarkFlagRequired("file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the configured thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStack()
			if err != nil {
				return err
			}
			return runList(cmd, s)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <level>",
		Short: "Print the threshold that applies to one level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[0])
			if err != nil || level < 1 {
				return fmt.Errorf("invalid level %q", args[0])
			}
			s, err := loadStack()
			if err != nil {
				return err
			}
			n, err := s.levels.ThresholdFor(cmd.Context(), level)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}

	cmd.AddCommand(importCmd, listCmd, getCmd)
	return cmd
}

func newDefaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "default",
		Short: "Show or change the threshold used by levels without a row",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the default threshold",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := loadStack()
				if err != nil {
					return err
				}
				n, err := s.settings.DefaultThreshold(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <xp>",
			Short: "Change the default threshold",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := loadStack()
				if err != nil {
					return err
				}
				if _, err := s.settings.Set(cmd.Context(), models.SettingDefaultXPForNextLevel, args[0], "int"); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "default threshold set to %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newGrantCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "grant <userID> <amount>",
		Short: "Credit XP to a user, applying any level-ups",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			s, err := loadStack()
			if err != nil {
				return err
			}
			return runGrant(cmd, s, userID, amount, reason)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "cli", "reason stored on the grant")
	return cmd
}

func runImport(cmd *cobra.Command, s *stack, curve *curveFile) error {
	n, err := s.levels.Import(cmd.Context(), curve.Default, curve.inputs())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d level thresholds\n", n)
	return nil
}

func runList(cmd *cobra.Command, s *stack) error {
	ctx := cmd.Context()
	rows, err := s.levels.List(ctx)
	if err != nil {
		return err
	}
	def, err := s.settings.DefaultThreshold(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tXP REQUIRED")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%d\n", r.Level, r.XPRequired)
	}
	fmt.Fprintf(w, "*\t%d\n", def)
	return w.Flush()
}

func runGrant(cmd *cobra.Command, s *stack, userID uuid.UUID, amount int64, reason string) error {
	res, err := s.progression.AwardXP(cmd.Context(), userID, amount, reason)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s level=%d xp=%d/%d\n",
		res.Message(), res.After.Level, res.After.XP, res.After.XPForNextLevel)
	return nil
}
