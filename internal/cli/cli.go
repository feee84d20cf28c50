// Package cli implements the cnpj command-line tool.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cadastro/internal/validation/models"
	"cadastro/pkg/cnpj"
)

// ErrInvalid is returned by validate when at least one input is not a valid
// CNPJ. main maps it to exit status 1 without printing it again.
var ErrInvalid = errors.New("one or more cnpj values are invalid")

var (
	okLabel      = color.New(color.FgGreen).SprintFunc()
	invalidLabel = color.New(color.FgRed).SprintFunc()
	dimLabel     = color.New(color.FgHiBlack).SprintFunc()
)

// RootCmd builds the cnpj command tree.
func RootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "cnpj",
		Short:   "Format and validate Brazilian CNPJ numbers",
		Version: version,
		Long: `cnpj formats and validates CNPJ company registration numbers.

Values are read from the arguments, or one per line from stdin when no
arguments are given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(FormatCmd())
	root.AddCommand(ValidateCmd())
	root.AddCommand(ReservedCmd())
	root.AddCommand(CompleteCmd())
	return root
}

// FormatCmd prints the masked form of each input.
func FormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format [value...]",
		Short: "Apply the DD.DDD.DDD/DDDD-DD mask",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := inputsFrom(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, in := range inputs {
				fmt.Fprintln(out, cnpj.Format(in))
			}
			return nil
		},
	}
}

// ValidateCmd checks each input and reports its verdict.
func ValidateCmd() *cobra.Command {
	var quiet, parse bool

	cmd := &cobra.Command{
		Use:   "validate [value...]",
		Short: "Validate CNPJ check digits",
		Long: `Validate each value. The value must be the bare 14-digit form;
masked values are rejected by the length check. Use --parse to accept the
masked form as well.

Exits with status 1 if any value is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := inputsFrom(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := false
			for _, in := range inputs {
				checkErr := cnpj.Check(in)
				if parse {
					if c, perr := cnpj.Parse(in); perr == nil {
						in, checkErr = c.String(), nil
					} else {
						checkErr = perr
					}
				}
				if checkErr != nil {
					failed = true
				}
				if !quiet {
					printVerdict(out, in, checkErr)
				}
			}
			if failed {
				return ErrInvalid
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, only set the exit status")
	cmd.Flags().BoolVar(&parse, "parse", false, "accept the masked DD.DDD.DDD/DDDD-DD form")
	return cmd
}

func printVerdict(out io.Writer, in string, err error) {
	if err == nil {
		fmt.Fprintf(out, "%s  %s\n", okLabel("OK     "), cnpj.Format(in))
		return
	}
	reason := string(models.ReasonFor(err))
	if errors.Is(err, cnpj.ErrShape) {
		reason = "shape"
	}
	fmt.Fprintf(out, "%s  %q %s\n", invalidLabel("INVALID"), in, dimLabel("("+reason+")"))
}

// ReservedCmd lists the reserved repeated-digit numbers.
func ReservedCmd() *cobra.Command {
	var masked bool

	cmd := &cobra.Command{
		Use:   "reserved",
		Short: "List reserved numbers that are never valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, r := range cnpj.ReservedNumbers() {
				if masked {
					r = cnpj.Format(r)
				}
				fmt.Fprintln(out, r)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&masked, "masked", "m", false, "print with the display mask")
	return cmd
}

// CompleteCmd appends the check digits to a 12-digit base.
func CompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <base>",
		Short: "Append check digits to a 12-digit base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dv, err := cnpj.CheckDigits(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cnpj.Format(cnpj.Digits(args[0])+dv))
			return nil
		},
	}
}

// inputsFrom returns args, or the non-blank lines of r when args is empty.
// Lines are kept verbatim apart from the line terminator.
func inputsFrom(r io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return inputs, nil
}
