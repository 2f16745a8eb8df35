package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/fintrack/internal/utils"
	"github.com/spf13/cobra"
)

// newHashPasswordCommand prints the bcrypt hash to put in PASSWORD_HASH. The password is
// read from stdin so it stays out of shell history.
func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Read the owner password from stdin and print its PASSWORD_HASH value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no password on stdin")
			}
			hash, err := utils.HashPassword(strings.TrimRight(line, "\r\n"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
