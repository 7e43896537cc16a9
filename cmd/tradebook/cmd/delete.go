package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/transactions"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Long: `Delete a transaction by id after confirming its stock and quantity.

Use --yes to skip the confirmation prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := background(cmd)
	id := domain.ID(args[0])

	c := transactions.NewController(client, formatter(), cfg.PageSize, log)
	res := c.LoadForEdit(ctx, id)
	if !res.Ok() {
		return fmt.Errorf("load transaction %s: %w", id, res.Err)
	}
	c.RequestDelete(transactions.Row{Transaction: res.Value})

	if !deleteYes {
		d := c.State.Delete
		fmt.Fprintf(out(cmd), "Delete %s, quantity %d? [y/N] ", d.Stock, d.Quantity)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			c.CancelDelete()
			fmt.Fprintln(out(cmd), "Cancelled")
			return nil
		}
	}

	target, _ := c.ConfirmDelete()
	if !c.FinishDelete(target, c.Delete(ctx, target)) {
		return errors.New(c.State.Notice.Text)
	}
	fmt.Fprintln(out(cmd), transactions.MsgDeleted)
	return nil
}
