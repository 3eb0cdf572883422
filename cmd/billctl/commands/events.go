package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/htn0810/Bill-Sharing/internal/events"
)

func newEventsCmd(c *cli) *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect domain events on the message broker",
	}

	var pattern string
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print events as they are published, until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.AMQPURL == "" {
				return errors.New("AMQP_URL is not set; events are only logged")
			}

			sub, err := events.NewSubscriber(c.cfg.AMQPURL, c.cfg.AMQPExchange, pattern)
			if err != nil {
				return err
			}
			defer sub.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = sub.Consume(ctx, func(e events.Event) error {
				_, err := fmt.Fprintf(out, "%s\t%s\tbill=%s expense=%s member=%s\n",
					e.OccurredAt.Format("15:04:05"), e.Type, e.BillID, e.ExpenseID, e.Member)
				return err
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	watchCmd.Flags().StringVar(&pattern, "pattern", "#", "routing key pattern, e.g. expense.*")

	eventsCmd.AddCommand(watchCmd)
	return eventsCmd
}
