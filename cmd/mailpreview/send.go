package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpreview/pkg/session"
)

var errRateLimited = errors.New("test send was rate limited")

func newSendCmd(a *app) *cobra.Command {
	var (
		to, subject string
		overrides   []string
	)

	cmd := &cobra.Command{
		Use:   "send <filename>",
		Short: "Render a template and send it as a test email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.collaborators(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close()

			sess := a.newSession(c, a.out)
			out, err := renderSelected(cmd.Context(), sess, args[0], overrides)
			if err != nil {
				return err
			}

			outcome, err := sess.SendTest(cmd.Context(), to, subject, out.HTML)
			if err != nil {
				return err
			}
			if outcome == session.OutcomeRateLimited {
				return errRateLimited
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&subject, "subject", "", "email subject")
	cmd.Flags().StringArrayVarP(&overrides, "prop", "p", nil, "prop override name=value (repeatable)")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
