package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-paygw/pkg/direct"
)

func pingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the Direct API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := a.health()
			if err != nil {
				return err
			}
			result, err := health.GetPing(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the Direct API service status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := a.health()
			if err != nil {
				return err
			}
			result, err := health.GetStatus(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func chargeCmd(a *app) *cobra.Command {
	var chargeType, payload string

	cmd := &cobra.Command{
		Use:   "charge",
		Short: "Create a charge (Auth, Force or Sale)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parsePayload(payload)
			if err != nil {
				return err
			}
			charges, err := a.charges()
			if err != nil {
				return err
			}
			result, err := charges.PostCharges(cmd.Context(), chargeType, body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&chargeType, "type", "t", direct.ChargeSale, "Charge type: Auth, Force or Sale")
	cmd.Flags().StringVarP(&payload, "payload", "p", "", "JSON request body")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}

func captureCmd(a *app) *cobra.Command {
	var payload string

	cmd := &cobra.Command{
		Use:   "capture [reference]",
		Short: "Capture or update an authorized charge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parsePayload(payload)
			if err != nil {
				return err
			}
			charges, err := a.charges()
			if err != nil {
				return err
			}
			result, err := charges.PutCharges(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&payload, "payload", "p", "", "JSON request body")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}

func creditCmd(a *app) *cobra.Command {
	var payload string

	cmd := &cobra.Command{
		Use:   "credit [reference]",
		Short: "Refund a charge, or issue an unreferenced credit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parsePayload(payload)
			if err != nil {
				return err
			}
			res, err := direct.Get(direct.ResourceCredits, a.cfg, a.logger)
			if err != nil {
				return err
			}
			credits := res.(*direct.Credits)

			var result direct.Result
			if len(args) == 1 {
				result, err = credits.PostCreditsReference(cmd.Context(), args[0], body)
			} else {
				result, err = credits.PostCredits(cmd.Context(), body)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&payload, "payload", "p", "", "JSON request body")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}

func (a *app) health() (*direct.APIHealth, error) {
	res, err := direct.Get(direct.ResourceAPIHealth, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	return res.(*direct.APIHealth), nil
}

func (a *app) charges() (*direct.Charges, error) {
	res, err := direct.Get(direct.ResourceCharges, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	return res.(*direct.Charges), nil
}

func parsePayload(s string) (json.RawMessage, error) {
	if !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	return json.RawMessage(s), nil
}
