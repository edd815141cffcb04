package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-paygw/pkg/sevd"
)

func sevdSaleCmd(a *app) *cobra.Command {
	var (
		tx       sevd.Transaction
		customer sevd.Customer
		ui       sevd.UISettings
		authOnly bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "sevd-sale",
		Short: "Request a tokenized hosted sale or authorization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := sevd.Get(sevd.RequestCharge, a.cfg, a.logger)
			if err != nil {
				return err
			}
			charge := res.(*sevd.ChargeRequest)

			if dryRun {
				doc, err := charge.BuildUISale(tx, customer, !authOnly, ui)
				if err != nil {
					return err
				}
				doc.Indent(2)
				_, err = doc.WriteTo(cmd.OutOrStdout())
				return err
			}

			token, err := charge.UISale(cmd.Context(), tx, customer, !authOnly, ui)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&tx.Reference1, "reference1", "", "Merchant reference (required)")
	f.StringVar(&tx.Amount, "amount", "", "Amount (required)")
	f.StringVar(&tx.TransactionID, "transaction-id", "", "Optional transaction id")
	f.BoolVar(&authOnly, "auth-only", false, "Authorize without capturing")
	f.BoolVar(&ui.EditCustomer, "edit-customer", false, "Let the cardholder edit name and address")
	f.BoolVar(&dryRun, "dry-run", false, "Print the request document instead of sending it")

	f.StringVar(&customer.Name.FirstName, "first-name", "", "Customer first name")
	f.StringVar(&customer.Name.MI, "mi", "", "Customer middle initial")
	f.StringVar(&customer.Name.LastName, "last-name", "", "Customer last name")
	f.StringVar(&customer.Address.AddressLine1, "address1", "", "Address line 1")
	f.StringVar(&customer.Address.AddressLine2, "address2", "", "Address line 2")
	f.StringVar(&customer.Address.City, "city", "", "City")
	f.StringVar(&customer.Address.State, "state", "", "State")
	f.StringVar(&customer.Address.ZipCode, "zip", "", "Zip code")
	f.StringVar(&customer.Address.Country, "country", "", "Country")

	return cmd
}
