package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supsi-dacd-isaac/stripe-testbed/config"
	"github.com/supsi-dacd-isaac/stripe-testbed/service"
	"github.com/supsi-dacd-isaac/stripe-testbed/stripe"
	"github.com/supsi-dacd-isaac/stripe-testbed/web"
)

func newService(cmd *cobra.Command) (*service.PaymentService, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	client := stripe.NewClient(cfg.StripeAPIKey)
	settings := service.PollSettings{
		CheckInterval: cfg.Payment.Interval(),
		MaxAttempts:   cfg.Payment.MaxAttempts,
	}
	return service.NewPaymentService(client, settings, cmd.OutOrStdout()), nil
}

func setCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create a payment and wait for its settlement figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			amount, _ := cmd.Flags().GetInt64("amount")
			currency, _ := cmd.Flags().GetString("currency")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Creating a payment of %d %s...\n", amount, currency)
			pi, err := svc.CreatePayment(cmd.Context(), amount, currency)
			if err != nil {
				return err
			}
			service.WriteDisclaimer(out)
			fmt.Fprintf(out, "\nPayment Intent id: %s\n", pi.ID)
			return nil
		},
	}
	cmd.Flags().Int64("amount", 1000, "Amount in smallest currency unit (e.g., cents)")
	cmd.Flags().String("currency", "chf", "Currency code e.g., chf, usd")
	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Retrieve current balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Retrieving current balance...")
			if _, err := svc.GetBalance(cmd.Context()); err != nil {
				return err
			}
			service.WriteDisclaimer(cmd.OutOrStdout())
			return nil
		},
	}
}

func listPaymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-payments",
		Short: "List recent payment intents",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			if _, err := svc.ListPayments(cmd.Context(), limit); err != nil {
				return err
			}
			service.WriteDisclaimer(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().Int("limit", 5, "Max number of items")
	return cmd
}

func createCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-customer",
		Short: "Create a new customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			if _, err := svc.CreateCustomer(cmd.Context(), email, name, description); err != nil {
				return err
			}
			service.WriteDisclaimer(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().String("email", "", "Customer email")
	cmd.Flags().String("name", "", "Customer name")
	cmd.Flags().String("description", "", "Optional customer description")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")
	return cmd
}

func createRefundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-refund",
		Short: "Create a refund for a payment intent",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			paymentID, _ := cmd.Flags().GetString("payment-id")
			if _, err := svc.CreateRefund(cmd.Context(), paymentID); err != nil {
				return err
			}
			service.WriteDisclaimer(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().String("payment-id", "", "Payment Intent ID (pi_...)")
	cmd.MarkFlagRequired("payment-id")
	return cmd
}

func listMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-methods",
		Short: "List available card payment methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			if _, err := svc.ListPaymentMethods(cmd.Context()); err != nil {
				return err
			}
			service.WriteDisclaimer(cmd.OutOrStdout())
			return nil
		},
	}
}

func paymentDetailsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment-details",
		Short: "Show details for a specific payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			paymentID, _ := cmd.Flags().GetString("payment-id")
			if _, err := svc.PaymentDetails(cmd.Context(), paymentID); err != nil {
				return err
			}
			service.WriteDisclaimer(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().String("payment-id", "", "Payment Intent ID (pi_...)")
	cmd.MarkFlagRequired("payment-id")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the testbed operations over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			port, _ := cmd.Flags().GetString("port")
			return web.NewServer(svc).Run(":" + port)
		},
	}
	cmd.Flags().String("port", "8080", "Port to listen on")
	return cmd
}
