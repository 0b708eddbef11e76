package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/supsi-dacd-isaac/stripe-testbed/model"
)

// WriteTransactionDetails renders the settlement figures of a charge: gross,
// fee and net amounts plus the itemized fee breakdown in insertion order.
// Missing optional fields render as zero amounts or empty strings.
func WriteTransactionDetails(w io.Writer, bt *model.BalanceTransaction) {
	if bt == nil {
		return
	}
	fmt.Fprintln(w, "\nTransaction Details:")
	fmt.Fprintf(w, "Gross amount: %d %s\n", bt.GrossAmount(), bt.Currency)
	fmt.Fprintf(w, "Stripe fee  : %d %s\n", bt.Fee, bt.Currency)
	fmt.Fprintf(w, "Net to you  : %d %s\n", bt.Net, bt.Currency)
	if len(bt.FeeDetails) > 0 {
		fmt.Fprintln(w, "\nFee details:")
		for _, f := range bt.FeeDetails {
			fmt.Fprintf(w, " - %12s  %5d %s  %s\n", f.Type, f.Amount, f.Currency, f.Description)
		}
	}
}

func WriteBalance(w io.Writer, bal *model.Balance) {
	fmt.Fprintln(w, "\nCurrent Balance:")
	fmt.Fprintf(w, "Pending : %s\n", formatBalanceAmounts(bal.Pending))
	fmt.Fprintf(w, "Available: %s\n", formatBalanceAmounts(bal.Available))
}

func formatBalanceAmounts(amounts []model.BalanceAmount) string {
	parts := make([]string, 0, len(amounts))
	for _, a := range amounts {
		parts = append(parts, fmt.Sprintf("(%s,%d)", a.Currency, a.Amount))
	}
	return strings.Join(parts, ", ")
}

func WritePayments(w io.Writer, payments []model.PaymentIntent) {
	fmt.Fprintln(w, "\nRecent Payments:")
	for _, p := range payments {
		fmt.Fprintf(w, "ID: %s\n", p.ID)
		fmt.Fprintf(w, "Amount: %d %s\n", p.Amount, p.Currency)
		fmt.Fprintf(w, "Status: %s\n", p.Status)
		fmt.Fprintln(w, strings.Repeat("-", 40))
		fmt.Fprintf(w, "Created: %s\n", formatTimestamp(p.Created))
	}
}

func WriteCustomer(w io.Writer, c *model.Customer) {
	fmt.Fprintln(w, "\nCustomer Created:")
	fmt.Fprintf(w, "ID: %s\n", c.ID)
	fmt.Fprintf(w, "Name: %s\n", c.Name)
	fmt.Fprintf(w, "Email: %s\n", c.Email)
}

func WriteRefund(w io.Writer, r *model.Refund) {
	fmt.Fprintln(w, "\nRefund Created:")
	fmt.Fprintf(w, "ID: %s\n", r.ID)
	fmt.Fprintf(w, "Amount: %d %s\n", r.Amount, r.Currency)
	fmt.Fprintf(w, "Status: %s\n", r.Status)
}

func WritePaymentMethods(w io.Writer, methods []model.PaymentMethod) {
	fmt.Fprintln(w, "\nAvailable Payment Methods:")
	for _, pm := range methods {
		brand, last4 := "", ""
		if pm.Card != nil {
			brand, last4 = pm.Card.Brand, pm.Card.Last4
		}
		fmt.Fprintf(w, "ID: %s\n", pm.ID)
		fmt.Fprintf(w, "Type: %s\n", pm.Type)
		fmt.Fprintf(w, "Brand: %s\n", brand)
		fmt.Fprintf(w, "Last 4: %s\n", last4)
		fmt.Fprintln(w, strings.Repeat("-", 40))
	}
}

func WritePaymentDetails(w io.Writer, pi *model.PaymentIntent) {
	bt := pi.SettledTransaction()
	created, availableOn, btStatus := int64(0), int64(0), ""
	if pi.LatestCharge != nil {
		created = pi.LatestCharge.Created
	}
	if bt != nil {
		availableOn = bt.AvailableOn
		btStatus = bt.Status
	}

	fmt.Fprintln(w, "\nPayment Details:")
	fmt.Fprintf(w, "Payment ID: %s\n", pi.ID)
	fmt.Fprintf(w, "Status: %s\n", pi.Status)
	fmt.Fprintf(w, "Amount: %d %s\n", pi.Amount, pi.Currency)
	fmt.Fprintf(w, "Transaction Date: %s (UTC)\n", formatTimestamp(created))
	fmt.Fprintf(w, "Available on: %s (UTC)\n", formatTimestamp(availableOn))
	fmt.Fprintf(w, "Balance Transaction Status: %s\n", btStatus)
	fmt.Fprintf(w, "Gross amount: %d %s\n", bt.GrossAmount(), btCurrency(bt))
	fmt.Fprintf(w, "Fee: %d %s\n", btFee(bt), btCurrency(bt))
	fmt.Fprintf(w, "Net amount: %d %s\n", btNet(bt), btCurrency(bt))
}

func btCurrency(bt *model.BalanceTransaction) string {
	if bt == nil {
		return ""
	}
	return bt.Currency
}

func btFee(bt *model.BalanceTransaction) int64 {
	if bt == nil {
		return 0
	}
	return bt.Fee
}

func btNet(bt *model.BalanceTransaction) int64 {
	if bt == nil {
		return 0
	}
	return bt.Net
}

func formatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

// WriteDisclaimer reproduces the fixed note that displayed amounts are in the
// smallest unit of their currency.
func WriteDisclaimer(w io.Writer) {
	fmt.Fprintln(w, "\n*** IMPORTANT DISCLAIMER ***")
	fmt.Fprintln(w, "Conventionally, Stripe considers cents as the integer atomic unit for currency.")
	fmt.Fprintln(w, "Thus, for example in the Swiss case 100 chf in Stripe correspond actually to real 1 CHF.")
}
