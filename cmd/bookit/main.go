// Command bookit browses experiences and books tickets against the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/ShauryaRahlon/Travel-Delite/internal/client"
	"github.com/ShauryaRahlon/Travel-Delite/internal/promo"
	"github.com/spf13/pflag"
)

const defaultAPIURL = "http://localhost:8080"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	apiURL := os.Getenv("BOOKIT_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	flagSet := pflag.NewFlagSet("bookit", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	promoCodes := os.Getenv("PROMO_CODES")

	flagSet.StringVar(&apiURL, "api", apiURL, "API base URL (env BOOKIT_API_URL)")
	flagSet.StringVar(&promoCodes, "promo-codes", promoCodes, "promo table used for price previews, CODE:type:value,... (env PROMO_CODES)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(stderr, flagSet)
		return errUsage
	}

	opts := []client.Option{}
	if strings.TrimSpace(promoCodes) != "" {
		codes, err := promo.ParseCodes(promoCodes)
		if err != nil {
			return fmt.Errorf("--promo-codes: %w", err)
		}
		opts = append(opts, client.WithPromoEngine(promo.New(codes)))
	}
	c := client.New(apiURL, opts...)
	switch rest[0] {
	case "list":
		return runList(ctx, c, stdout)
	case "show":
		if len(rest) != 2 {
			return fmt.Errorf("%w: bookit show <experience-id>", errUsage)
		}
		return runShow(ctx, c, stdout, rest[1])
	case "promo":
		if len(rest) != 2 {
			return fmt.Errorf("%w: bookit promo <code>", errUsage)
		}
		return runPromo(ctx, c, stdout, rest[1])
	case "book":
		return runBook(ctx, c, stdout, stderr, rest[1:])
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}
}

func runList(ctx context.Context, c *client.Client, out io.Writer) error {
	list, err := c.ListExperiences(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "no experiences available")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, exp := range list {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", exp.ID, exp.Name, exp.Price)
	}
	return tw.Flush()
}

func runShow(ctx context.Context, c *client.Client, out io.Writer, id string) error {
	exp, err := c.GetExperience(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%d)\n", exp.Name, exp.Price)
	if exp.Description != "" {
		fmt.Fprintln(out, exp.Description)
	}
	if len(exp.Slots) == 0 {
		fmt.Fprintln(out, "no slots scheduled")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tDATE\tTIME\tAVAILABLE")
	for _, slot := range exp.Slots {
		avail := fmt.Sprintf("%d/%d", slot.AvailableTickets, slot.TotalTickets)
		if slot.AvailableTickets == 0 {
			avail = "sold out"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", slot.ID, slot.Date.Format("2006-01-02"), slot.Time, avail)
	}
	return tw.Flush()
}

func runPromo(ctx context.Context, c *client.Client, out io.Writer, code string) error {
	res, err := c.ValidatePromo(ctx, code)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s %d\n", res.Message, res.PromoDetails.Type, res.PromoDetails.Value)
	return nil
}

func runBook(ctx context.Context, c *client.Client, out, stderr io.Writer, args []string) error {
	var experienceID, slotID, name, email, promoCode string

	flagSet := pflag.NewFlagSet("book", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&experienceID, "experience", "", "experience id")
	flagSet.StringVar(&slotID, "slot", "", "slot id")
	flagSet.StringVar(&name, "name", "", "name on the booking")
	flagSet.StringVar(&email, "email", "", "contact email")
	flagSet.StringVar(&promoCode, "promo", "", "promo code")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	required := []struct {
		flag  string
		value string
	}{
		{"--experience", experienceID},
		{"--slot", slotID},
		{"--name", name},
		{"--email", email},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.flag)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: book requires %s", errUsage, strings.Join(missing, ", "))
	}

	exp, err := c.GetExperience(ctx, experienceID)
	if err != nil {
		return err
	}
	if promoCode != "" {
		if _, err := c.ValidatePromo(ctx, promoCode); err != nil {
			return err
		}
	}
	quote := c.PreviewPrice(exp.Price, promoCode)
	fmt.Fprintf(out, "subtotal %d, discount %d, total %d\n", exp.Price, quote.DiscountAmount, quote.FinalPrice)

	booking, err := c.CreateBooking(ctx, client.BookingRequest{
		ExperienceID: experienceID,
		SlotID:       slotID,
		UserName:     name,
		UserEmail:    email,
		FinalPrice:   quote.FinalPrice,
		PromoCode:    promoCode,
	})
	if err != nil {
		if client.IsCode(err, "slot_unavailable") {
			return fmt.Errorf("slot %s is sold out", slotID)
		}
		return err
	}

	fmt.Fprintf(out, "booked %s for %s: charged %d\n", booking.ID, booking.UserName, booking.FinalPrice)
	return nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `bookit browses experiences and books tickets.

Usage:
  bookit [--api URL] [--promo-codes TABLE] list
  bookit [--api URL] show <experience-id>
  bookit [--api URL] promo <code>
  bookit [--api URL] book --experience ID --slot ID --name NAME --email EMAIL [--promo CODE]

Flags:
%s`, flagSet.FlagUsages())
}
