package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/daycount"
	"github.com/meenmo/bondlib/money"
)

type scheduleInput struct {
	IssueDate    string  `json:"issue_date"`
	MaturityDate string  `json:"maturity_date"`
	CouponRate   float64 `json:"coupon_rate"`
	Frequency    int     `json:"frequency"`
	Notional     float64 `json:"notional"`
	Currency     string  `json:"currency"`
	DayCount     string  `json:"day_count"`
	Calendar     string  `json:"calendar"`
	Adjustment   string  `json:"adjustment"`
	Stub         string  `json:"stub,omitempty"`
}

type scheduleRow struct {
	Date      string  `json:"date"`
	Coupon    float64 `json:"coupon"`
	Principal float64 `json:"principal"`
	Amount    float64 `json:"amount"`
}

type scheduleOutput struct {
	Currency  string        `json:"currency,omitempty"`
	Cashflows []scheduleRow `json:"cashflows,omitempty"`
	Error     string        `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: schedule -input <path>")
		fmt.Fprintln(os.Stderr, "Roll out a fixed-coupon bond's cash-flow schedule from its terms.")
		return
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: schedule -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	var in scheduleInput
	if err := json.Unmarshal(raw, &in); err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	out, err := process(in)
	if err != nil {
		exitError(err.Error())
	}

	b, _ := json.Marshal(out)
	fmt.Println(string(b))
}

func process(in scheduleInput) (*scheduleOutput, error) {
	terms, err := termsFromInput(in)
	if err != nil {
		return nil, err
	}

	cfs, err := bond.RollOut(terms)
	if err != nil {
		return nil, err
	}

	rows := make([]scheduleRow, 0, len(cfs))
	for _, cf := range cfs {
		rows = append(rows, scheduleRow{
			Date:      cf.Date.Format("2006-01-02"),
			Coupon:    cf.Coupon,
			Principal: cf.Principal,
			Amount:    cf.Amount(),
		})
	}
	return &scheduleOutput{Currency: string(terms.Currency), Cashflows: rows}, nil
}

func termsFromInput(in scheduleInput) (bond.Terms, error) {
	issue, err := time.Parse("2006-01-02", in.IssueDate)
	if err != nil {
		return bond.Terms{}, fmt.Errorf("invalid issue_date: %v", err)
	}
	maturity, err := time.Parse("2006-01-02", in.MaturityDate)
	if err != nil {
		return bond.Terms{}, fmt.Errorf("invalid maturity_date: %v", err)
	}
	dc, err := daycount.Parse(in.DayCount)
	if err != nil {
		return bond.Terms{}, err
	}
	cal, err := calendar.ByName(in.Calendar)
	if err != nil {
		return bond.Terms{}, err
	}
	adj, err := calendar.ParseAdjustment(in.Adjustment)
	if err != nil {
		return bond.Terms{}, err
	}
	cur, err := money.ParseCurrency(in.Currency)
	if err != nil {
		return bond.Terms{}, err
	}

	stub := bond.ShortFrontStub
	if in.Stub != "" {
		stub = bond.StubPolicy(in.Stub)
		if stub != bond.ShortFrontStub && stub != bond.LongFrontStub {
			return bond.Terms{}, fmt.Errorf("unknown stub policy %q", in.Stub)
		}
	}

	return bond.Terms{
		IssueDate:    issue,
		MaturityDate: maturity,
		CouponRate:   in.CouponRate,
		Frequency:    in.Frequency,
		Notional:     in.Notional,
		Currency:     cur,
		DayCount:     dc,
		Calendar:     cal,
		Adjustment:   adj,
		Stub:         stub,
	}, nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func exitError(msg string) {
	b, _ := json.Marshal(scheduleOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
