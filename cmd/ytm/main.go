package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/daycount"
)

type ytmInput struct {
	TaskID        string         `json:"task_id,omitempty"`
	ValuationDate string         `json:"valuation_date"`
	Price         float64        `json:"price"`
	DayCount      string         `json:"day_count"`
	Guess         float64        `json:"guess,omitempty"`
	Cashflows     []cashflowJSON `json:"cashflows"`
}

type cashflowJSON struct {
	Date      string  `json:"date"`
	Coupon    float64 `json:"coupon"`
	Principal float64 `json:"principal"`
}

type ytmOutput struct {
	TaskID           string  `json:"task_id,omitempty"`
	ValuationDate    string  `json:"valuation_date"`
	Price            float64 `json:"price"`
	Yield            float64 `json:"yield"`
	MacaulayDuration float64 `json:"macaulay_duration"`
	ModifiedDuration float64 `json:"modified_duration"`
	Convexity        float64 `json:"convexity"`
	Iterations       int     `json:"iterations"`
	Converged        bool    `json:"converged"`
	Error            string  `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: ytm -input <path>")
		fmt.Fprintln(os.Stderr, "Solve yield to maturity, duration and convexity from a price via Newton-Raphson.")
		return
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: ytm -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]ytmOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in)
		if err != nil {
			hadError = true
			outputs = append(outputs, ytmOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func process(in ytmInput) (*ytmOutput, error) {
	valuation, err := time.Parse("2006-01-02", in.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid valuation_date: %v", err)
	}
	dc, err := daycount.Parse(in.DayCount)
	if err != nil {
		return nil, err
	}

	cfs := make([]bond.Cashflow, 0, len(in.Cashflows))
	for _, cf := range in.Cashflows {
		d, err := time.Parse("2006-01-02", cf.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid cashflow date %s: %v", cf.Date, err)
		}
		cfs = append(cfs, bond.Cashflow{
			Date:      d,
			Coupon:    cf.Coupon,
			Principal: cf.Principal,
		})
	}

	res, err := bond.SolveYield(cfs, valuation, in.Price, dc, in.Guess)
	if err != nil && !errors.Is(err, bond.ErrNonConvergent) {
		return nil, err
	}

	out := &ytmOutput{
		TaskID:           in.TaskID,
		ValuationDate:    in.ValuationDate,
		Price:            in.Price,
		Yield:            res.Yield,
		MacaulayDuration: res.MacaulayDuration,
		ModifiedDuration: res.ModifiedDuration,
		Convexity:        res.Convexity,
		Iterations:       res.Iterations,
		Converged:        res.Converged,
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out, nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]ytmInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []ytmInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input ytmInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []ytmInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(ytmOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
