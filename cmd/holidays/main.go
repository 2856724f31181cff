package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/meenmo/bondlib/calendar"
)

type holidaysOutput struct {
	Calendar string   `json:"calendar,omitempty"`
	Year     int      `json:"year,omitempty"`
	Holidays []string `json:"holidays,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func main() {
	name := flag.String("calendar", "UK", "Calendar name (UK, TARGET, US, NONE); comma-separate for a union")
	fromYear := flag.Int("from", 0, "First year (required)")
	toYear := flag.Int("to", 0, "Last year (defaults to -from)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help || *fromYear == 0 {
		fmt.Fprintln(os.Stderr, "Usage: holidays -calendar UK -from 2021 [-to 2025]")
		fmt.Fprintln(os.Stderr, "List the holiday dates a calendar's rules produce per year.")
		if *help {
			return
		}
		os.Exit(2)
	}

	last := *toYear
	if last == 0 {
		last = *fromYear
	}
	if last < *fromYear {
		exitError(fmt.Sprintf("invalid year range %d..%d", *fromYear, last))
	}

	cal, err := resolve(*name)
	if err != nil {
		exitError(err.Error())
	}

	outputs := make([]holidaysOutput, 0, last-*fromYear+1)
	for year := *fromYear; year <= last; year++ {
		days := cal.HolidaysInYear(year)
		formatted := make([]string, 0, len(days))
		for _, d := range days {
			formatted = append(formatted, d.Format("2006-01-02"))
		}
		outputs = append(outputs, holidaysOutput{
			Calendar: *name,
			Year:     year,
			Holidays: formatted,
		})
	}

	b, _ := json.Marshal(outputs)
	fmt.Println(string(b))
}

func resolve(name string) (calendar.BusinessCalendar, error) {
	parts := strings.Split(name, ",")
	if len(parts) == 1 {
		return calendar.ByName(strings.TrimSpace(parts[0]))
	}

	union := make(calendar.Union, 0, len(parts))
	for _, part := range parts {
		cal, err := calendar.ByName(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		union = append(union, cal)
	}
	return union, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(holidaysOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
