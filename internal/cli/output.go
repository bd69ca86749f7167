package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case ChartResult:
		o.printChartResult(v)
	case IdentityResult:
		fmt.Printf("Discord user ID: %s\n", v.DiscordUserID)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.ID)
	fmt.Printf("Currency: %d\n", p.Currency)
	fmt.Printf("Created: %s\n", p.CreatedAt)
	if p.BirthDate != "" {
		fmt.Printf("Birth: %s %s, %s\n", p.BirthDate, p.BirthTime, p.BirthLocation)
	}
	if p.SunSign != "" {
		fmt.Printf("Sun: %s  Moon: %s  Ascendant: %s  Midheaven: %s\n",
			p.SunSign, p.MoonSign, p.AscendantSign, p.MidheavenSign)
	}
}

func (o *Output) printChartResult(c ChartResult) {
	fmt.Printf("Sun: %s\n", c.SunSign)
	fmt.Printf("Moon: %s\n", c.MoonSign)
	fmt.Printf("Ascendant: %s\n", c.AscendantSign)
	fmt.Printf("Midheaven: %s\n", c.MidheavenSign)
}
