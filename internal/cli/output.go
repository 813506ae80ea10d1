package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mcoot/tilepath/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	o.Print(response.Message{Message: msg})
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Message:
		fmt.Fprintln(o.w, v.Message)
	case response.User:
		o.printUser(v)
	case response.Login:
		o.printLogin(v)
	case response.Me:
		o.printMe(v)
	case response.GameCreated:
		fmt.Fprintf(o.w, "Game created: %s\n", v.GameID)
	case response.Game:
		o.printGame(v)
	case []response.Attempt:
		o.printAttempts(v)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u response.User) {
	fmt.Fprintf(o.w, "User: %s (%s)\n", u.Name, u.ID)
	fmt.Fprintf(o.w, "Gamer key: %s\n", u.GamerKey)
	fmt.Fprintf(o.w, "Phone: %s\n", u.Phone)
	fmt.Fprintf(o.w, "Role: %s\n", u.Role)
}

func (o *Output) printLogin(l response.Login) {
	o.printUser(l.User)
	fmt.Fprintf(o.w, "Token expires: %s\n", l.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printMe(m response.Me) {
	fmt.Fprintf(o.w, "User ID: %s\n", m.ID)
	fmt.Fprintf(o.w, "Role: %s\n", m.Role)
	fmt.Fprintf(o.w, "Token expires: %s\n", m.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "Creator: %s\n", g.Creator)
	fmt.Fprintf(o.w, "Max number: %d\n", g.MaxNumber)
	fmt.Fprintf(o.w, "Created: %s\n", g.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(o.w, "Numbered tiles (%d):\n", len(g.NumberedTiles))
	for _, t := range g.NumberedTiles {
		fmt.Fprintf(o.w, "  %d at (%d, %d)\n", t.Number, t.Position[0], t.Position[1])
	}
	o.printBoard(g.NumberedTiles)
}

// printBoard draws the smallest grid that holds every numbered tile
func (o *Output) printBoard(tiles []response.NumberedTile) {
	if len(tiles) == 0 {
		return
	}

	rows, cols := 0, 0
	cells := make(map[[2]int]int, len(tiles))
	for _, t := range tiles {
		if t.Position[0] < 0 || t.Position[1] < 0 {
			return
		}
		rows = max(rows, t.Position[0]+1)
		cols = max(cols, t.Position[1]+1)
		cells[t.Position] = t.Number
	}

	border := "   +" + strings.Repeat("---", cols) + "+"

	fmt.Fprintln(o.w)
	fmt.Fprint(o.w, "    ")
	for col := 0; col < cols; col++ {
		fmt.Fprintf(o.w, "%2d ", col)
	}
	fmt.Fprintln(o.w)
	fmt.Fprintln(o.w, border)

	for row := 0; row < rows; row++ {
		fmt.Fprintf(o.w, "%2d |", row)
		for col := 0; col < cols; col++ {
			if n, ok := cells[[2]int{row, col}]; ok {
				fmt.Fprintf(o.w, "%2d ", n)
			} else {
				fmt.Fprint(o.w, " . ")
			}
		}
		fmt.Fprintln(o.w, "|")
	}

	fmt.Fprintln(o.w, border)
}

func (o *Output) printAttempts(attempts []response.Attempt) {
	fmt.Fprintf(o.w, "Attempts (%d):\n", len(attempts))
	for _, a := range attempts {
		result := "failed"
		if a.Successful {
			result = "succeeded"
		}
		fmt.Fprintf(o.w, "  - %s %s in %.2fs", a.Player, result, a.Duration)
		if a.MainTime != nil {
			fmt.Fprintf(o.w, " (main %.2fs)", *a.MainTime)
		}
		fmt.Fprintf(o.w, " at %s\n", a.Timestamp.Format(time.RFC3339))

		steps := make([]string, len(a.Path))
		for i, p := range a.Path {
			steps[i] = fmt.Sprintf("(%d,%d)", p[0], p[1])
		}
		if len(steps) > 0 {
			fmt.Fprintf(o.w, "    path: %s\n", strings.Join(steps, " -> "))
		}
	}
}
