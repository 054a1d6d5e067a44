package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"videopoker-server/pkg/deck"
	"videopoker-server/pkg/poker"
	"videopoker-server/pkg/videopoker"
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

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *AccountResult:
		o.printAccount(v)
	case *videopoker.Status:
		o.printStatus(v)
	case *videopoker.Started:
		o.printStarted(v)
	case *videopoker.Discarded:
		o.printDiscarded(v)
	case *videopoker.Revealed:
		o.printRevealed(v)
	case []poker.PayTableRow:
		o.printPayTable(v)
	case *HealthResult:
		_, _ = fmt.Fprint(o.w, pterm.Success.Sprintfln("%s %s", v.Status, v.Version))
	default:
		o.printJSON(data)
	}
}

// AccountResult is the response of signup, signin, and login
type AccountResult struct {
	videopoker.Account
	Token string `json:"token"`
}

// HealthResult is the response of the health endpoint
type HealthResult struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (o *Output) printAccount(a *AccountResult) {
	_, _ = fmt.Fprint(o.w, pterm.Success.Sprintfln("Signed in as %s (%s)", pterm.LightCyan(a.Name), a.ID))
	_, _ = fmt.Fprintf(o.w, "Wallet: %d\n", a.Wallet)
}

func (o *Output) printStatus(s *videopoker.Status) {
	table, _ := pterm.DefaultTable.WithData(pterm.TableData{
		{"Wallet", "Win pool", "House profit"},
		{strconv.FormatInt(s.Wallet, 10), strconv.FormatInt(s.WinPool, 10), strconv.FormatInt(s.HouseProfit, 10)},
	}).WithHasHeader().Srender()
	_, _ = fmt.Fprintln(o.w, table)
}

func (o *Output) printStarted(s *videopoker.Started) {
	o.printHand("ROUND "+s.RoundID, s.Cards)
	_, _ = fmt.Fprintf(o.w, "Wallet: %d   Win pool: %d\n", s.Wallet, s.WinPool)
}

func (o *Output) printDiscarded(d *videopoker.Discarded) {
	o.printHand("NEW HAND", d.Cards)
	_, _ = fmt.Fprintf(o.w, "Wallet: %d   Total bet: %d\n", d.Wallet, d.TotalBet)
}

func (o *Output) printRevealed(r *videopoker.Revealed) {
	if r.Payout > 0 {
		_, _ = fmt.Fprint(o.w, pterm.Success.Sprintfln("%s pays %dx, won %d", r.HandRank, r.Multiplier, r.Payout))
	} else {
		_, _ = fmt.Fprint(o.w, pterm.Warning.Sprintfln("%s, no payout", r.HandRank))
	}

	_, _ = fmt.Fprintf(o.w, "Wallet: %d   Win pool: %d   House profit: %d\n", r.Wallet, r.WinPool, r.HouseProfit)
}

func (o *Output) printPayTable(rows []poker.PayTableRow) {
	data := pterm.TableData{{"Hand", "Pays"}}
	for _, row := range rows {
		data = append(data, []string{row.Hand, strconv.FormatInt(row.Multiplier, 10) + "x"})
	}

	table, _ := pterm.DefaultTable.WithData(data).WithHasHeader().Srender()
	_, _ = fmt.Fprintln(o.w, table)
}

// printHand draws the cards in a box with their positions underneath
func (o *Output) printHand(title string, cards []deck.Card) {
	faces := make([]string, len(cards))
	positions := make([]string, len(cards))
	for i, c := range cards {
		faces[i] = cardFace(c)
		positions[i] = fmt.Sprintf("%-4d", i)
	}

	box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).WithTitle(title).WithTitleTopCenter()
	_, _ = fmt.Fprintln(o.w, box.Sprint(strings.Join(faces, " ")+"\n"+strings.Join(positions, " ")))
}

func cardFace(c deck.Card) string {
	face := fmt.Sprintf("%-4s", c.String())
	if c.Suit == deck.Hearts || c.Suit == deck.Diamonds {
		return pterm.LightRed(face)
	}

	return face
}
