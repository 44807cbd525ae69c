// Package report renders priced contracts and structures for the command line.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/optstruct/models"
	"github.com/bcdannyboy/optstruct/positions"
	"github.com/bcdannyboy/optstruct/pricing"
	"github.com/bcdannyboy/optstruct/probability"
)

// Places is the number of decimals shown in tables.
const Places = 4

type LegRow struct {
	Kind   string        `json:"kind"`
	Strike float64       `json:"strike"`
	Weight int           `json:"weight"`
	Greeks models.Greeks `json:"greeks"`
}

type Report struct {
	Title      string              `json:"title"`
	Model      string              `json:"model"`
	Legs       []LegRow            `json:"legs,omitempty"`
	Total      models.Greeks       `json:"total"`
	Simulation *probability.Result `json:"simulation,omitempty"`
}

func FromContract(model models.Model, c pricing.Contract) Report {
	return Report{
		Title: fmt.Sprintf("%s K=%g", c.Kind(), c.Strike()),
		Model: model.String(),
		Total: pricing.GreeksOf(c),
	}
}

func FromStructure(model models.Model, s *positions.Structure) Report {
	r := Report{
		Title: string(s.Kind()),
		Model: model.String(),
		Total: s.Greeks(),
	}
	for _, l := range s.Legs() {
		r.Legs = append(r.Legs, LegRow{
			Kind:   l.Contract.Kind().String(),
			Strike: l.Contract.Strike(),
			Weight: l.Weight,
			Greeks: pricing.GreeksOf(l.Contract),
		})
	}
	return r
}

func round(v float64) string {
	return decimal.NewFromFloat(v).Round(Places).StringFixed(Places)
}

func greeksRow(label string, weight string, g models.Greeks) []string {
	return []string{label, weight, round(g.Price), round(g.Delta), round(g.Gamma), round(g.Vega), round(g.Theta), round(g.Rho)}
}

// WriteTable renders the report as an ASCII table.
func WriteTable(w io.Writer, r Report) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n", r.Title, r.Model); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Leg", "Weight", "Price", "Delta", "Gamma", "Vega", "Theta", "Rho"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, l := range r.Legs {
		table.Append(greeksRow(fmt.Sprintf("%s %g", l.Kind, l.Strike), fmt.Sprintf("%+d", l.Weight), l.Greeks))
	}
	table.Append(greeksRow("Total", "", r.Total))
	table.Render()

	if r.Simulation == nil {
		return nil
	}
	sim := r.Simulation
	st := tablewriter.NewWriter(w)
	st.SetHeader([]string{"Paths", "MC Value", "Std Err", "P(Profit)", "VaR95", "VaR99", "ES95"})
	st.SetAlignment(tablewriter.ALIGN_RIGHT)
	st.Append([]string{
		fmt.Sprintf("%d", sim.Paths),
		round(sim.DiscountedValue),
		round(sim.StandardError),
		decimal.NewFromFloat(sim.ProbabilityOfProfit * 100).StringFixed(2) + "%",
		round(sim.VaR95),
		round(sim.VaR99),
		round(sim.ExpectedShortfall),
	})
	st.Render()
	return nil
}

// WriteJSON writes the report as a single JSON document.
func WriteJSON(w io.Writer, r Report) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// Write dispatches on the output name ("table" or "json").
func Write(w io.Writer, format string, r Report) error {
	switch format {
	case "json":
		return WriteJSON(w, r)
	case "table", "":
		return WriteTable(w, r)
	}
	return fmt.Errorf("unknown output %q: %w", format, models.ErrInvalidInput)
}
