package itinerary

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/galagram/galagram-api/app/observability/metrics"
	"github.com/galagram/galagram-api/internal/types"
)

// ExportedItinerary carries one rendered download.
type ExportedItinerary struct {
	Filename    string
	ContentType string
	Data        []byte
}

func recordExport(ctx context.Context) {
	metrics.Get().ItineraryExportsTotal.Add(ctx, 1)
}

// renderText produces the plain-text share format: a short header, then one
// block per day that has activities, chronological within the day.
func renderText(it types.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", it.Title)
	fmt.Fprintf(&b, "Destination: %s\n", it.Destination)
	fmt.Fprintf(&b, "Dates: %s - %s\n\n",
		it.StartDate.Format("1/2/2006"), it.EndDate.Format("1/2/2006"))

	for _, day := range daysWithActivities(it) {
		fmt.Fprintf(&b, "Day %d:\n", day)
		for _, a := range it.Activities {
			if a.Day != day {
				continue
			}
			fmt.Fprintf(&b, "  %s - %s\n", a.Time, a.Name)
			if a.Notes != "" {
				fmt.Fprintf(&b, "    Note: %s\n", a.Notes)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderPDF(it types.Itinerary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFillColor(13, 71, 161)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "GalaGram", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Philippine Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 71, 161)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(125, 7, value, "", 1, "L", false, 0, "")
	}

	sectionHeader("Trip Overview")
	row("Title", it.Title)
	row("Destination", it.Destination)
	row("Dates", fmt.Sprintf("%s - %s",
		it.StartDate.Format("02 Jan 2006"), it.EndDate.Format("02 Jan 2006")))
	row("Duration", fmt.Sprintf("%d day(s)", it.DayCount()))
	pdf.Ln(4)

	for _, day := range daysWithActivities(it) {
		sectionHeader(fmt.Sprintf("Day %d", day))
		for _, a := range it.Activities {
			if a.Day != day {
				continue
			}
			row(a.Time, a.Name)
			if a.Notes != "" {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.SetTextColor(110, 110, 110)
				pdf.SetX(65)
				pdf.MultiCell(125, 5, a.Notes, "", "L", false)
				pdf.SetTextColor(0, 0, 0)
			}
		}
		pdf.Ln(2)
	}

	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Generated by GalaGram on %s", time.Now().Format("02 Jan 2006")),
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// daysWithActivities returns the distinct day numbers that have at least one
// activity, ascending. Activities arrive pre-sorted from the store.
func daysWithActivities(it types.Itinerary) []int {
	var days []int
	seen := map[int]bool{}
	for _, a := range it.Activities {
		if !seen[a.Day] {
			seen[a.Day] = true
			days = append(days, a.Day)
		}
	}
	return days
}
