package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"tripflow/internal/models/trip_models"
	"tripflow/pkg/utils"
)

type PDFStyle string

const (
	PDFStyleClassic PDFStyle = "classic"
	PDFStyleCompact PDFStyle = "compact"
)

type PDFServiceInterface interface {
	RenderItinerary(itinerary *trip_models.Itinerary, style PDFStyle) ([]byte, error)
}

type PDFService struct {
	logger *zap.Logger
}

func NewPDFService(logger *zap.Logger) PDFServiceInterface {
	return &PDFService{logger: logger}
}

func (s *PDFService) RenderItinerary(itinerary *trip_models.Itinerary, style PDFStyle) ([]byte, error) {
	if itinerary == nil || itinerary.TotalDays() == 0 {
		return nil, utils.ErrInvalidInput
	}
	if style != PDFStyleCompact {
		style = PDFStyleClassic
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)

	s.renderTitlePage(pdf, itinerary)
	for i := range itinerary.Days {
		s.renderDay(pdf, &itinerary.Days[i], style)
	}
	s.renderAppendix(pdf, itinerary)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	s.logger.Info("itinerary pdf rendered",
		zap.String("title", itinerary.Title),
		zap.Int("days", itinerary.TotalDays()),
		zap.String("style", string(style)))
	return buf.Bytes(), nil
}

func (s *PDFService) renderTitlePage(pdf *gofpdf.Fpdf, it *trip_models.Itinerary) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 26)
	pdf.Ln(40)
	pdf.MultiCell(0, 12, sanitizePDFText(it.Title), "", "C", false)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 12)
	if it.Description != "" {
		pdf.MultiCell(0, 6, sanitizePDFText(it.Description), "", "C", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 11)
	var facts []string
	if it.StartDate.Valid && it.EndDate.Valid {
		facts = append(facts, fmt.Sprintf("%s to %s", it.StartDate.String(), it.EndDate.String()))
	}
	facts = append(facts, fmt.Sprintf("%d days", it.TotalDays()))
	if it.Travelers > 0 {
		facts = append(facts, fmt.Sprintf("%d travelers", it.Travelers))
	}
	if it.BudgetEstimate != "" {
		facts = append(facts, "Budget: "+it.BudgetEstimate)
	}
	pdf.MultiCell(0, 6, sanitizePDFText(strings.Join(facts, "  |  ")), "", "C", false)
}

func (s *PDFService) renderDay(pdf *gofpdf.Fpdf, day *trip_models.DayPlan, style PDFStyle) {
	if style == PDFStyleClassic {
		pdf.AddPage()
	} else if pdf.GetY() > 230 {
		pdf.AddPage()
	} else {
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "B", 16)
	heading := fmt.Sprintf("Day %d", day.DayNumber)
	if day.Title != "" {
		heading += ": " + day.Title
	}
	pdf.MultiCell(0, 8, sanitizePDFText(heading), "", "L", false)

	pdf.SetFont("Helvetica", "I", 10)
	var sub []string
	if day.Date.Valid {
		sub = append(sub, day.Date.String())
	}
	if day.Location != "" {
		sub = append(sub, day.Location)
	}
	if len(sub) > 0 {
		pdf.MultiCell(0, 5, sanitizePDFText(strings.Join(sub, " - ")), "", "L", false)
	}

	if day.Summary != "" && style == PDFStyleClassic {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, sanitizePDFText(day.Summary), "", "L", false)
	}
	pdf.Ln(3)

	for i := range day.Activities {
		s.renderActivity(pdf, &day.Activities[i], style)
	}

	if len(day.Tips) > 0 && style == PDFStyleClassic {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 5, "Tips", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, tip := range day.Tips {
			pdf.MultiCell(0, 4.5, sanitizePDFText("- "+tip.Title+": "+tip.Content), "", "L", false)
		}
	}
}

func (s *PDFService) renderActivity(pdf *gofpdf.Fpdf, act *trip_models.Activity, style PDFStyle) {
	pdf.SetFont("Helvetica", "B", 11)
	line := act.Name
	if act.StartTime.Valid {
		window := act.StartTime.String()
		if act.EndTime.Valid {
			window += " - " + act.EndTime.String()
		}
		line = window + "  " + line
	}
	pdf.MultiCell(0, 5.5, sanitizePDFText(line), "", "L", false)

	pdf.SetFont("Helvetica", "", 9)
	if act.Description != "" && style == PDFStyleClassic {
		pdf.MultiCell(0, 4.5, sanitizePDFText(act.Description), "", "L", false)
	}
	var details []string
	if act.Location != "" {
		details = append(details, act.Location)
	}
	if act.CostEstimate != "" {
		details = append(details, "Cost: "+act.CostEstimate)
	}
	if act.BookingRequired {
		details = append(details, "Booking required")
	}
	if len(details) > 0 {
		pdf.SetFont("Helvetica", "I", 8.5)
		pdf.MultiCell(0, 4, sanitizePDFText(strings.Join(details, "  |  ")), "", "L", false)
	}
	pdf.Ln(1.5)
}

func (s *PDFService) renderAppendix(pdf *gofpdf.Fpdf, it *trip_models.Itinerary) {
	if len(it.GeneralTips) == 0 && len(it.PackingList) == 0 && len(it.EmergencyContacts) == 0 {
		return
	}
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Before You Go", "", 1, "L", false, 0, "")

	if len(it.GeneralTips) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 6, "General Tips", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, tip := range it.GeneralTips {
			pdf.MultiCell(0, 4.5, sanitizePDFText("- "+tip.Title+": "+tip.Content), "", "L", false)
		}
	}

	if len(it.PackingList) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 6, "Packing List", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, item := range it.PackingList {
			pdf.MultiCell(0, 4.5, sanitizePDFText("- "+item), "", "L", false)
		}
	}

	if len(it.EmergencyContacts) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 6, "Emergency Contacts", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		keys := make([]string, 0, len(it.EmergencyContacts))
		for k := range it.EmergencyContacts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pdf.MultiCell(0, 4.5, sanitizePDFText(k+": "+it.EmergencyContacts[k]), "", "L", false)
		}
	}
}

// sanitizePDFText strips characters outside the core fonts' cp1252 range so
// gofpdf does not emit garbage glyphs.
func sanitizePDFText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 256 {
			b.WriteRune(r)
		} else {
			b.WriteRune('?')
		}
	}
	return b.String()
}
