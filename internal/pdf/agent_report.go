package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"callcenter/internal/lifecycle"
	"callcenter/internal/models"
)

// Generator renders report documents; handy to fake in tests.
type Generator interface {
	GenerateAgentReport(data AgentReportData) (string, error)
}

// ReportGenerator writes PDFs under RootDir.
type ReportGenerator struct {
	RootDir  string // e.g. "./files"
	FontPath string // optional TTF with Cyrillic/Arabic glyphs; core Helvetica when empty
	fontName string
}

type AgentReportData struct {
	AgentID   int64
	AgentName string
	Tasks     []models.Task
	CreatedAt time.Time
	Filename  string // base name only; generated when empty
}

func NewReportGenerator(rootDir, fontPath string) *ReportGenerator {
	name := "Helvetica"
	if fontPath != "" {
		name = "DejaVu"
	}
	return &ReportGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: name,
	}
}

// GenerateAgentReport writes the agent's task sheet and returns the file path.
func (g *ReportGenerator) GenerateAgentReport(data AgentReportData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("agent_report_%d_%s.pdf", data.AgentID, data.CreatedAt.Format("20060102"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Agent report #%d", data.AgentID), true)
	pdf.SetAuthor("Call Center CRM", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "AGENT TASK REPORT", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 12)
	pdf.CellFormat(0, 7, data.CreatedAt.Format("02.01.2006 15:04"), "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	sum := lifecycle.Summarize(data.Tasks)
	g.sectionTitle(pdf, "Summary")
	g.kvLine(pdf, "Agent", fmt.Sprintf("%s (#%d)", data.AgentName, data.AgentID))
	g.kvLine(pdf, "Total tasks", fmt.Sprintf("%d", sum.Total))
	g.kvLine(pdf, "Pending", fmt.Sprintf("%d", sum.Pending))
	g.kvLine(pdf, "In progress", fmt.Sprintf("%d", sum.InProgress))
	g.kvLine(pdf, "Completed", fmt.Sprintf("%d", sum.Completed))
	g.kvLine(pdf, "Avg. progress", fmt.Sprintf("%d%%", sum.AverageProgress))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Tasks")
	widths := []float64{12, 48, 22, 26, 20, 42}
	header := []string{"ID", "Retailer", "Priority", "Status", "Progress", "Outcome"}
	pdf.SetFont(g.fontName, "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(g.fontName, "", 10)
	for _, t := range data.Tasks {
		outcome := "-"
		if t.Outcome != nil {
			outcome = string(*t.Outcome)
		}
		row := []string{
			fmt.Sprintf("%d", t.ID),
			t.RetailerName,
			string(t.Priority),
			string(t.Status),
			fmt.Sprintf("%d%%", lifecycle.DisplayProgress(t)),
			outcome,
		}
		for i, v := range row {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("write agent report: %w", err)
	}
	return absPath, nil
}

// ===== helpers =====

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // no path traversal
	return filepath.Join(g.RootDir, filename), nil
}

func (g *ReportGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	if g.FontPath == "" {
		return
	}
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}
