package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/models"
)

// Message is a single HTML email.
type Message struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
}

var leakReportTemplate = template.Must(template.New("leak_report").Parse(`
<h2>New Water Leak Report Received</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Contact:</strong> {{.Contact}}</p>
<p><strong>Location:</strong> {{.Location}}</p>
<p><strong>Issue:</strong> {{.Issue}}</p>
<p><strong>Report Time:</strong> {{.ReportTime}}</p>
<hr>
<p><strong>Total Active Leaks:</strong> {{.PendingCount}}</p>
`))

type leakReportData struct {
	Name         string
	Contact      string
	Location     string
	Issue        string
	ReportTime   string
	PendingCount int64
}

// ComposeLeakReport builds the maintenance notification for a newly stored
// report. pendingCount includes the report itself.
func ComposeLeakReport(report *models.Report, pendingCount int64, from, to string) (Message, error) {
	var body bytes.Buffer
	err := leakReportTemplate.Execute(&body, leakReportData{
		Name:         report.Name,
		Contact:      report.Contact,
		Location:     report.Location,
		Issue:        report.Issue,
		ReportTime:   report.CreatedAtString(),
		PendingCount: pendingCount,
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render leak report email: %w", err)
	}

	return Message{
		From:     from,
		To:       to,
		Subject:  "New Water Leak Report - " + report.Location,
		HTMLBody: body.String(),
	}, nil
}
