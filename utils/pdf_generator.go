package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"tuneboard/models"
	"tuneboard/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GenerateUsersReportPDF renders the admin user report (active accounts
// plus deletion tombstones) to a PDF via headless Chrome.
func GenerateUsersReportPDF(repo repository.UserRepository) ([]byte, error) {
	users, err := repo.GetAllUsers()
	if err != nil {
		return nil, err
	}
	deleted, err := repo.GetDeletedUsers()
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFiles("templates/users_report.html")
	if err != nil {
		return nil, err
	}

	data := models.UsersReportData{
		Users:        users,
		DeletedUsers: deleted,
		GeneratedAt:  time.Now().UTC(),
		ActiveCount:  len(users),
		DeletedCount: len(deleted),
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		table {
			width: 100%;
			border-collapse: collapse;
		}
		th, td {
			border: 1px solid #444;
			padding: 4px 8px;
			text-align: left;
		}
		.report-section {
			page-break-inside: avoid;
			margin-bottom: 18px;
		}
		</style>
		</head>
		<body>` + body.String() + `</body></html>`

	// chromedp renders from a file URL; write the HTML to a temp file.
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "users_report_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
