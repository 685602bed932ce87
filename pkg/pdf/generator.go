package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/ss-immigration/application_service/internal/domain"
)

// Generator renders the printable approval form an applicant presents when
// collecting the issued document.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) ApprovalPDF(app *domain.Application) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "Letter", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "REPUBLIC OF SOUTH SUDAN", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 14)
	doc.CellFormat(0, 8, "DIRECTORATE OF NATIONALITY, PASSPORTS AND IMMIGRATION", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 10, "APPROVED APPLICATION FORM", "", 1, "C", false, 0, "")
	doc.Ln(6)

	middle := ""
	if app.MiddleName != nil {
		middle = *app.MiddleName + " "
	}
	nationalID := "N/A"
	if app.NationalIDNumber != nil {
		nationalID = *app.NationalIDNumber
	}

	lines := []string{
		fmt.Sprintf("Confirmation Number: %s", app.ConfirmationNumber),
		fmt.Sprintf("Application Type: %s", app.ApplicationType.DisplayName()),
		fmt.Sprintf("Status: %s", app.Status),
		"",
		"APPLICANT DETAILS:",
		fmt.Sprintf("Name: %s %s%s", app.FirstName, middle, app.LastName),
		fmt.Sprintf("Date of Birth: %s", app.DateOfBirth.Format("2006-01-02")),
		fmt.Sprintf("Gender: %s", app.Gender),
		fmt.Sprintf("Nationality: %s", app.Nationality),
		fmt.Sprintf("National ID: %s", nationalID),
		fmt.Sprintf("Father's Name: %s", app.FatherName),
		fmt.Sprintf("Mother's Name: %s", app.MotherName),
		"",
		"CONTACT DETAILS:",
		fmt.Sprintf("Phone: %s", app.PhoneNumber),
		fmt.Sprintf("Email: %s", app.Email),
		fmt.Sprintf("Address: %s, %s, %s", app.PlaceOfResidence, app.City, app.State),
		"",
		"COLLECTION INSTRUCTIONS:",
		"1. Bring this approval form (printed or digital)",
		"2. Visit Immigration Head Office in Juba",
		"3. Present your original National ID",
		"4. Collection hours: Monday-Friday, 8:00 AM - 4:00 PM",
	}

	doc.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		doc.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
