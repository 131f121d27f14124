package merit

import (
	"database/sql"
	"fmt"
	"log"

	"campus360/app/database"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ExportMeritListAPI streams a merit list as an Excel workbook for notice
// board printing.
func ExportMeritListAPI(c *fiber.Ctx, db *sql.DB) error {
	listID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid merit list id")
	}

	list, err := database.GetMeritList(db, listID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Merit list not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch merit list")
	}

	program, err := database.GetProgramByID(db, list.ProgramID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch program")
	}

	entries, err := database.GetMeritListEntries(db, list.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch merit list entries")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Merit List"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s (%s shift) - Merit List #%d", program.Name, list.Shift, list.ListNumber))
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Valid until %s", list.ValidUntil.Time.Format("2006-01-02")))

	headers := []string{"Position", "Applicant", "CNIC", "Percentage", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, h)
	}

	for i, e := range entries {
		row := i + 5
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.MeritPosition)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Applicant.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.Applicant.CNIC)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), e.RelevantPercentage)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), string(e.Status))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Failed to write merit list workbook: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to export merit list")
	}

	filename := fmt.Sprintf("merit_list_%d_%s_%d.xlsx", list.ProgramID, list.Shift, list.ListNumber)
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
