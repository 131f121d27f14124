package merit

import (
	"database/sql"
	"log"
	"time"

	"campus360/app/config"
	"campus360/app/database"
	"campus360/app/models"

	"github.com/gofiber/fiber/v2"
)

// GenerateMeritListRequest is the payload for merit list generation.
type GenerateMeritListRequest struct {
	ProgramID  int               `json:"program_id"`
	Shift      string            `json:"shift"`
	ListNumber int               `json:"list_number"`
	ValidUntil models.CustomTime `json:"valid_until"`
	SeatCount  int               `json:"seat_count"`
}

// GenerateMeritListAPI validates the request and creates the next merit
// list for an admission cycle. All failures are reported as a list of
// error strings with nothing persisted; the list plus its entries commit
// as one unit.
func GenerateMeritListAPI(c *fiber.Ctx, db *sql.DB) error {
	var req GenerateMeritListRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var errors []string
	if req.ProgramID <= 0 {
		errors = append(errors, "Program is required.")
	}
	if !models.ValidShift(req.Shift) {
		errors = append(errors, "Shift must be morning or evening.")
	}
	if req.ListNumber <= 0 {
		errors = append(errors, "List number must be 1 or greater.")
	}
	if req.ValidUntil.Time.IsZero() {
		errors = append(errors, "Validity date is required.")
	} else if models.DatePassed(req.ValidUntil.Time, time.Now()) {
		errors = append(errors, "Validity date must not be in the past.")
	}
	if req.ListNumber == 1 && req.SeatCount <= 0 {
		errors = append(errors, "Seat count must be greater than zero.")
	}
	if len(errors) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "errors": errors})
	}

	shift := models.Shift(req.Shift)

	program, err := database.GetProgramByID(db, req.ProgramID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"success": false, "errors": []string{"Selected program does not exist."}})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load program")
	}

	session, err := database.GetActiveSessionForDuration(db, program.DurationYears)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"success": false,
				"errors": []string{"No active admission session found for this program's duration."}})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load academic session")
	}

	exists, err := database.MeritListExists(db, program.ID, shift, session.ID, req.ListNumber)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing lists")
	}
	if exists {
		return c.Status(400).JSON(fiber.Map{"success": false,
			"errors": []string{"A merit list with this number already exists for this program and shift."}})
	}

	// Seat budget: list 1 takes the requested count, later lists inherit
	// the unfilled remainder of the previous list once it has expired.
	seatBudget := req.SeatCount
	startPosition := 1
	if req.ListNumber > 1 {
		prev, err := database.GetMeritListByNumber(db, program.ID, shift, session.ID, req.ListNumber-1)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(400).JSON(fiber.Map{"success": false,
					"errors": []string{"The previous merit list does not exist."}})
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load previous merit list")
		}
		if !prev.Expired(time.Now()) {
			return c.Status(400).JSON(fiber.Map{"success": false,
				"errors": []string{"The previous merit list is still valid; wait until it expires."}})
		}
		seatBudget = prev.RemainingSeats()

		admitted, err := database.CountAdmittedInEarlierLists(db, program.ID, shift, session.ID, req.ListNumber)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to count earlier admissions")
		}
		startPosition = admitted + 1
	}
	if seatBudget <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false,
			"errors": []string{"No seats available for this merit list."}})
	}

	candidates, err := database.EligibleCandidates(db, program.ID, shift, session.ID)
	if err != nil {
		log.Printf("Failed to load eligible candidates: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load eligible applicants")
	}

	ranked := RankCandidates(candidates)
	if len(ranked) == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false,
			"errors": []string{"No eligible applicants found for this program and shift."}})
	}
	if len(ranked) > seatBudget {
		ranked = ranked[:seatBudget]
	}

	list := &models.MeritList{
		ProgramID:  program.ID,
		SessionID:  session.ID,
		Shift:      shift,
		ListNumber: req.ListNumber,
		TotalSeats: seatBudget,
		ValidUntil: req.ValidUntil,
		IsActive:   true,
	}
	if err := database.CreateMeritList(db, list, ranked, startPosition); err != nil {
		log.Printf("Failed to create merit list: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create merit list")
	}

	log.Printf("Generated merit list #%d for program %d (%s): %d entries from position %d",
		list.ListNumber, program.ID, shift, len(list.Entries), startPosition)

	return c.JSON(fiber.Map{
		"success":       true,
		"merit_list_id": list.ID,
		"entries":       len(list.Entries),
	})
}

// GetMeritListsAPI returns all merit lists, optionally filtered, deactivating
// any whose validity window has lapsed.
func GetMeritListsAPI(c *fiber.Ctx, db *sql.DB) error {
	query := `SELECT id, program_id, session_id, shift, list_number, total_seats, secured_seats, valid_until, is_active, created_at
			  FROM merit_lists ORDER BY program_id, shift, list_number`

	rows, err := db.Query(query)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch merit lists")
	}
	defer rows.Close()

	var lists []*models.MeritList
	for rows.Next() {
		m := &models.MeritList{}
		err := rows.Scan(
			&m.ID, &m.ProgramID, &m.SessionID, &m.Shift, &m.ListNumber,
			&m.TotalSeats, &m.SecuredSeats, &m.ValidUntil, &m.IsActive, &m.CreatedAt,
		)
		if err != nil {
			continue
		}
		lists = append(lists, m)
	}
	rows.Close()

	for _, m := range lists {
		if err := database.DeactivateExpiredMeritList(db, m); err != nil {
			log.Printf("Failed to deactivate expired merit list %d: %v", m.ID, err)
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": lists})
}

// GetMeritListAPI returns one merit list with its ranked entries.
func GetMeritListAPI(c *fiber.Ctx, db *sql.DB) error {
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

	if err := database.DeactivateExpiredMeritList(db, list); err != nil {
		log.Printf("Failed to deactivate expired merit list %d: %v", list.ID, err)
	}

	entries, err := database.GetMeritListEntries(db, list.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch merit list entries")
	}
	list.Entries = entries

	return c.JSON(fiber.Map{"success": true, "data": list})
}

// GrantAdmissionAPI grants admission for a single merit list entry.
func GrantAdmissionAPI(c *fiber.Ctx, db *sql.DB) error {
	entryID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid entry id")
	}

	result, err := database.GrantAdmission(db, entryID, time.Now(), config.GetEveningRollBlock())
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Merit list entry not found")
		}
		log.Printf("Failed to grant admission for entry %d: %v", entryID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to grant admission")
	}

	if result.AlreadyAdmitted {
		return c.JSON(fiber.Map{
			"success":          true,
			"already_admitted": true,
			"message":          "Applicant is already admitted",
		})
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"already_admitted":   false,
		"university_roll_no": result.Student.UniversityRollNo,
		"college_roll_no":    result.Student.CollegeRollNo,
		"registration_no":    result.Student.RegistrationNo,
		"voucher_id":         result.VoucherID,
	})
}

// GrantAllAdmissionsAPI grants admission for every entry of a merit list.
// Each entry is its own transaction; entries already admitted are skipped.
func GrantAllAdmissionsAPI(c *fiber.Ctx, db *sql.DB) error {
	listID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid merit list id")
	}

	entries, err := database.GetMeritListEntries(db, listID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch merit list entries")
	}
	if len(entries) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Merit list has no entries")
	}

	granted := 0
	skipped := 0
	for _, entry := range entries {
		result, err := database.GrantAdmission(db, entry.ID, time.Now(), config.GetEveningRollBlock())
		if err != nil {
			log.Printf("Failed to grant admission for entry %d: %v", entry.ID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to grant admissions")
		}
		if result.AlreadyAdmitted {
			skipped++
		} else {
			granted++
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"granted": granted,
		"skipped": skipped,
	})
}
