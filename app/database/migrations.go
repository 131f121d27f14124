package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates missing tables and applies schema updates.
// Every statement is idempotent so the app can run this on every start.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL,
			office TEXT NOT NULL DEFAULT 'Admissions Office',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS faculties (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS departments (
			id SERIAL PRIMARY KEY,
			faculty_id INTEGER NOT NULL REFERENCES faculties(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			code TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS programs (
			id SERIAL PRIMARY KEY,
			department_id INTEGER NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			degree_type TEXT NOT NULL DEFAULT 'BS',
			duration_years INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS academic_sessions (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			start_year INTEGER NOT NULL,
			end_year INTEGER NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT false
		)`,
		`CREATE TABLE IF NOT EXISTS semesters (
			id SERIAL PRIMARY KEY,
			program_id INTEGER NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
			session_id INTEGER NOT NULL REFERENCES academic_sessions(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			number INTEGER NOT NULL,
			UNIQUE (program_id, session_id, number)
		)`,
		`CREATE TABLE IF NOT EXISTS applicants (
			id SERIAL PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			cnic TEXT NOT NULL,
			contact_no TEXT NOT NULL DEFAULT '',
			father_name TEXT NOT NULL DEFAULT '',
			program_id INTEGER NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
			session_id INTEGER NOT NULL REFERENCES academic_sessions(id) ON DELETE CASCADE,
			shift TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS academic_qualifications (
			id SERIAL PRIMARY KEY,
			applicant_id INTEGER NOT NULL REFERENCES applicants(id) ON DELETE CASCADE,
			exam_passed TEXT NOT NULL,
			passing_year INTEGER NOT NULL,
			marks_obtained INTEGER NOT NULL,
			total_marks INTEGER NOT NULL,
			board TEXT NOT NULL DEFAULT '',
			institute TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS applicant_payments (
			id SERIAL PRIMARY KEY,
			applicant_id INTEGER UNIQUE NOT NULL REFERENCES applicants(id) ON DELETE CASCADE,
			amount NUMERIC(10,2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS merit_lists (
			id SERIAL PRIMARY KEY,
			program_id INTEGER NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
			session_id INTEGER NOT NULL REFERENCES academic_sessions(id) ON DELETE CASCADE,
			shift TEXT NOT NULL,
			list_number INTEGER NOT NULL,
			total_seats INTEGER NOT NULL,
			secured_seats INTEGER NOT NULL DEFAULT 0,
			valid_until DATE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (program_id, shift, session_id, list_number)
		)`,
		`CREATE TABLE IF NOT EXISTS merit_list_entries (
			id SERIAL PRIMARY KEY,
			merit_list_id INTEGER NOT NULL REFERENCES merit_lists(id) ON DELETE CASCADE,
			applicant_id INTEGER NOT NULL REFERENCES applicants(id) ON DELETE CASCADE,
			merit_position INTEGER NOT NULL,
			relevant_percentage NUMERIC(5,2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'selected',
			UNIQUE (merit_list_id, merit_position),
			UNIQUE (merit_list_id, applicant_id)
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			applicant_id INTEGER PRIMARY KEY REFERENCES applicants(id) ON DELETE CASCADE,
			university_roll_no INTEGER NOT NULL,
			college_roll_no INTEGER NOT NULL,
			registration_no TEXT NOT NULL,
			enrollment_date DATE NOT NULL DEFAULT CURRENT_DATE,
			current_status TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS student_semester_enrollments (
			id SERIAL PRIMARY KEY,
			student_id INTEGER NOT NULL REFERENCES students(applicant_id) ON DELETE CASCADE,
			semester_id INTEGER NOT NULL REFERENCES semesters(id) ON DELETE CASCADE,
			status TEXT NOT NULL DEFAULT 'enrolled',
			enrolled_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, semester_id)
		)`,
		`CREATE TABLE IF NOT EXISTS fee_types (
			id SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true
		)`,
		`CREATE TABLE IF NOT EXISTS semester_fees (
			id SERIAL PRIMARY KEY,
			fee_type_id INTEGER NOT NULL REFERENCES fee_types(id) ON DELETE CASCADE,
			shift TEXT NOT NULL,
			dynamic_fees JSONB NOT NULL DEFAULT '[]',
			total_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true
		)`,
		`CREATE TABLE IF NOT EXISTS fee_to_programs (
			id SERIAL PRIMARY KEY,
			semester_fee_id INTEGER NOT NULL REFERENCES semester_fees(id) ON DELETE CASCADE,
			session_id INTEGER NOT NULL REFERENCES academic_sessions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS fee_to_program_programs (
			fee_to_program_id INTEGER NOT NULL REFERENCES fee_to_programs(id) ON DELETE CASCADE,
			program_id INTEGER NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
			PRIMARY KEY (fee_to_program_id, program_id)
		)`,
		`CREATE TABLE IF NOT EXISTS fee_to_program_semesters (
			fee_to_program_id INTEGER NOT NULL REFERENCES fee_to_programs(id) ON DELETE CASCADE,
			semester_id INTEGER NOT NULL REFERENCES semesters(id) ON DELETE CASCADE,
			PRIMARY KEY (fee_to_program_id, semester_id)
		)`,
		`CREATE TABLE IF NOT EXISTS student_fee_payments (
			id SERIAL PRIMARY KEY,
			student_id INTEGER NOT NULL REFERENCES students(applicant_id) ON DELETE CASCADE,
			semester_fee_id INTEGER NOT NULL REFERENCES semester_fees(id) ON DELETE CASCADE,
			amount_paid NUMERIC(10,2) NOT NULL,
			payment_date DATE NOT NULL DEFAULT CURRENT_DATE,
			receipt_number TEXT UNIQUE NOT NULL,
			remarks TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS fee_vouchers (
			id SERIAL PRIMARY KEY,
			voucher_id TEXT UNIQUE NOT NULL,
			student_id INTEGER NOT NULL REFERENCES students(applicant_id) ON DELETE CASCADE,
			semester_fee_id INTEGER NOT NULL REFERENCES semester_fees(id) ON DELETE CASCADE,
			semester_id INTEGER NOT NULL REFERENCES semesters(id) ON DELETE CASCADE,
			due_date DATE NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			is_paid BOOLEAN NOT NULL DEFAULT false,
			paid_at TIMESTAMPTZ,
			payment_id INTEGER REFERENCES student_fee_payments(id) ON DELETE SET NULL,
			UNIQUE (student_id, semester_id, semester_fee_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	// Older databases stored merit list validity as a timestamp
	if err := ensureDateColumn(db, "merit_lists", "valid_until"); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func ensureDateColumn(db *sql.DB, table, column string) error {
	query := `
		DO $$
		BEGIN
			IF EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = '` + table + `'
				AND column_name = '` + column + `'
				AND data_type <> 'date'
			) THEN
				EXECUTE 'ALTER TABLE ` + table + ` ALTER COLUMN ` + column + ` TYPE DATE USING ` + column + `::date';
			END IF;
		END $$;
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to normalise %s.%s to DATE: %v", table, column, err)
		return err
	}
	return nil
}
