package httpserver

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGErrorMessage maps common Postgres errors to user-friendly HTTP status + message.
// If err is not a pg error, returns 500 with the provided fallback message.
func PGErrorMessage(err error, fallback string) (int, string) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		// Unknown error type; hide details
		return http.StatusInternalServerError, fallback
	}

	status := http.StatusBadRequest
	msg := fallback

	switch pgErr.Code {
	case "23505": // unique_violation
		status = http.StatusConflict
		switch pgErr.ConstraintName {
		case "users_email_key":
			msg = "Email already exists."
		case "work_orders_company_id_number_key":
			msg = "Work order number already taken for this company."
		case "user_companies_pkey":
			msg = "User is already a member of this company."
		default:
			msg = "Duplicate value violates a unique constraint."
		}
	case "23503": // foreign_key_violation
		msg = "Referenced record not found."
	case "23514": // check_violation
		if pgErr.Detail != "" {
			msg = pgErr.Detail
		} else {
			msg = "Value violates a check constraint."
		}
	case "23502": // not_null_violation
		msg = "Missing required field."
	case "22P02": // invalid_text_representation (e.g., UUID/boolean/date)
		msg = "Invalid value format."
	case "22007": // invalid_datetime_format
		msg = "Invalid date/time format."
	case "22001": // string_data_right_truncation
		msg = "Value is too long."
	case "22003": // numeric_value_out_of_range
		msg = "Numeric value out of range."
	default:
		// For any other PG error, avoid leaking internals
	}

	return status, msg
}
