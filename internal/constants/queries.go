package constants

const (
	// Closed-interval overlap: touching endpoints count as a conflict.
	// Only confirmed bookings block a slot. $5 is the booking being edited,
	// or NULL on create.
	FindAircraftConflicts = `
	SELECT b.id, b.start_time, b.end_time, b.status, b.aircraft_id, b.instructor_id, b.user_id
	FROM bookings b
	WHERE b.organization_id = $1
	  AND b.aircraft_id = $2
	  AND lower(b.status) = 'confirmed'
	  AND b.start_time <= $4
	  AND b.end_time >= $3
	  AND ($5::uuid IS NULL OR b.id <> $5)
	ORDER BY b.start_time
	`

	FindInstructorConflicts = `
	SELECT b.id, b.start_time, b.end_time, b.status, b.aircraft_id, b.instructor_id, b.user_id
	FROM bookings b
	WHERE b.organization_id = $1
	  AND b.instructor_id = $2
	  AND lower(b.status) = 'confirmed'
	  AND b.start_time <= $4
	  AND b.end_time >= $3
	  AND ($5::uuid IS NULL OR b.id <> $5)
	ORDER BY b.start_time
	`

	ListDayBookings = `
	SELECT b.id, b.start_time, b.end_time, b.status, b.type,
	       b.aircraft_id, b.instructor_id, b.user_id,
	       b.briefing_completed, b.debrief_completed,
	       a.registration AS aircraft_registration,
	       iu.display_name AS instructor_name,
	       mu.display_name AS member_name
	FROM bookings b
	LEFT JOIN aircraft a ON a.id = b.aircraft_id
	LEFT JOIN users iu ON iu.id = b.instructor_id
	LEFT JOIN users mu ON mu.id = b.user_id
	WHERE b.organization_id = $1
	  AND b.start_time < $3
	  AND b.end_time > $2
	ORDER BY b.start_time
	`

	UpdateBookingTimes = `
	UPDATE bookings
	SET start_time = $3, end_time = $4, updated_at = now()
	WHERE id = $1 AND organization_id = $2
	`

	// The whole invoice document as one jsonb blob, served on presigned
	// download links.
	GetInvoiceDocument = `
	SELECT jsonb_build_object(
	    'invoice', to_jsonb(i),
	    'items', COALESCE(jsonb_agg(to_jsonb(ii)) FILTER (WHERE ii.id IS NOT NULL), '[]'::jsonb)
	)
	FROM invoices i
	LEFT JOIN invoice_items ii ON ii.invoice_id = i.id
	WHERE i.id = $1 AND i.organization_id = $2
	GROUP BY i.id
	`

	CallCreateInvoiceWithItems = `SELECT create_invoice_with_items($1::jsonb, $2::jsonb)`
	CallProcessPayment         = `SELECT process_payment($1::jsonb)`
	CallCreateTechLogEntry     = `SELECT create_tech_log_entry($1::uuid)`
)
